package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/asklee/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Me(ctx context.Context) error
	User(ctx context.Context, args []string) error
	Ask(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Answer(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Vote(ctx context.Context, direction string, args []string) error
	Tags(ctx context.Context) error
	Tag(ctx context.Context, args []string) error
	Search(ctx context.Context, query string) error
}

const (
	guestHelp = "Available commands: register, login, show <id>, tags, tag <name>, search <text>, user <name>, exit"
	userHelp  = "Available commands: ask, show <id>, answer <id>, edit q|a <id>, delete q|a <id>, up|down q|a <id>, " +
		"tags, tag <name>, search <text>, me, user <name>, profile, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop ends on EOF or "exit"/"quit". Command errors are printed and the
// loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("asklee (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "me":
			cmdErr = a.Me(ctx)
		case "user":
			cmdErr = a.User(ctx, args)

		case "ask":
			cmdErr = a.Ask(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "answer":
			cmdErr = a.Answer(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "up":
			cmdErr = a.Vote(ctx, common.DirectionUp, args)
		case "down":
			cmdErr = a.Vote(ctx, common.DirectionDown, args)

		case "tags":
			cmdErr = a.Tags(ctx)
		case "tag":
			cmdErr = a.Tag(ctx, args)
		case "search":
			// keep the query verbatim, inner spaces included
			query := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))
			cmdErr = a.Search(ctx, query)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}
