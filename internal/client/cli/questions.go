package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// target parses "q <id>" or "a <id>".
func target(args []string, usage string) (onAnswer bool, id int64, err error) {
	if len(args) != 2 {
		return false, 0, errors.New(usage)
	}
	switch args[0] {
	case "q", "question":
	case "a", "answer":
		onAnswer = true
	default:
		return false, 0, errors.New(usage)
	}
	id, err = parseID(args[1:])
	if err != nil {
		return false, 0, errors.New(usage)
	}
	return onAnswer, id, nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q", args[0])
	}
	return id, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Ask prompts for title, details and comma separated tags.
func (a *App) Ask(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title (15-150 characters)", a.out)
	if err != nil {
		return err
	}
	details, err := getMultiline(a.reader, "Details (optional)", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return err
	}

	q, err := a.api.AskQuestion(ctx, title, optional(details), tags)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Question #%d posted\n", q.ID)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return errors.New("usage: show <id>")
	}
	d, err := a.api.Question(ctx, id)
	if err != nil {
		return err
	}
	printQuestionDetail(a.out, d)
	return nil
}

func (a *App) Answer(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return errors.New("usage: answer <question id>")
	}

	content, err := getMultiline(a.reader, "Your answer", a.out)
	if err != nil {
		return err
	}

	ans, err := a.api.PostAnswer(ctx, id, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Answer #%d posted\n", ans.ID)
	return nil
}

// Edit rewrites a question or an answer. For questions an empty answer keeps
// the current value and "-" clears the details.
func (a *App) Edit(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	onAnswer, id, err := target(args, "usage: edit q|a <id>")
	if err != nil {
		return err
	}

	if onAnswer {
		content, err := getMultiline(a.reader, "New answer text", a.out)
		if err != nil {
			return err
		}
		if _, err := a.api.UpdateAnswer(ctx, id, content); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Answer #%d updated\n", id)
		return nil
	}

	current, err := a.api.Question(ctx, id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	details, err := getMultiline(a.reader, "Details (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	currentTags := strings.Join(current.Tags, ", ")
	tags, err := getSimpleText(a.reader, fmt.Sprintf("Tags [%s] (- clears)", currentTags), a.out)
	if err != nil {
		return err
	}

	if title == "" {
		title = current.Title
	}
	newDetails := current.Details
	switch details {
	case "":
	case "-":
		newDetails = nil
	default:
		newDetails = &details
	}
	switch tags {
	case "":
		tags = currentTags
	case "-":
		tags = ""
	}

	if _, err := a.api.UpdateQuestion(ctx, id, title, newDetails, tags); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Question #%d updated\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	onAnswer, id, err := target(args, "usage: delete q|a <id>")
	if err != nil {
		return err
	}

	kind := "question"
	if onAnswer {
		kind = "answer"
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete %s #%d?", kind, id), a.out)
	if err != nil || !ok {
		return err
	}

	if onAnswer {
		err = a.api.DeleteAnswer(ctx, id)
	} else {
		err = a.api.DeleteQuestion(ctx, id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s #%d\n", kind, id)
	return nil
}

// Vote presses the up or down button. Pressing the same button twice takes
// the vote back.
func (a *App) Vote(ctx context.Context, direction string, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	onAnswer, id, err := target(args, fmt.Sprintf("usage: %s q|a <id>", direction))
	if err != nil {
		return err
	}

	resp, err := a.api.Vote(ctx, onAnswer, id, direction)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Your vote: %s (+%d / -%d)\n", resp.State, resp.Upvotes, resp.Downvotes)
	return nil
}
