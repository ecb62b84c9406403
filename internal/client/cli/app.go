package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/client/client"
	"github.com/dmitrijs2005/asklee/internal/client/config"
	"github.com/dmitrijs2005/asklee/internal/client/repositories/session"
)

// apiClient is the part of client.GRPCClient the commands use.
type apiClient interface {
	LoggedIn() bool
	Username() string
	Register(ctx context.Context, username, email, password, confirmation string) (*api.User, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, username, email string) (*api.User, error)
	UserPage(ctx context.Context, username string) (*api.GetUserPageResponse, error)
	AskQuestion(ctx context.Context, title string, details *string, tags string) (*api.Question, error)
	UpdateQuestion(ctx context.Context, id int64, title string, details *string, tags string) (*api.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	Question(ctx context.Context, id int64) (*api.QuestionDetail, error)
	PostAnswer(ctx context.Context, questionID int64, content string) (*api.Answer, error)
	UpdateAnswer(ctx context.Context, id int64, content string) (*api.Answer, error)
	DeleteAnswer(ctx context.Context, id int64) error
	Vote(ctx context.Context, onAnswer bool, id int64, direction string) (*api.VoteResponse, error)
	Tags(ctx context.Context) ([]*api.Tag, error)
	QuestionsByTag(ctx context.Context, tag string) ([]*api.QuestionSummary, error)
	Search(ctx context.Context, query string) ([]*api.QuestionSummary, error)
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	api    apiClient
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local session store and connects to the server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.OpenSessionDB(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}

	apiClient, err := client.NewAskleeClientService(ctx, c.ServerEndpointAddr, c.RequestTimeout, session.NewSQLiteRepository(db))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{config: c, api: apiClient, db: db, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if !a.api.LoggedIn() {
		return "guest"
	}
	return a.api.Username()
}

// Run greets the user, reports whether the server is reachable and runs the
// REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to Asklee (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %v\n", err)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) close() {
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) requireLogin() error {
	if !a.api.LoggedIn() {
		return errors.New("please log in first")
	}
	return nil
}
