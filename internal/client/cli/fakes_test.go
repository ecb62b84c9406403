package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/asklee/internal/api"
)

// fakeAPI implements apiClient with canned answers and records arguments.
type fakeAPI struct {
	loggedIn bool
	username string
	err      error

	page     *api.GetUserPageResponse
	detail   *api.QuestionDetail
	tags     []*api.Tag
	list     []*api.QuestionSummary
	voteResp *api.VoteResponse

	registered   []string
	loginEmail   string
	loginPass    string
	loggedOut    bool
	profile      []string
	pageFor      *string
	asked        *askCall
	updatedQ     *askCall
	deletedQ     int64
	deletedA     int64
	answeredQ    int64
	answerText   string
	updatedA     int64
	voted        string
	votedAnswer  bool
	votedID      int64
	searchQuery  string
	tagQuery     string
	pinged       bool
	closed       bool
	questionByID int64
}

type askCall struct {
	id      int64
	title   string
	details *string
	tags    string
}

func (f *fakeAPI) LoggedIn() bool   { return f.loggedIn }
func (f *fakeAPI) Username() string { return f.username }

func (f *fakeAPI) Register(ctx context.Context, username, email, password, confirmation string) (*api.User, error) {
	f.registered = []string{username, email, password, confirmation}
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: 1, Username: username}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.err == nil {
		f.loggedIn, f.username = true, "alice"
	}
	return f.err
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.loggedOut = true
	f.loggedIn = false
	return f.err
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, username, email string) (*api.User, error) {
	f.profile = []string{username, email}
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{Username: username, Email: email}, nil
}

func (f *fakeAPI) UserPage(ctx context.Context, username string) (*api.GetUserPageResponse, error) {
	f.pageFor = &username
	return f.page, f.err
}

func (f *fakeAPI) AskQuestion(ctx context.Context, title string, details *string, tags string) (*api.Question, error) {
	f.asked = &askCall{title: title, details: details, tags: tags}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Question{ID: 77, Title: title}, nil
}

func (f *fakeAPI) UpdateQuestion(ctx context.Context, id int64, title string, details *string, tags string) (*api.Question, error) {
	f.updatedQ = &askCall{id: id, title: title, details: details, tags: tags}
	return &api.Question{ID: id}, f.err
}

func (f *fakeAPI) DeleteQuestion(ctx context.Context, id int64) error {
	f.deletedQ = id
	return f.err
}

func (f *fakeAPI) Question(ctx context.Context, id int64) (*api.QuestionDetail, error) {
	f.questionByID = id
	return f.detail, f.err
}

func (f *fakeAPI) PostAnswer(ctx context.Context, questionID int64, content string) (*api.Answer, error) {
	f.answeredQ, f.answerText = questionID, content
	if f.err != nil {
		return nil, f.err
	}
	return &api.Answer{ID: 5, QuestionID: questionID, Content: content}, nil
}

func (f *fakeAPI) UpdateAnswer(ctx context.Context, id int64, content string) (*api.Answer, error) {
	f.updatedA, f.answerText = id, content
	return &api.Answer{ID: id, Content: content}, f.err
}

func (f *fakeAPI) DeleteAnswer(ctx context.Context, id int64) error {
	f.deletedA = id
	return f.err
}

func (f *fakeAPI) Vote(ctx context.Context, onAnswer bool, id int64, direction string) (*api.VoteResponse, error) {
	f.votedAnswer, f.votedID, f.voted = onAnswer, id, direction
	return f.voteResp, f.err
}

func (f *fakeAPI) Tags(ctx context.Context) ([]*api.Tag, error) { return f.tags, f.err }

func (f *fakeAPI) QuestionsByTag(ctx context.Context, tag string) ([]*api.QuestionSummary, error) {
	f.tagQuery = tag
	return f.list, f.err
}

func (f *fakeAPI) Search(ctx context.Context, query string) ([]*api.QuestionSummary, error) {
	f.searchQuery = query
	return f.list, f.err
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	f.pinged = true
	return f.err
}

func (f *fakeAPI) Close() error {
	f.closed = true
	return nil
}

// stubInputs answers text, multiline and confirm prompts from a queue and
// passwords from another.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP, origML, origC := getSimpleText, getPassword, getMultiline, confirm
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, confirm = origST, origGP, origML, origC
	})

	next := func() string {
		if len(texts) == 0 {
			t.Fatal("unexpected prompt")
		}
		s := texts[0]
		texts = texts[1:]
		return s
	}

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	confirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) {
		return strings.HasPrefix(next(), "y"), nil
	}
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if len(passwords) == 0 {
			t.Fatal("unexpected password prompt")
		}
		p := passwords[0]
		passwords = passwords[1:]
		return p, nil
	}
}

func newTestApp(f *fakeAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{api: f, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}
