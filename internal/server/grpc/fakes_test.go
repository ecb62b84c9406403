package grpc

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/services"
)

type fakeUsers struct {
	user   *models.User
	tokens *services.TokenPair
	page   *models.UserPage
	err    error

	lastPageName string
	lastUserID   int64
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password, confirmation string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 1, UserName: username, Email: email}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return f.tokens, f.err
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.tokens, f.err
}

func (f *fakeUsers) Logout(ctx context.Context, refreshToken string) error { return f.err }

func (f *fakeUsers) UpdateProfile(ctx context.Context, userID int64, username, email string) (*models.User, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: userID, UserName: username, Email: email}, nil
}

func (f *fakeUsers) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	f.lastUserID = userID
	return f.user, f.err
}

func (f *fakeUsers) UserPage(ctx context.Context, username string) (*models.UserPage, error) {
	f.lastPageName = username
	return f.page, f.err
}

type fakeQuestions struct {
	question *models.Question
	detail   *models.QuestionDetail
	tags     []*models.Tag
	list     []*models.QuestionSummary
	err      error

	lastViewer int64
	lastOwner  int64
	lastQuery  string
}

func (f *fakeQuestions) Create(ctx context.Context, ownerID int64, title string, details *string, rawTags string) (*models.Question, error) {
	f.lastOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Question{ID: 9, Title: title, Details: details, OwnerID: ownerID}, nil
}

func (f *fakeQuestions) Update(ctx context.Context, userID, questionID int64, title string, details *string, rawTags string) (*models.Question, error) {
	f.lastOwner = userID
	return f.question, f.err
}

func (f *fakeQuestions) Delete(ctx context.Context, userID, questionID int64) error {
	f.lastOwner = userID
	return f.err
}

func (f *fakeQuestions) Detail(ctx context.Context, viewerID, questionID int64) (*models.QuestionDetail, error) {
	f.lastViewer = viewerID
	return f.detail, f.err
}

func (f *fakeQuestions) ListTags(ctx context.Context) ([]*models.Tag, error) { return f.tags, f.err }

func (f *fakeQuestions) ByTag(ctx context.Context, name string) ([]*models.QuestionSummary, error) {
	f.lastQuery = name
	return f.list, f.err
}

func (f *fakeQuestions) Search(ctx context.Context, query string) ([]*models.QuestionSummary, error) {
	f.lastQuery = query
	return f.list, f.err
}

type fakeAnswers struct {
	answer *models.Answer
	err    error

	lastUser int64
}

func (f *fakeAnswers) Create(ctx context.Context, ownerID, questionID int64, content string) (*models.Answer, error) {
	f.lastUser = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Answer{ID: 3, Content: content, OwnerID: ownerID, QuestionID: questionID}, nil
}

func (f *fakeAnswers) Update(ctx context.Context, userID, answerID int64, content string) (*models.Answer, error) {
	f.lastUser = userID
	return f.answer, f.err
}

func (f *fakeAnswers) Delete(ctx context.Context, userID, answerID int64) error {
	f.lastUser = userID
	return f.err
}

type fakeVotes struct {
	result *services.VoteResult
	err    error

	lastVoter int64
	lastKind  models.TargetKind
	lastDir   models.Direction
}

func (f *fakeVotes) VoteQuestion(ctx context.Context, voterID, questionID int64, d models.Direction) (*services.VoteResult, error) {
	f.lastVoter, f.lastKind, f.lastDir = voterID, models.TargetQuestion, d
	return f.result, f.err
}

func (f *fakeVotes) VoteAnswer(ctx context.Context, voterID, answerID int64, d models.Direction) (*services.VoteResult, error) {
	f.lastVoter, f.lastKind, f.lastDir = voterID, models.TargetAnswer, d
	return f.result, f.err
}

func voteResult(state models.VoteState, up, down int64) *services.VoteResult {
	return &services.VoteResult{State: state, Tally: models.Tally{Up: up, Down: down}}
}
