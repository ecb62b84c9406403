package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/answers"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/questions"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/tags"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/users"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/views"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/votes"
)

var errBoom = errors.New("boom")

// newSQLMockDB returns a mock whose transactions all commit unless a test
// sets its own expectations.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCommits(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// memStore is an in-memory stand-in for the postgres schema.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	tokens    map[string]*models.RefreshToken
	tags      map[string]*models.Tag
	questions map[int64]*models.Question
	qtags     map[int64][]int64
	answers   map[int64]*models.Answer
	votes     map[models.Target]map[int64]*models.Vote
	views     map[int64]map[int64]bool

	// conflictsOnVoteCreate makes the next N vote inserts report a lost race.
	conflictsOnVoteCreate int
	// failWith is returned by every call that consults it when set.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]*models.User{},
		tokens:    map[string]*models.RefreshToken{},
		tags:      map[string]*models.Tag{},
		questions: map[int64]*models.Question{},
		qtags:     map[int64][]int64{},
		answers:   map[int64]*models.Answer{},
		votes:     map[models.Target]map[int64]*models.Vote{},
		views:     map[int64]map[int64]bool{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(name, email, hash string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: s.id(), UserName: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addQuestion(ownerID int64, title string) *models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := &models.Question{ID: s.id(), Title: title, OwnerID: ownerID, OwnerName: s.users[ownerID].UserName, CreatedAt: time.Now()}
	s.questions[q.ID] = q
	return q
}

func (s *memStore) addAnswer(ownerID, questionID int64, content string) *models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Answer{ID: s.id(), Content: content, OwnerID: ownerID, OwnerName: s.users[ownerID].UserName, QuestionID: questionID, CreatedAt: time.Now()}
	s.answers[a.ID] = a
	return a
}

func (s *memStore) voteRows(target models.Target) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.votes[target])
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return memUsers{m.s} }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m.s} }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository                   { return memTags{m.s} }
func (m *fakeRepoManager) Questions(dbx.DBTX) questions.Repository         { return memQuestions{m.s} }
func (m *fakeRepoManager) Answers(dbx.DBTX) answers.Repository             { return memAnswers{m.s} }
func (m *fakeRepoManager) Votes(dbx.DBTX) votes.Repository                 { return memVotes{m.s} }
func (m *fakeRepoManager) Views(dbx.DBTX) views.Repository                 { return memViews{m.s} }

// --- users ---

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, o := range r.s.users {
		if o.UserName == u.UserName || o.Email == u.Email {
			return nil, common.ErrorConflict
		}
	}
	u.ID, u.CreatedAt = r.s.id(), time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r memUsers) GetByUserName(_ context.Context, name string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == name })
}

func (r memUsers) UpdateProfile(_ context.Context, id int64, name, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.UserName, u.Email = name, email
	return nil
}

// --- refresh tokens ---

type memTokens struct{ s *memStore }

func (r memTokens) Create(_ context.Context, userID int64, token string, validity time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	r.s.tokens[token] = &models.RefreshToken{ID: r.s.id(), UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r memTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTokens) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.tokens, token)
	return nil
}

// --- tags ---

type memTags struct{ s *memStore }

func (r memTags) GetOrCreate(_ context.Context, name string) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tags[name]; ok {
		cp := *t
		return &cp, nil
	}
	t := &models.Tag{ID: r.s.id(), Name: name}
	r.s.tags[name] = t
	cp := *t
	return &cp, nil
}

func (r memTags) GetByName(_ context.Context, name string) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tags[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTags) ListInUse(_ context.Context) ([]*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	used := map[int64]bool{}
	for _, ids := range r.s.qtags {
		for _, id := range ids {
			used[id] = true
		}
	}
	var out []*models.Tag
	for _, t := range r.s.tags {
		if used[t.ID] {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memTags) ListForQuestion(_ context.Context, questionID int64) ([]models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Tag
	for _, id := range r.s.qtags[questionID] {
		for _, t := range r.s.tags {
			if t.ID == id {
				out = append(out, *t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- questions ---

type memQuestions struct{ s *memStore }

func (r memQuestions) Create(_ context.Context, q *models.Question) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	q.ID, q.CreatedAt = r.s.id(), time.Now()
	cp := *q
	if u, ok := r.s.users[q.OwnerID]; ok {
		cp.OwnerName = u.UserName
	}
	r.s.questions[q.ID] = &cp
	return q, nil
}

func (r memQuestions) GetByID(_ context.Context, id int64) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *q
	cp.Tags = nil
	return &cp, nil
}

func (r memQuestions) Update(_ context.Context, id int64, title string, details *string) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	now := time.Now()
	q.Title, q.Details, q.UpdatedAt = title, details, &now
	cp := *q
	return &cp, nil
}

func (r memQuestions) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[id]; !ok {
		return common.ErrorNotFound
	}
	// mirror ON DELETE CASCADE
	delete(r.s.questions, id)
	delete(r.s.qtags, id)
	delete(r.s.views, id)
	delete(r.s.votes, models.Target{Kind: models.TargetQuestion, ID: id})
	for aid, a := range r.s.answers {
		if a.QuestionID == id {
			delete(r.s.answers, aid)
			delete(r.s.votes, models.Target{Kind: models.TargetAnswer, ID: aid})
		}
	}
	return nil
}

func (r memQuestions) AddTag(_ context.Context, questionID, tagID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.qtags[questionID] {
		if id == tagID {
			return nil
		}
	}
	r.s.qtags[questionID] = append(r.s.qtags[questionID], tagID)
	return nil
}

func (r memQuestions) ClearTags(_ context.Context, questionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.qtags, questionID)
	return nil
}

func (r memQuestions) summaries(match func(*models.Question) bool) []*models.QuestionSummary {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.QuestionSummary
	for _, q := range r.s.questions {
		if !match(q) {
			continue
		}
		sum := &models.QuestionSummary{Question: *q}
		sum.Views = int64(len(r.s.views[q.ID]))
		sum.Votes = int64(len(r.s.votes[models.Target{Kind: models.TargetQuestion, ID: q.ID}]))
		for _, a := range r.s.answers {
			if a.QuestionID == q.ID {
				sum.Answers++
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memQuestions) ListByTag(_ context.Context, tagID int64) ([]*models.QuestionSummary, error) {
	return r.summaries(func(q *models.Question) bool {
		for _, id := range r.s.qtags[q.ID] {
			if id == tagID {
				return true
			}
		}
		return false
	}), nil
}

func (r memQuestions) Search(_ context.Context, text string) ([]*models.QuestionSummary, error) {
	return r.summaries(func(q *models.Question) bool {
		return strings.Contains(q.Title, text) || (q.Details != nil && strings.Contains(*q.Details, text))
	}), nil
}

func (r memQuestions) ListByOwner(_ context.Context, ownerID int64) ([]*models.Question, error) {
	var out []*models.Question
	for _, s := range r.summaries(func(q *models.Question) bool { return q.OwnerID == ownerID }) {
		q := s.Question
		out = append(out, &q)
	}
	return out, nil
}

func (r memQuestions) ListAnsweredBy(_ context.Context, userID int64) ([]*models.Question, error) {
	var out []*models.Question
	match := func(q *models.Question) bool {
		for _, a := range r.s.answers {
			if a.QuestionID == q.ID && a.OwnerID == userID {
				return true
			}
		}
		return false
	}
	for _, s := range r.summaries(match) {
		q := s.Question
		out = append(out, &q)
	}
	return out, nil
}

// --- answers ---

type memAnswers struct{ s *memStore }

func (r memAnswers) Create(_ context.Context, a *models.Answer) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID, a.CreatedAt = r.s.id(), time.Now()
	cp := *a
	if u, ok := r.s.users[a.OwnerID]; ok {
		cp.OwnerName = u.UserName
	}
	r.s.answers[a.ID] = &cp
	return a, nil
}

func (r memAnswers) GetByID(_ context.Context, id int64) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAnswers) Update(_ context.Context, id int64, content string) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	now := time.Now()
	a.Content, a.UpdatedAt = content, &now
	cp := *a
	return &cp, nil
}

func (r memAnswers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.answers[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.answers, id)
	delete(r.s.votes, models.Target{Kind: models.TargetAnswer, ID: id})
	return nil
}

func (r memAnswers) ListByQuestion(_ context.Context, questionID int64) ([]*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Answer
	for _, a := range r.s.answers {
		if a.QuestionID == questionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- votes ---

type memVotes struct{ s *memStore }

func (r memVotes) Find(_ context.Context, voterID int64, target models.Target) (*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.votes[target][voterID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (r memVotes) FindForUpdate(ctx context.Context, voterID int64, target models.Target) (*models.Vote, error) {
	return r.Find(ctx, voterID, target)
}

func (r memVotes) Create(_ context.Context, v *models.Vote) (*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.conflictsOnVoteCreate > 0 {
		r.s.conflictsOnVoteCreate--
		return nil, common.ErrorConflict
	}
	if _, ok := r.s.votes[v.Target][v.VoterID]; ok {
		return nil, common.ErrorConflict
	}
	if r.s.votes[v.Target] == nil {
		r.s.votes[v.Target] = map[int64]*models.Vote{}
	}
	v.ID = r.s.id()
	cp := *v
	r.s.votes[v.Target][v.VoterID] = &cp
	return v, nil
}

func (r memVotes) SetDirection(_ context.Context, v *models.Vote, isUpvote bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.votes[v.Target][v.VoterID].IsUpvote = isUpvote
	v.IsUpvote = isUpvote
	return nil
}

func (r memVotes) Delete(_ context.Context, v *models.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.votes[v.Target], v.VoterID)
	return nil
}

func (r memVotes) Tally(_ context.Context, target models.Target) (models.Tally, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var t models.Tally
	for _, v := range r.s.votes[target] {
		if v.IsUpvote {
			t.Up++
		} else {
			t.Down++
		}
	}
	return t, nil
}

// --- views ---

type memViews struct{ s *memStore }

func (r memViews) Record(_ context.Context, userID, questionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.views[questionID] == nil {
		r.s.views[questionID] = map[int64]bool{}
	}
	r.s.views[questionID][userID] = true
	return nil
}

func (r memViews) Count(_ context.Context, questionID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.views[questionID])), nil
}
