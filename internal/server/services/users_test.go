package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/server/auth"
	"github.com/dmitrijs2005/asklee/internal/server/config"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "k"
	testPassword = "correct horse"
)

func newUserService(t *testing.T) (*UserService, *memStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		BcryptCost:                   bcrypt.MinCost,
	}
	return NewUserService(db, &fakeRepoManager{s: store}, cfg), store, mock
}

func addUserWithPassword(t *testing.T, s *memStore, name, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	return s.addUser(name, email, hash)
}

func TestRegister_Success(t *testing.T) {
	s, store, mock := newUserService(t)
	expectCommits(mock, 1)

	u, err := s.Register(context.Background(), "alice", "alice@example.com", testPassword, testPassword)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, testPassword, u.PasswordHash)

	ok, err := auth.CheckPassword(store.users[u.ID].PasswordHash, testPassword)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Validation(t *testing.T) {
	s, store, _ := newUserService(t)

	_, err := s.Register(context.Background(), "al", "not-an-email", "short", "other")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, store.users)
}

func TestRegister_DuplicateLeavesOriginalUntouched(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		field    string
	}{
		{"username taken", "alice", "other@example.com", "username"},
		{"email taken", "alice2", "alice@example.com", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, mock := newUserService(t)
			orig := store.addUser("alice", "alice@example.com", "hash")
			expectRollback(mock)

			_, err := s.Register(context.Background(), tt.username, tt.email, testPassword, testPassword)
			require.ErrorIs(t, err, common.ErrorConflict)
			assert.Contains(t, err.Error(), tt.field)

			assert.Len(t, store.users, 1)
			assert.Equal(t, "hash", store.users[orig.ID].PasswordHash)
			assert.Equal(t, "alice@example.com", store.users[orig.ID].Email)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLogin_Success(t *testing.T) {
	s, store, _ := newUserService(t)
	u := addUserWithPassword(t, store, "alice", "alice@example.com")

	pair, err := s.Login(context.Background(), "alice@example.com", testPassword)
	require.NoError(t, err)

	id, err := auth.GetUserIDFromToken(pair.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	require.Contains(t, store.tokens, pair.RefreshToken)
	assert.Equal(t, u.ID, store.tokens[pair.RefreshToken].UserID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s, store, _ := newUserService(t)
	addUserWithPassword(t, store, "alice", "alice@example.com")

	_, err := s.Login(context.Background(), "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "ghost@example.com", testPassword)
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, store.tokens)
}

func TestLogin_RepoError(t *testing.T) {
	s, store, _ := newUserService(t)
	store.failWith = errBoom

	_, err := s.Login(context.Background(), "alice@example.com", testPassword)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRefreshToken_Rotates(t *testing.T) {
	s, store, mock := newUserService(t)
	u := store.addUser("alice", "alice@example.com", "hash")
	store.tokens["old"] = &models.RefreshToken{UserID: u.ID, Token: "old", Expires: time.Now().Add(time.Minute)}
	expectCommits(mock, 1)

	pair, err := s.RefreshToken(context.Background(), "old")
	require.NoError(t, err)
	assert.NotContains(t, store.tokens, "old")
	assert.Contains(t, store.tokens, pair.RefreshToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Expired(t *testing.T) {
	s, store, _ := newUserService(t)
	store.tokens["old"] = &models.RefreshToken{UserID: 1, Token: "old", Expires: time.Now().Add(-time.Minute)}

	_, err := s.RefreshToken(context.Background(), "old")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_Unknown(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.RefreshToken(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRefreshToken_CreateErrorRollsBack(t *testing.T) {
	s, store, mock := newUserService(t)
	store.tokens["old"] = &models.RefreshToken{UserID: 1, Token: "old", Expires: time.Now().Add(time.Minute)}
	store.failWith = errBoom
	expectRollback(mock)

	_, err := s.RefreshToken(context.Background(), "old")
	assert.ErrorIs(t, err, common.ErrorInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout(t *testing.T) {
	s, store, _ := newUserService(t)
	store.tokens["tok"] = &models.RefreshToken{UserID: 1, Token: "tok", Expires: time.Now().Add(time.Minute)}

	require.NoError(t, s.Logout(context.Background(), "tok"))
	assert.Empty(t, store.tokens)
	require.NoError(t, s.Logout(context.Background(), "tok"))
}

func TestUpdateProfile(t *testing.T) {
	s, store, mock := newUserService(t)
	alice := store.addUser("alice", "alice@example.com", "hash")
	store.addUser("bobby", "bob@example.com", "hash")

	// keeping one's own email is not a conflict
	expectCommits(mock, 1)
	u, err := s.UpdateProfile(context.Background(), alice.ID, "alice2", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.UserName)

	expectRollback(mock)
	_, err = s.UpdateProfile(context.Background(), alice.ID, "bobby", "alice@example.com")
	require.ErrorIs(t, err, common.ErrorConflict)
	assert.Equal(t, "alice2", store.users[alice.ID].UserName)

	_, err = s.UpdateProfile(context.Background(), alice.ID, "x", "bad")
	assert.ErrorIs(t, err, common.ErrorValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPage(t *testing.T) {
	s, store, _ := newUserService(t)
	alice := store.addUser("alice", "alice@example.com", "hash")
	bob := store.addUser("bobby", "bob@example.com", "hash")
	mine := store.addQuestion(alice.ID, "a question from alice")
	theirs := store.addQuestion(bob.ID, "a question from bobby")
	store.addAnswer(alice.ID, theirs.ID, "first answer from alice")
	store.addAnswer(alice.ID, theirs.ID, "second answer from alice")

	page, err := s.UserPage(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, page.User.PasswordHash)
	require.Len(t, page.QuestionsAsked, 1)
	assert.Equal(t, mine.ID, page.QuestionsAsked[0].ID)
	require.Len(t, page.QuestionsAnswered, 1)
	assert.Equal(t, theirs.ID, page.QuestionsAnswered[0].ID)

	_, err = s.UserPage(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
