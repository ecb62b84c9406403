// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile changes, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/auth"
	"github.com/dmitrijs2005/asklee/internal/server/config"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/asklee/internal/server/validation"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides identity and session operations:
// - Register: create users with unique username and email
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - UpdateProfile, UserPage: profile maintenance and public pages
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   cfg.BcryptCost,
	}
}

// checkUnique fails with ErrorConflict when username or email belongs to a
// user other than selfID. Pass 0 as selfID for a new user.
func checkUnique(ctx context.Context, m repomanager.RepositoryManager, tx dbx.DBTX, selfID int64, username, email string) error {
	repo := m.Users(tx)

	u, err := repo.GetByUserName(ctx, username)
	switch {
	case err == nil && u.ID != selfID:
		return fmt.Errorf("%w: username already exists", common.ErrorConflict)
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return err
	}

	u, err = repo.GetByEmail(ctx, email)
	switch {
	case err == nil && u.ID != selfID:
		return fmt.Errorf("%w: email already exists", common.ErrorConflict)
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return err
	}
	return nil
}

// Register validates the form, rejects a taken username or email with
// ErrorConflict, and stores the user with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, username, email, password, confirmation string) (*models.User, error) {
	if err := validation.Registration(username, email, password, confirmation); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkUnique(ctx, s.repomanager, tx, 0, username, email); err != nil {
			return err
		}
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			UserName:     username,
			Email:        email,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the email and password and, on success, returns a new
// TokenPair. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := validation.Login(email, password); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return s.generateTokenPair(ctx, user.ID, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired;
// unknown or already spent tokens yield ErrInvalidToken.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the refresh token. Revoking an unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// UpdateProfile changes the caller's username and email. Uniqueness is
// checked against every user except the caller.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, username, email string) (*models.User, error) {
	if err := validation.Profile(username, email); err != nil {
		return nil, err
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkUnique(ctx, s.repomanager, tx, userID, username, email); err != nil {
			return err
		}
		repo := s.repomanager.Users(tx)
		if err := repo.UpdateProfile(ctx, userID, username, email); err != nil {
			return err
		}
		var err error
		user, err = repo.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// UserPage returns the questions a user asked and the distinct questions
// they answered.
func (s *UserService) UserPage(ctx context.Context, username string) (*models.UserPage, error) {
	user, err := s.repomanager.Users(s.db).GetByUserName(ctx, username)
	if err != nil {
		return nil, err
	}

	q := s.repomanager.Questions(s.db)
	asked, err := q.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	answered, err := q.ListAnsweredBy(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &models.UserPage{User: user, QuestionsAsked: asked, QuestionsAnswered: answered}, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID int64, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
