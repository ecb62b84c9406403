// Package users declares and implements persistence for accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
)

// Repository stores users. Lookups return common.ErrorNotFound when nothing
// matches; writes that clash with the username or email UNIQUE constraints
// return an error wrapping common.ErrorConflict.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, userName, email string) error
}
