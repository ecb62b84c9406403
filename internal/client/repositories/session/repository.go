// Package session persists the CLI login between runs.
package session

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/client/models"
)

// Repository stores at most one session. Load returns (nil, nil) when
// nobody is logged in.
type Repository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
