// Package tags stores the tag dictionary. Tags are created lazily on first
// use and never deleted.
package tags

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type Repository interface {
	// GetOrCreate returns the tag with the given name, inserting it when it
	// does not exist yet. Safe under concurrent callers.
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	// ListInUse returns tags attached to at least one question, by name.
	ListInUse(ctx context.Context) ([]*models.Tag, error)
	ListForQuestion(ctx context.Context, questionID int64) ([]models.Tag, error)
}
