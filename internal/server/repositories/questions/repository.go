// Package questions persists questions and their tag associations.
package questions

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type Repository interface {
	// Create inserts q and fills its ID and CreatedAt.
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	// GetByID returns the question with its owner name, without tags.
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	// Update replaces title and details and stamps updated_at.
	Update(ctx context.Context, id int64, title string, details *string) (*models.Question, error)
	Delete(ctx context.Context, id int64) error

	AddTag(ctx context.Context, questionID, tagID int64) error
	ClearTags(ctx context.Context, questionID int64) error

	// ListByTag returns questions carrying the tag, newest first.
	ListByTag(ctx context.Context, tagID int64) ([]*models.QuestionSummary, error)
	// Search matches text as a substring of title or details, newest first.
	Search(ctx context.Context, text string) ([]*models.QuestionSummary, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Question, error)
	// ListAnsweredBy returns the distinct questions userID has answered.
	ListAnsweredBy(ctx context.Context, userID int64) ([]*models.Question, error)
}
