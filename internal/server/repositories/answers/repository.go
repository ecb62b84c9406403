// Package answers persists answers to questions.
package answers

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Answer) (*models.Answer, error)
	GetByID(ctx context.Context, id int64) (*models.Answer, error)
	// Update replaces the content and stamps updated_at.
	Update(ctx context.Context, id int64, content string) (*models.Answer, error)
	Delete(ctx context.Context, id int64) error
	// ListByQuestion returns a question's answers, oldest first.
	ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error)
}
