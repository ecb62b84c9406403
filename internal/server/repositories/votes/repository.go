// Package votes stores the vote ledger. One implementation serves both
// question and answer votes; the target kind selects the table.
package votes

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type Repository interface {
	// Find returns the voter's row for target, or common.ErrorNotFound.
	Find(ctx context.Context, voterID int64, target models.Target) (*models.Vote, error)
	// FindForUpdate returns the voter's row for target and locks it for the
	// rest of the transaction. It returns common.ErrorNotFound when absent.
	FindForUpdate(ctx context.Context, voterID int64, target models.Target) (*models.Vote, error)
	// Create inserts a row. A concurrent first vote by the same voter
	// surfaces as common.ErrorConflict.
	Create(ctx context.Context, v *models.Vote) (*models.Vote, error)
	SetDirection(ctx context.Context, v *models.Vote, isUpvote bool) error
	Delete(ctx context.Context, v *models.Vote) error
	Tally(ctx context.Context, target models.Target) (models.Tally, error)
}
