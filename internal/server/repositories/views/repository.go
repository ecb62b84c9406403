// Package views records which users have seen which questions.
package views

import "context"

type Repository interface {
	// Record marks the question as viewed by userID. Repeated calls are no-ops.
	Record(ctx context.Context, userID, questionID int64) error
	Count(ctx context.Context, questionID int64) (int64, error)
}
