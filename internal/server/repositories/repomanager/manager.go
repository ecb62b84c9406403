package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/answers"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/questions"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/tags"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/users"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/views"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/votes"
)

// RepositoryManager vends repositories bound to a handle, so services can
// hand the same *sql.Tx to every repository touched by one operation.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tags(db dbx.DBTX) tags.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
	Votes(db dbx.DBTX) votes.Repository
	Views(db dbx.DBTX) views.Repository
}
