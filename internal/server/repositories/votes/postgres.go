package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type table struct {
	name   string
	column string
}

var tables = map[models.TargetKind]table{
	models.TargetQuestion: {name: "question_votes", column: "question_id"},
	models.TargetAnswer:   {name: "answer_votes", column: "answer_id"},
}

var errUnknownKind = errors.New("unknown vote target kind")

func tableFor(kind models.TargetKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %s", errUnknownKind, kind)
	}
	return t, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) find(ctx context.Context, voterID int64, target models.Target, lock bool) (*models.Vote, error) {
	t, err := tableFor(target.Kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, is_upvote FROM %s
		 WHERE voter_id = $1 AND %s = $2`, t.name, t.column)
	if lock {
		query += `
		 FOR UPDATE`
	}

	v := &models.Vote{VoterID: voterID, Target: target}
	if err := r.db.QueryRowContext(ctx, query, voterID, target.ID).Scan(&v.ID, &v.IsUpvote); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Find(ctx context.Context, voterID int64, target models.Target) (*models.Vote, error) {
	return r.find(ctx, voterID, target, false)
}

func (r *PostgresRepository) FindForUpdate(ctx context.Context, voterID int64, target models.Target) (*models.Vote, error) {
	return r.find(ctx, voterID, target, true)
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Vote) (*models.Vote, error) {
	t, err := tableFor(v.Target.Kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (voter_id, %s, is_upvote)
		 VALUES ($1, $2, $3)
		 RETURNING id`, t.name, t.column)

	if err := r.db.QueryRowContext(ctx, query, v.VoterID, v.Target.ID, v.IsUpvote).Scan(&v.ID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s vote already recorded", common.ErrorConflict, v.Target.Kind)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) SetDirection(ctx context.Context, v *models.Vote, isUpvote bool) error {
	t, err := tableFor(v.Target.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET is_upvote = $1 WHERE id = $2`, t.name)
	if _, err := r.db.ExecContext(ctx, query, isUpvote, v.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	v.IsUpvote = isUpvote
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, v *models.Vote) error {
	t, err := tableFor(v.Target.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name)
	if _, err := r.db.ExecContext(ctx, query, v.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Tally(ctx context.Context, target models.Target) (models.Tally, error) {
	t, err := tableFor(target.Kind)
	if err != nil {
		return models.Tally{}, err
	}

	query := fmt.Sprintf(
		`SELECT COUNT(*) FILTER (WHERE is_upvote), COUNT(*) FILTER (WHERE NOT is_upvote)
		 FROM %s WHERE %s = $1`, t.name, t.column)

	var tally models.Tally
	if err := r.db.QueryRowContext(ctx, query, target.ID).Scan(&tally.Up, &tally.Down); err != nil {
		return models.Tally{}, fmt.Errorf("db error: %w", err)
	}
	return tally, nil
}
