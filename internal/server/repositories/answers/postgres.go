package answers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
)

const selectAnswer = `SELECT a.id, a.content, a.owner_id, u.username, a.question_id, a.created_at, a.updated_at
	FROM answers a JOIN users u ON u.id = a.owner_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnswer(s scanner) (*models.Answer, error) {
	a := &models.Answer{}
	var updated sql.NullTime
	if err := s.Scan(&a.ID, &a.Content, &a.OwnerID, &a.OwnerName, &a.QuestionID, &a.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if updated.Valid {
		a.UpdatedAt = &updated.Time
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	query :=
		`INSERT INTO answers (content, owner_id, question_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.Content, a.OwnerID, a.QuestionID).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	a, err := scanAnswer(r.db.QueryRowContext(ctx, selectAnswer+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string) (*models.Answer, error) {
	query :=
		`UPDATE answers SET content = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING question_id, updated_at`

	a := &models.Answer{ID: id, Content: content}
	var updated sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, content, id).Scan(&a.QuestionID, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if updated.Valid {
		a.UpdatedAt = &updated.Time
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	rows, err := r.db.QueryContext(ctx, selectAnswer+`
	WHERE a.question_id = $1
	ORDER BY a.created_at, a.id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
