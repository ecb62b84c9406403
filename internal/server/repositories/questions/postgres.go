package questions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
)

const selectQuestion = `SELECT q.id, q.title, q.details, q.owner_id, u.username, q.created_at, q.updated_at
	FROM questions q JOIN users u ON u.id = q.owner_id`

const selectSummary = `SELECT q.id, q.title, q.details, q.owner_id, u.username, q.created_at, q.updated_at,
	(SELECT COUNT(*) FROM question_views v WHERE v.question_id = q.id),
	(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id),
	(SELECT COUNT(*) FROM question_votes qv WHERE qv.question_id = q.id)
	FROM questions q JOIN users u ON u.id = q.owner_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (*models.Question, error) {
	q := &models.Question{}
	var details sql.NullString
	var updated sql.NullTime
	if err := s.Scan(&q.ID, &q.Title, &details, &q.OwnerID, &q.OwnerName, &q.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if details.Valid {
		q.Details = &details.String
	}
	if updated.Valid {
		q.UpdatedAt = &updated.Time
	}
	return q, nil
}

func scanSummary(s scanner) (*models.QuestionSummary, error) {
	q := &models.QuestionSummary{}
	var details sql.NullString
	var updated sql.NullTime
	err := s.Scan(&q.ID, &q.Title, &details, &q.OwnerID, &q.OwnerName, &q.CreatedAt, &updated,
		&q.Views, &q.Answers, &q.Votes)
	if err != nil {
		return nil, err
	}
	if details.Valid {
		q.Details = &details.String
	}
	if updated.Valid {
		q.UpdatedAt = &updated.Time
	}
	return q, nil
}

func (r *PostgresRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	query :=
		`INSERT INTO questions (title, details, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, q.Title, q.Details, q.OwnerID).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx, selectQuestion+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, title string, details *string) (*models.Question, error) {
	query :=
		`UPDATE questions SET title = $1, details = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING updated_at`

	var updated sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, title, details, id).Scan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := &models.Question{ID: id, Title: title, Details: details}
	if updated.Valid {
		q.UpdatedAt = &updated.Time
	}
	return q, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
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

func (r *PostgresRepository) AddTag(ctx context.Context, questionID, tagID int64) error {
	query :=
		`INSERT INTO question_tags (question_id, tag_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, questionID, tagID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearTags(ctx context.Context, questionID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM question_tags WHERE question_id = $1`, questionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) listSummaries(ctx context.Context, query string, args ...any) ([]*models.QuestionSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.QuestionSummary
	for rows.Next() {
		q, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) listQuestions(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListByTag(ctx context.Context, tagID int64) ([]*models.QuestionSummary, error) {
	return r.listSummaries(ctx, selectSummary+`
	WHERE EXISTS (SELECT 1 FROM question_tags qt WHERE qt.question_id = q.id AND qt.tag_id = $1)
	ORDER BY q.created_at DESC, q.id DESC`, tagID)
}

// Search uses strpos so that % and _ in text are matched literally.
func (r *PostgresRepository) Search(ctx context.Context, text string) ([]*models.QuestionSummary, error) {
	return r.listSummaries(ctx, selectSummary+`
	WHERE strpos(q.title, $1) > 0 OR strpos(COALESCE(q.details, ''), $1) > 0
	ORDER BY q.created_at DESC, q.id DESC`, text)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Question, error) {
	return r.listQuestions(ctx, selectQuestion+`
	WHERE q.owner_id = $1
	ORDER BY q.created_at DESC, q.id DESC`, ownerID)
}

func (r *PostgresRepository) ListAnsweredBy(ctx context.Context, userID int64) ([]*models.Question, error) {
	return r.listQuestions(ctx, selectQuestion+`
	WHERE EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id AND a.owner_id = $1)
	ORDER BY q.created_at DESC, q.id DESC`, userID)
}
