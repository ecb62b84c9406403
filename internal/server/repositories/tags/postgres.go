package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query :=
		`INSERT INTO tags (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`

	tag := &models.Tag{}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	query := `SELECT id, name FROM tags WHERE name = $1`

	tag := &models.Tag{}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) ListInUse(ctx context.Context) ([]*models.Tag, error) {
	query :=
		`SELECT t.id, t.name FROM tags t
		 WHERE EXISTS (SELECT 1 FROM question_tags qt WHERE qt.tag_id = t.id)
		 ORDER BY t.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListForQuestion(ctx context.Context, questionID int64) ([]models.Tag, error) {
	query :=
		`SELECT t.id, t.name FROM tags t
		 JOIN question_tags qt ON qt.tag_id = t.id
		 WHERE qt.question_id = $1
		 ORDER BY t.name`

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
