package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/asklee/internal/server/validation"
)

type AnswerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnswerService(db *sql.DB, m repomanager.RepositoryManager) *AnswerService {
	return &AnswerService{db: db, repomanager: m}
}

// Create posts an answer to an existing question.
func (s *AnswerService) Create(ctx context.Context, ownerID, questionID int64, content string) (*models.Answer, error) {
	if err := validation.AnswerContent(content); err != nil {
		return nil, err
	}

	var answer *models.Answer
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Questions(tx).GetByID(ctx, questionID); err != nil {
			return err
		}
		var err error
		answer, err = s.repomanager.Answers(tx).Create(ctx, &models.Answer{
			Content:    content,
			OwnerID:    ownerID,
			QuestionID: questionID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) owned(ctx context.Context, tx dbx.DBTX, userID, answerID int64) (*models.Answer, error) {
	a, err := s.repomanager.Answers(tx).GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != userID {
		return nil, common.ErrorPermissionDenied
	}
	return a, nil
}

func (s *AnswerService) Update(ctx context.Context, userID, answerID int64, content string) (*models.Answer, error) {
	if err := validation.AnswerContent(content); err != nil {
		return nil, err
	}

	var answer *models.Answer
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		a, err := s.owned(ctx, tx, userID, answerID)
		if err != nil {
			return err
		}
		updated, err := s.repomanager.Answers(tx).Update(ctx, answerID, content)
		if err != nil {
			return err
		}
		a.Content, a.UpdatedAt = updated.Content, updated.UpdatedAt
		answer = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) Delete(ctx context.Context, userID, answerID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.owned(ctx, tx, userID, answerID); err != nil {
			return err
		}
		return s.repomanager.Answers(tx).Delete(ctx, answerID)
	})
}
