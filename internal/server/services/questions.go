package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/asklee/internal/server/tags"
	"github.com/dmitrijs2005/asklee/internal/server/validation"
)

// QuestionService owns questions, their tag sets, and view tracking.
type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager) *QuestionService {
	return &QuestionService{db: db, repomanager: m}
}

// attachTags resolves every name to a tag, creating missing ones, and links
// the distinct tags to the question.
func (s *QuestionService) attachTags(ctx context.Context, tx dbx.DBTX, questionID int64, names []string) ([]models.Tag, error) {
	tagRepo := s.repomanager.Tags(tx)
	qRepo := s.repomanager.Questions(tx)

	seen := make(map[int64]bool, len(names))
	var attached []models.Tag
	for _, name := range names {
		tag, err := tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		if err := qRepo.AddTag(ctx, questionID, tag.ID); err != nil {
			return nil, err
		}
		attached = append(attached, *tag)
	}
	return attached, nil
}

// ownedQuestion loads a question and checks that userID owns it.
func (s *QuestionService) ownedQuestion(ctx context.Context, tx dbx.DBTX, userID, questionID int64) (*models.Question, error) {
	q, err := s.repomanager.Questions(tx).GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.OwnerID != userID {
		return nil, common.ErrorPermissionDenied
	}
	return q, nil
}

// Create stores a new question owned by ownerID. rawTags is the free-text
// comma separated tag input.
func (s *QuestionService) Create(ctx context.Context, ownerID int64, title string, details *string, rawTags string) (*models.Question, error) {
	names := tags.Normalize(rawTags)
	if err := validation.NewQuestion(title, names); err != nil {
		return nil, err
	}

	var question *models.Question
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		q, err := s.repomanager.Questions(tx).Create(ctx, &models.Question{
			Title:   title,
			Details: details,
			OwnerID: ownerID,
		})
		if err != nil {
			return err
		}
		if q.Tags, err = s.attachTags(ctx, tx, q.ID, names); err != nil {
			return err
		}
		question = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Update replaces title, details, and the whole tag set of a question owned
// by userID.
func (s *QuestionService) Update(ctx context.Context, userID, questionID int64, title string, details *string, rawTags string) (*models.Question, error) {
	names := tags.Normalize(rawTags)
	if err := validation.QuestionUpdate(title, names); err != nil {
		return nil, err
	}

	var question *models.Question
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		q, err := s.ownedQuestion(ctx, tx, userID, questionID)
		if err != nil {
			return err
		}

		repo := s.repomanager.Questions(tx)
		updated, err := repo.Update(ctx, questionID, title, details)
		if err != nil {
			return err
		}
		if err := repo.ClearTags(ctx, questionID); err != nil {
			return err
		}
		if q.Tags, err = s.attachTags(ctx, tx, questionID, names); err != nil {
			return err
		}

		q.Title, q.Details, q.UpdatedAt = updated.Title, updated.Details, updated.UpdatedAt
		question = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes a question owned by userID together with its answers,
// votes, views, and tag links.
func (s *QuestionService) Delete(ctx context.Context, userID, questionID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.ownedQuestion(ctx, tx, userID, questionID); err != nil {
			return err
		}
		return s.repomanager.Questions(tx).Delete(ctx, questionID)
	})
}

// Detail assembles the question page. A viewerID of 0 means an anonymous
// caller; otherwise the view is recorded and the caller's votes are filled in.
func (s *QuestionService) Detail(ctx context.Context, viewerID, questionID int64) (*models.QuestionDetail, error) {
	var detail *models.QuestionDetail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		q, err := s.repomanager.Questions(tx).GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if viewerID != 0 {
			if err := s.repomanager.Views(tx).Record(ctx, viewerID, questionID); err != nil {
				return err
			}
		}
		if q.Tags, err = s.repomanager.Tags(tx).ListForQuestion(ctx, questionID); err != nil {
			return err
		}

		d := &models.QuestionDetail{Question: *q}
		if d.Views, err = s.repomanager.Views(tx).Count(ctx, questionID); err != nil {
			return err
		}

		target := models.Target{Kind: models.TargetQuestion, ID: questionID}
		if d.Tally, d.MyVote, err = s.voteInfo(ctx, tx, viewerID, target); err != nil {
			return err
		}

		answers, err := s.repomanager.Answers(tx).ListByQuestion(ctx, questionID)
		if err != nil {
			return err
		}
		for _, a := range answers {
			ad := &models.AnswerDetail{Answer: *a}
			target := models.Target{Kind: models.TargetAnswer, ID: a.ID}
			if ad.Tally, ad.MyVote, err = s.voteInfo(ctx, tx, viewerID, target); err != nil {
				return err
			}
			d.Answers = append(d.Answers, ad)
		}

		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *QuestionService) voteInfo(ctx context.Context, tx dbx.DBTX, viewerID int64, target models.Target) (models.Tally, models.VoteState, error) {
	repo := s.repomanager.Votes(tx)

	tally, err := repo.Tally(ctx, target)
	if err != nil {
		return models.Tally{}, models.NoVote, err
	}
	if viewerID == 0 {
		return tally, models.NoVote, nil
	}

	v, err := repo.Find(ctx, viewerID, target)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return models.Tally{}, models.NoVote, err
	}
	return tally, models.StateOf(v), nil
}

// ListTags returns the tags attached to at least one question.
func (s *QuestionService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).ListInUse(ctx)
}

// ByTag lists questions carrying the named tag, newest first. An unknown
// tag yields an empty list.
func (s *QuestionService) ByTag(ctx context.Context, name string) ([]*models.QuestionSummary, error) {
	tag, err := s.repomanager.Tags(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	list, err := s.repomanager.Questions(s.db).ListByTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	return s.withTags(ctx, list)
}

// Search finds questions whose title or details contain query. A query that
// starts with '#' or '%' is a tag lookup; a blank query, or one that is just
// '#' or '%', finds nothing.
func (s *QuestionService) Search(ctx context.Context, query string) ([]*models.QuestionSummary, error) {
	switch strings.TrimSpace(query) {
	case "", "#", "%":
		return nil, nil
	}
	if query[0] == '#' || query[0] == '%' {
		return s.ByTag(ctx, query[1:])
	}

	list, err := s.repomanager.Questions(s.db).Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.withTags(ctx, list)
}

func (s *QuestionService) withTags(ctx context.Context, list []*models.QuestionSummary) ([]*models.QuestionSummary, error) {
	repo := s.repomanager.Tags(s.db)
	for _, q := range list {
		t, err := repo.ListForQuestion(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Tags = t
	}
	return list, nil
}
