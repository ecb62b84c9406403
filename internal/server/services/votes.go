package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/dbx"
	"github.com/dmitrijs2005/asklee/internal/server/models"
	"github.com/dmitrijs2005/asklee/internal/server/repositories/repomanager"
)

// maxVoteAttempts bounds retries after losing a race on a first vote.
const maxVoteAttempts = 3

// VoteResult is the ledger state after a vote together with fresh tallies.
type VoteResult struct {
	State models.VoteState
	Tally models.Tally
}

// VoteService is the vote ledger. A voter holds at most one vote per
// target; pressing the same direction again withdraws it.
type VoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewVoteService(db *sql.DB, m repomanager.RepositoryManager) *VoteService {
	return &VoteService{db: db, repomanager: m}
}

func (s *VoteService) VoteQuestion(ctx context.Context, voterID, questionID int64, d models.Direction) (*VoteResult, error) {
	return s.SetVote(ctx, voterID, models.Target{Kind: models.TargetQuestion, ID: questionID}, d)
}

func (s *VoteService) VoteAnswer(ctx context.Context, voterID, answerID int64, d models.Direction) (*VoteResult, error) {
	return s.SetVote(ctx, voterID, models.Target{Kind: models.TargetAnswer, ID: answerID}, d)
}

// SetVote applies direction d to the voter's current state on target.
// A concurrent first vote by the same voter makes the insert fail with
// ErrorConflict; the whole read-modify-write is then retried.
func (s *VoteService) SetVote(ctx context.Context, voterID int64, target models.Target, d models.Direction) (*VoteResult, error) {
	for attempt := 1; ; attempt++ {
		res, err := s.setVote(ctx, voterID, target, d)
		if errors.Is(err, common.ErrorConflict) && attempt < maxVoteAttempts {
			continue
		}
		return res, err
	}
}

func (s *VoteService) checkTarget(ctx context.Context, tx dbx.DBTX, target models.Target) error {
	var err error
	switch target.Kind {
	case models.TargetQuestion:
		_, err = s.repomanager.Questions(tx).GetByID(ctx, target.ID)
	case models.TargetAnswer:
		_, err = s.repomanager.Answers(tx).GetByID(ctx, target.ID)
	default:
		err = common.ErrorNotFound
	}
	return err
}

func (s *VoteService) setVote(ctx context.Context, voterID int64, target models.Target, d models.Direction) (*VoteResult, error) {
	var result *VoteResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkTarget(ctx, tx, target); err != nil {
			return err
		}

		repo := s.repomanager.Votes(tx)
		current, err := repo.FindForUpdate(ctx, voterID, target)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		next := models.StateOf(current).Apply(d)
		switch {
		case current == nil:
			_, err = repo.Create(ctx, &models.Vote{VoterID: voterID, Target: target, IsUpvote: d.IsUpvote()})
		case next == models.NoVote:
			err = repo.Delete(ctx, current)
		default:
			err = repo.SetDirection(ctx, current, next == models.Upvoted)
		}
		if err != nil {
			return err
		}

		tally, err := repo.Tally(ctx, target)
		if err != nil {
			return err
		}
		result = &VoteResult{State: next, Tally: tally}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
