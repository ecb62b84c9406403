package grpc

import (
	"context"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/server/services"
)

func (s *GRPCServer) AskQuestion(ctx context.Context, req *api.AskQuestionRequest) (*api.AskQuestionResponse, error) {
	userID, _ := userIDFromContext(ctx)
	q, err := s.questions.Create(ctx, userID, req.Title, req.Details, req.Tags)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Question asked", "question_id", q.ID, "user_id", userID, "tags", len(q.Tags))
	return &api.AskQuestionResponse{Question: toQuestion(q)}, nil
}

func (s *GRPCServer) UpdateQuestion(ctx context.Context, req *api.UpdateQuestionRequest) (*api.UpdateQuestionResponse, error) {
	userID, _ := userIDFromContext(ctx)
	q, err := s.questions.Update(ctx, userID, req.ID, req.Title, req.Details, req.Tags)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.UpdateQuestionResponse{Question: toQuestion(q)}, nil
}

func (s *GRPCServer) DeleteQuestion(ctx context.Context, req *api.DeleteQuestionRequest) (*api.DeleteQuestionResponse, error) {
	userID, _ := userIDFromContext(ctx)
	if err := s.questions.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Question deleted", "question_id", req.ID, "user_id", userID)
	return &api.DeleteQuestionResponse{}, nil
}

// GetQuestion is open to anonymous callers; an authenticated caller's view
// is recorded.
func (s *GRPCServer) GetQuestion(ctx context.Context, req *api.GetQuestionRequest) (*api.GetQuestionResponse, error) {
	viewerID, _ := userIDFromContext(ctx)
	d, err := s.questions.Detail(ctx, viewerID, req.ID)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.GetQuestionResponse{Question: toDetail(d)}, nil
}

func (s *GRPCServer) PostAnswer(ctx context.Context, req *api.PostAnswerRequest) (*api.PostAnswerResponse, error) {
	userID, _ := userIDFromContext(ctx)
	a, err := s.answers.Create(ctx, userID, req.QuestionID, req.Content)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.PostAnswerResponse{Answer: toAnswer(a)}, nil
}

func (s *GRPCServer) UpdateAnswer(ctx context.Context, req *api.UpdateAnswerRequest) (*api.UpdateAnswerResponse, error) {
	userID, _ := userIDFromContext(ctx)
	a, err := s.answers.Update(ctx, userID, req.ID, req.Content)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.UpdateAnswerResponse{Answer: toAnswer(a)}, nil
}

func (s *GRPCServer) DeleteAnswer(ctx context.Context, req *api.DeleteAnswerRequest) (*api.DeleteAnswerResponse, error) {
	userID, _ := userIDFromContext(ctx)
	if err := s.answers.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.DeleteAnswerResponse{}, nil
}

func toVoteResponse(r *services.VoteResult) *api.VoteResponse {
	return &api.VoteResponse{State: r.State.String(), Upvotes: r.Tally.Up, Downvotes: r.Tally.Down}
}

func (s *GRPCServer) VoteQuestion(ctx context.Context, req *api.VoteRequest) (*api.VoteResponse, error) {
	d, err := parseDirection(req.Direction)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	userID, _ := userIDFromContext(ctx)
	res, err := s.votes.VoteQuestion(ctx, userID, req.ID, d)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return toVoteResponse(res), nil
}

func (s *GRPCServer) VoteAnswer(ctx context.Context, req *api.VoteRequest) (*api.VoteResponse, error) {
	d, err := parseDirection(req.Direction)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	userID, _ := userIDFromContext(ctx)
	res, err := s.votes.VoteAnswer(ctx, userID, req.ID, d)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return toVoteResponse(res), nil
}

func (s *GRPCServer) ListTags(ctx context.Context, req *api.ListTagsRequest) (*api.ListTagsResponse, error) {
	tags, err := s.questions.ListTags(ctx)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	out := make([]*api.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, &api.Tag{ID: t.ID, Name: t.Name})
	}
	return &api.ListTagsResponse{Tags: out}, nil
}

func (s *GRPCServer) QuestionsByTag(ctx context.Context, req *api.QuestionsByTagRequest) (*api.QuestionsResponse, error) {
	list, err := s.questions.ByTag(ctx, req.Tag)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.QuestionsResponse{Questions: toSummaries(list)}, nil
}

func (s *GRPCServer) Search(ctx context.Context, req *api.SearchRequest) (*api.QuestionsResponse, error) {
	list, err := s.questions.Search(ctx, req.Query)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &api.QuestionsResponse{Questions: toSummaries(list)}, nil
}
