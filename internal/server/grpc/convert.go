package grpc

import (
	"fmt"

	"github.com/dmitrijs2005/asklee/internal/api"
	"github.com/dmitrijs2005/asklee/internal/common"
	"github.com/dmitrijs2005/asklee/internal/server/models"
)

func toUser(u *models.User) *api.User {
	return &api.User{ID: u.ID, Username: u.UserName, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toQuestion(q *models.Question) *api.Question {
	out := &api.Question{
		ID:        q.ID,
		Title:     q.Title,
		Details:   q.Details,
		OwnerID:   q.OwnerID,
		OwnerName: q.OwnerName,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for _, t := range q.Tags {
		out.Tags = append(out.Tags, t.Name)
	}
	return out
}

func toQuestions(list []*models.Question) []*api.Question {
	out := make([]*api.Question, 0, len(list))
	for _, q := range list {
		out = append(out, toQuestion(q))
	}
	return out
}

func toSummaries(list []*models.QuestionSummary) []*api.QuestionSummary {
	out := make([]*api.QuestionSummary, 0, len(list))
	for _, q := range list {
		out = append(out, &api.QuestionSummary{
			Question: *toQuestion(&q.Question),
			Views:    q.Views,
			Answers:  q.Answers,
			Votes:    q.Votes,
		})
	}
	return out
}

func toAnswer(a *models.Answer) *api.Answer {
	return &api.Answer{
		ID:         a.ID,
		Content:    a.Content,
		OwnerID:    a.OwnerID,
		OwnerName:  a.OwnerName,
		QuestionID: a.QuestionID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		MyVote:     models.NoVote.String(),
	}
}

func toDetail(d *models.QuestionDetail) *api.QuestionDetail {
	out := &api.QuestionDetail{
		Question:  *toQuestion(&d.Question),
		Views:     d.Views,
		Upvotes:   d.Tally.Up,
		Downvotes: d.Tally.Down,
		MyVote:    d.MyVote.String(),
		Answers:   make([]*api.Answer, 0, len(d.Answers)),
	}
	for _, ad := range d.Answers {
		a := toAnswer(&ad.Answer)
		a.Upvotes, a.Downvotes, a.MyVote = ad.Tally.Up, ad.Tally.Down, ad.MyVote.String()
		out.Answers = append(out.Answers, a)
	}
	return out
}

func parseDirection(s string) (models.Direction, error) {
	switch s {
	case common.DirectionUp:
		return models.Up, nil
	case common.DirectionDown:
		return models.Down, nil
	default:
		return 0, fmt.Errorf("%w: direction must be %q or %q", common.ErrorValidation, common.DirectionUp, common.DirectionDown)
	}
}
