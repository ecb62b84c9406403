package models

import "time"

type Tag struct {
	ID   int64
	Name string
}

type Question struct {
	ID        int64
	Title     string
	Details   *string
	OwnerID   int64
	OwnerName string
	CreatedAt time.Time
	UpdatedAt *time.Time
	Tags      []Tag
}

// QuestionSummary is a question row in tag listings and search results.
type QuestionSummary struct {
	Question
	Views   int64
	Answers int64
	Votes   int64
}

type Answer struct {
	ID         int64
	Content    string
	OwnerID    int64
	OwnerName  string
	QuestionID int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// AnswerDetail is an answer as shown under its question.
type AnswerDetail struct {
	Answer
	Tally  Tally
	MyVote VoteState
}

// QuestionDetail is everything the question page needs in one value.
type QuestionDetail struct {
	Question
	Views   int64
	Tally   Tally
	MyVote  VoteState
	Answers []*AnswerDetail
}
