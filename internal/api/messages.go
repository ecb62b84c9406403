package api

import (
	"time"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Question struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Details   *string    `json:"details,omitempty"`
	OwnerID   int64      `json:"owner_id"`
	OwnerName string     `json:"owner_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// QuestionSummary is a row of a tag listing or search result.
type QuestionSummary struct {
	Question
	Views   int64 `json:"views"`
	Answers int64 `json:"answers"`
	Votes   int64 `json:"votes"`
}

// Answer carries the vote tallies and, for authenticated callers, the
// caller's own vote ("upvoted", "downvoted" or "none").
type Answer struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	OwnerID    int64      `json:"owner_id"`
	OwnerName  string     `json:"owner_name"`
	QuestionID int64      `json:"question_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Upvotes    int64      `json:"upvotes"`
	Downvotes  int64      `json:"downvotes"`
	MyVote     string     `json:"my_vote"`
}

type QuestionDetail struct {
	Question
	Views     int64     `json:"views"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	MyVote    string    `json:"my_vote"`
	Answers   []*Answer `json:"answers"`
}

type RegisterRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type RegisterResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse = emptypb.Empty

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}

// GetUserPageRequest with an empty Username asks for the caller's own page.
type GetUserPageRequest struct {
	Username string `json:"username"`
}

type GetUserPageResponse struct {
	User     *User       `json:"user"`
	Asked    []*Question `json:"asked"`
	Answered []*Question `json:"answered"`
}

// AskQuestionRequest.Tags is free text: comma separated tags, spaces inside
// a tag become hyphens.
type AskQuestionRequest struct {
	Title   string  `json:"title"`
	Details *string `json:"details,omitempty"`
	Tags    string  `json:"tags"`
}

type AskQuestionResponse struct {
	Question *Question `json:"question"`
}

type UpdateQuestionRequest struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Details *string `json:"details,omitempty"`
	Tags    string  `json:"tags"`
}

type UpdateQuestionResponse struct {
	Question *Question `json:"question"`
}

type DeleteQuestionRequest struct {
	ID int64 `json:"id"`
}

type DeleteQuestionResponse = emptypb.Empty

type GetQuestionRequest struct {
	ID int64 `json:"id"`
}

type GetQuestionResponse struct {
	Question *QuestionDetail `json:"question"`
}

type PostAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Content    string `json:"content"`
}

type PostAnswerResponse struct {
	Answer *Answer `json:"answer"`
}

type UpdateAnswerRequest struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type UpdateAnswerResponse struct {
	Answer *Answer `json:"answer"`
}

type DeleteAnswerRequest struct {
	ID int64 `json:"id"`
}

type DeleteAnswerResponse = emptypb.Empty

// VoteRequest.Direction is "up" or "down".
type VoteRequest struct {
	ID        int64  `json:"id"`
	Direction string `json:"direction"`
}

type VoteResponse struct {
	State     string `json:"state"`
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
}

type ListTagsRequest struct{}

type ListTagsResponse struct {
	Tags []*Tag `json:"tags"`
}

type QuestionsByTagRequest struct {
	Tag string `json:"tag"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type QuestionsResponse struct {
	Questions []*QuestionSummary `json:"questions"`
}

type PingRequest = emptypb.Empty

// PingResponse carries the server status, "OK" when healthy.
type PingResponse = wrapperspb.StringValue
