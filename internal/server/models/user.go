package models

import "time"

type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserPage lists what a user asked and the distinct questions they answered.
type UserPage struct {
	User              *User
	QuestionsAsked    []*Question
	QuestionsAnswered []*Question
}
