// Package validation checks request fields before any entity is built and
// reports every offending field at once.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/asklee/internal/common"
)

const (
	UsernameMinLen = 5
	UsernameMaxLen = 50
	EmailMaxLen    = 120
	PasswordMinLen = 8
	// bcrypt ignores input past 72 bytes, so longer passwords are refused.
	PasswordMaxBytes = 72

	TitleMaxLen         = 300
	TitleMinLenOnCreate = 15
	TitleMinLenOnUpdate = 10

	AnswerMinLen = 15
	TagMaxLen    = 70
)

var (
	usernamePattern = regexp.MustCompile(`^[0-9A-Za-z@.+\-_]+$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)
)

// FieldError names one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors. It matches common.ErrorValidation with errors.Is.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when nothing was added.
func (e *Errors) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *Errors) Is(target error) bool {
	return target == common.ErrorValidation
}

func length(s string) int { return utf8.RuneCountInString(s) }

func checkUsername(errs *Errors, username string) {
	switch {
	case username == "":
		errs.Add("username", "is required")
	case length(username) > UsernameMaxLen:
		errs.Add("username", "is too long")
	case length(username) < UsernameMinLen:
		errs.Add("username", "is too short")
	case !usernamePattern.MatchString(username):
		errs.Add("username", "letters, digits and @/./+/-/_ only")
	}
}

func checkEmail(errs *Errors, email string) {
	switch {
	case email == "":
		errs.Add("email", "is required")
	case length(email) > EmailMaxLen:
		errs.Add("email", "is too long")
	case !emailPattern.MatchString(email):
		errs.Add("email", "is not a valid address")
	}
}

// Registration checks the sign-up form.
func Registration(username, email, password, confirmation string) error {
	errs := &Errors{}
	checkUsername(errs, username)
	checkEmail(errs, email)
	switch {
	case password == "":
		errs.Add("password", "is required")
	case len(password) > PasswordMaxBytes:
		errs.Add("password", "is too long")
	case length(password) < PasswordMinLen:
		errs.Add("password", "is too short")
	}
	if password != confirmation {
		errs.Add("password_confirmation", "passwords do not match")
	}
	return errs.Err()
}

// Login checks that both credentials are present.
func Login(email, password string) error {
	errs := &Errors{}
	if email == "" {
		errs.Add("email", "is required")
	}
	if password == "" {
		errs.Add("password", "is required")
	}
	return errs.Err()
}

// Profile checks a profile update.
func Profile(username, email string) error {
	errs := &Errors{}
	checkUsername(errs, username)
	checkEmail(errs, email)
	return errs.Err()
}

func checkTitle(errs *Errors, title string, minLen int) {
	switch {
	case title == "":
		errs.Add("title", "is required")
	case length(title) > TitleMaxLen:
		errs.Add("title", "is too long")
	case length(title) < minLen:
		errs.Add("title", "is too short")
	}
}

func checkTags(errs *Errors, names []string) {
	for _, name := range names {
		if length(name) > TagMaxLen {
			errs.Add("tags", "tag "+name+" is too long")
		}
	}
}

// NewQuestion checks a question being asked. Tag names must already be normalized.
func NewQuestion(title string, tagNames []string) error {
	errs := &Errors{}
	checkTitle(errs, title, TitleMinLenOnCreate)
	checkTags(errs, tagNames)
	return errs.Err()
}

// QuestionUpdate checks an edit. The minimum title length is lower than on create.
func QuestionUpdate(title string, tagNames []string) error {
	errs := &Errors{}
	checkTitle(errs, title, TitleMinLenOnUpdate)
	checkTags(errs, tagNames)
	return errs.Err()
}

// AnswerContent checks an answer body.
func AnswerContent(content string) error {
	errs := &Errors{}
	switch {
	case content == "":
		errs.Add("content", "is required")
	case length(content) < AnswerMinLen:
		errs.Add("content", "is too short")
	}
	return errs.Err()
}
