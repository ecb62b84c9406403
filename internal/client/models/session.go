// Package models defines client-side data models used by the Asklee CLI.
package models

// Session is the login the CLI keeps between runs.
type Session struct {
	Username     string
	AccessToken  string
	RefreshToken string
}
