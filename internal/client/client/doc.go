// Package client talks to the Asklee server over gRPC.
//
// GRPCClient wraps the generated-style api.AskleeClient. It attaches the
// access token to every call, refreshes it once when the server answers
// "token expired", and keeps the session in a local SQLite store so a
// login survives restarts (see OpenSessionDB).
//
// Status codes are mapped to sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrInvalidInput, ErrAlreadyExists. The server's message is kept in the
// wrapped error text.
package client
