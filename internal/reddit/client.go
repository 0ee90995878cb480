// Package reddit is the narrow collector-facing contract for the Reddit
// API. The rest of the tool depends only on this interface and the model
// types, never on HTTP details.
package reddit

import (
	"context"
	"errors"

	"github.com/mvoloshin/personify/internal/model"
)

// Sentinel errors for the failure classes callers distinguish. Transport
// failures are returned as plain wrapped errors (the NetworkError class).
var (
	// ErrUserNotFound covers missing, deleted, suspended, and private accounts
	ErrUserNotFound = errors.New("reddit: user not found or suspended")

	// ErrRateLimited surfaces after the bounded retry budget is spent
	ErrRateLimited = errors.New("reddit: rate limited")
)

// Client fetches a user's public data
type Client interface {
	// About returns account metadata (karma, creation date)
	About(ctx context.Context, username string) (model.UserMeta, error)

	// Submissions returns up to limit posts, newest first (API order)
	Submissions(ctx context.Context, username string, limit int) ([]model.TextItem, error)

	// Comments returns up to limit comments, newest first (API order)
	Comments(ctx context.Context, username string, limit int) ([]model.TextItem, error)
}
