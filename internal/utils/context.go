package utils

import (
	"context"
)

// Identity is the decoded bearer-token payload carried through request context.
type Identity struct {
	UserID   string
	Username string
}

type contextKey string

const (
	ContextUserIDKey   contextKey = "userID"
	ContextUsernameKey contextKey = "username"
)

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username := ctx.Value(ContextUsernameKey)
	usernameStr, ok := username.(string)
	return usernameStr, ok
}
