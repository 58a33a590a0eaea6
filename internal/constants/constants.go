package constants

import "time"

// Context keys for values set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"
)

// Authentication
const (
	BearerPrefix = "Bearer "
	BcryptCost   = 10
	// TokenTTL is the fixed validity window for issued tokens. There is
	// no refresh or revocation; expiry alone ends a session.
	TokenTTL = 9 * 24 * time.Hour
)
