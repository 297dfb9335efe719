package models

import "time"

// Session is the authenticated caller resolved from a bearer token.
type Session struct {
	TokenID   string
	UserID    string
	Role      string
	ExpiresAt time.Time
}
