package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"time"
)

type SessionService interface {
	IssueSessionToken(userID, role string) (token string, expiresAt time.Time, err error)
	// ParseSessionToken validates the token and rejects revoked ones.
	ParseSessionToken(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, session *models.Session) error
	IssueVerificationToken(userID string) (string, error)
	ParseVerificationToken(token string) (userID string, err error)
}

type AuthorizationPolicy interface {
	Authorize(role, resource, action, ownership string) error
}
