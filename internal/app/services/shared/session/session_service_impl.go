package session

import (
	"context"
	"errors"
	"fmt"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type claims struct {
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type sessionService struct {
	Log               *zap.Logger
	RedisRepository   contracts.RedisRepository
	secret            []byte
	issuer            string
	sessionExpiry     time.Duration
	verifyEmailExpiry time.Duration
	now               func() time.Time
}

func NewSessionService(logger *zap.Logger, redisRepository contracts.RedisRepository, jwtConfig config.AppJWT) contracts.SessionService {
	return &sessionService{
		Log:               logger,
		RedisRepository:   redisRepository,
		secret:            []byte(jwtConfig.Secret),
		issuer:            jwtConfig.Issuer,
		sessionExpiry:     jwtConfig.SessionExpiry,
		verifyEmailExpiry: jwtConfig.VerifyEmailExpiry,
		now:               time.Now,
	}
}

func (s *sessionService) IssueSessionToken(userID, role string) (string, time.Time, error) {
	expiresAt := s.now().Add(s.sessionExpiry)
	token, err := s.sign(claims{
		Role:    role,
		Purpose: constvars.TokenPurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *sessionService) ParseSessionToken(ctx context.Context, token string) (*models.Session, error) {
	parsed, err := s.parse(token, constvars.TokenPurposeSession)
	if err != nil {
		return nil, err
	}

	revoked, err := s.RedisRepository.Exists(ctx, fmt.Sprintf(constvars.RedisKeyRevokedTokenFormat, parsed.ID))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, exceptions.ErrTokenRevoked(nil)
	}

	return &models.Session{
		TokenID:   parsed.ID,
		UserID:    parsed.Subject,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}

// Revoke denylists the token id until the token would have expired anyway.
func (s *sessionService) Revoke(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("sessionService.Revoke called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return s.RedisRepository.Set(ctx, fmt.Sprintf(constvars.RedisKeyRevokedTokenFormat, session.TokenID), constvars.RedisRevokedTokenMarkerValue, ttl)
}

func (s *sessionService) IssueVerificationToken(userID string) (string, error) {
	return s.sign(claims{
		Purpose: constvars.TokenPurposeVerifyEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.verifyEmailExpiry)),
		},
	})
}

func (s *sessionService) ParseVerificationToken(token string) (string, error) {
	parsed, err := s.parse(token, constvars.TokenPurposeVerifyEmail)
	if err != nil {
		return "", err
	}
	return parsed.Subject, nil
}

func (s *sessionService) sign(c claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return signed, nil
}

func (s *sessionService) parse(token, purpose string) (*claims, error) {
	if token == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	parsed := &claims{}
	_, err := jwt.ParseWithClaims(token, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}
	if parsed.Purpose != purpose || parsed.Subject == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New(constvars.ErrDevAuthTokenPurpose))
	}
	return parsed, nil
}
