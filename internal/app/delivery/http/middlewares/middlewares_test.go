package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (f *fakeSessionService) IssueSessionToken(userID, role string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (f *fakeSessionService) ParseSessionToken(ctx context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, exceptions.ErrTokenInvalidOrExpired(nil)
}

func (f *fakeSessionService) Revoke(ctx context.Context, session *models.Session) error { return nil }

func (f *fakeSessionService) IssueVerificationToken(userID string) (string, error) { return "", nil }

func (f *fakeSessionService) ParseVerificationToken(token string) (string, error) { return "", nil }

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &fakeSessionService{sessions: map[string]*models.Session{
		"good-token": {UserID: "pu-1", Role: "PATIENT"},
	}}, &config.InternalConfig{App: config.App{JobAPIKey: "job-key-12345", MaxRequests: 2, MaxTimeRequestsPerSeconds: 60}}, nil)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		require.True(t, ok)
		assert.Equal(t, "pu-1", session.UserID)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, false, decodeBody(t, rr)["success"])
	})

	t.Run("Unknown Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireJobAPIKey(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.RequireJobAPIKey(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH).(bool)
		assert.True(t, ok && apiKeyAuth)
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		key    string
		status int
	}{
		{"Valid API Key", "job-key-12345", http.StatusOK},
		{"Missing API Key", "", http.StatusUnauthorized},
		{"Invalid API Key", "job-key-wrong", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/appointment-reminders", nil)
			if tc.key != "" {
				req.Header.Set(constvars.HeaderAPIKey, tc.key)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tc.status, rr.Code)
		})
	}

	t.Run("Unset Key Disables Endpoint", func(t *testing.T) {
		m := newTestMiddlewares()
		m.InternalConfig.App.JobAPIKey = ""
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/appointment-reminders", nil)
		rr := httptest.NewRecorder()
		m.RequireJobAPIKey(http.NotFoundHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.RequestIDMiddleware(m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	assert.Equal(t, false, decodeBody(t, rr)["success"])
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-id-1", seen)
	assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))
}

func TestRateLimit(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
