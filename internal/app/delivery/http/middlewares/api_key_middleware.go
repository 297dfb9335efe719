package middlewares

import (
	"context"
	"crypto/subtle"
	"net/http"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RequireJobAPIKey guards internal job triggers. An unset key disables the
// endpoints entirely.
func (m *Middlewares) RequireJobAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		expected := m.InternalConfig.App.JobAPIKey

		if apiKey == "" || expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			utils.LogSecurityEvent(m.Log, "job_api_key_rejected", utils.GetRequestID(r.Context()), utils.SeverityMedium,
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
