package middlewares

import (
	"net/http"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests per client IP and answers with the JSON error
// envelope once the window is exhausted.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	window := time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(r.RemoteAddr))
		}),
	)
}
