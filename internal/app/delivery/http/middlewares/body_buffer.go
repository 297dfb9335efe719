package middlewares

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
)

// BodyBuffer reads the request body, stores the raw bytes in the context and
// replaces the request body with a new reader so it can be consumed again by
// subsequent middlewares or handlers.
func (m *Middlewares) BodyBuffer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
		reader := io.Reader(r.Body)
		if limit > 0 {
			reader = io.LimitReader(r.Body, limit)
		}

		bodyBytes, err := io.ReadAll(reader)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrReadBody(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, bodyBytes)
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
