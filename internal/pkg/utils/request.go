package utils

import (
	"net/http"
	"strconv"
	"strings"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.URLQueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.URLQueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = constvars.DefaultPage
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// GetURLParamUUID reads a chi path parameter and checks it is a UUID.
func GetURLParamUUID(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if _, err := uuid.Parse(value); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, name)
	}
	return value, nil
}

// GetQueryStatus returns the upper-cased status filter, or "" when absent.
func GetQueryStatus(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamStatus)))
}

func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(constvars.HeaderAuthorization))
	if !strings.HasPrefix(header, constvars.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constvars.BearerPrefix))
}
