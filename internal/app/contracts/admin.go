package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
)

type AdminUsecase interface {
	GetStats(ctx context.Context, session *models.Session) (*models.DashboardStats, error)
	ListDoctors(ctx context.Context, session *models.Session, query requests.DoctorQuery) (*responses.Page[models.Doctor], error)
	UpdateDoctorStatus(ctx context.Context, session *models.Session, doctorID string, request *requests.UpdateDoctorStatus) (*models.Doctor, error)
}

type AdminStatsRepository interface {
	CountGrouped(ctx context.Context, query string) (map[string]int, error)
	SumSuccessfulPayments(ctx context.Context) (float64, error)
}
