package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreatePrescription) (*models.Prescription, error)
	List(ctx context.Context, session *models.Session, pagination requests.Pagination) (*responses.Page[models.Prescription], error)
	Get(ctx context.Context, session *models.Session, prescriptionID string) (*models.Prescription, error)
	Update(ctx context.Context, session *models.Session, prescriptionID string, request *requests.UpdatePrescription) (*models.Prescription, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	List(ctx context.Context, filter models.PrescriptionFilter) ([]models.Prescription, int, error)
	Update(ctx context.Context, prescription *models.Prescription) error
}
