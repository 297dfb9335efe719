package contracts

import (
	"context"
	"io"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"time"
)

type StorageService interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectKey string) error
	GetSignedURL(ctx context.Context, objectKey string, ttl time.Duration, downloadName string) (string, error)
	GetPublicURL(objectKey string) string
	// StoragePath returns the object key of a stored URL, or the input unchanged
	// when it does not point into the bucket.
	StoragePath(storedURL string) (string, bool)
}

type DocumentUsecase interface {
	UploadMedicalRecord(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.MedicalRecord, error)
	ListMedicalRecords(ctx context.Context, session *models.Session, query requests.MedicalRecordQuery) (*responses.Page[models.MedicalRecord], error)
	DownloadMedicalRecord(ctx context.Context, session *models.Session, recordID string) (*responses.DocumentURL, error)
	DeleteMedicalRecord(ctx context.Context, session *models.Session, recordID string) error
	UploadDoctorDocument(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.DoctorDocument, error)
	ListDoctorDocuments(ctx context.Context, session *models.Session, query requests.DoctorDocumentQuery) (*responses.Page[models.DoctorDocument], error)
	DownloadDoctorDocument(ctx context.Context, session *models.Session, documentID string) (*responses.DocumentURL, error)
	UpdateDoctorDocumentStatus(ctx context.Context, session *models.Session, documentID string, request *requests.UpdateDocumentStatus) (*models.DoctorDocument, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *models.MedicalRecord) error
	FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error)
	List(ctx context.Context, filter models.MedicalRecordFilter) ([]models.MedicalRecord, int, error)
	Delete(ctx context.Context, recordID string) error
}

type DoctorDocumentRepository interface {
	Create(ctx context.Context, document *models.DoctorDocument) error
	FindByID(ctx context.Context, documentID string) (*models.DoctorDocument, error)
	List(ctx context.Context, filter models.DoctorDocumentFilter) ([]models.DoctorDocument, int, error)
	UpdateStatus(ctx context.Context, documentID, status string) error
}
