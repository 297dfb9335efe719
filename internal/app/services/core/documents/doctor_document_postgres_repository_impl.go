package documents

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type doctorDocumentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewDoctorDocumentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.DoctorDocumentRepository {
	return &doctorDocumentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func scanDoctorDocument(row rowScanner) (*models.DoctorDocument, error) {
	var d models.DoctorDocument
	err := row.Scan(&d.ID, &d.DoctorID, &d.Title, &d.FileURL, &d.FileType, &d.FileName, &d.Size, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorDocumentPostgresRepository) Create(ctx context.Context, document *models.DoctorDocument) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertDoctorDocument,
		document.DoctorID,
		document.Title,
		document.FileURL,
		document.FileType,
		document.FileName,
		document.Size,
		document.Status,
	).Scan(&document.ID, &document.CreatedAt, &document.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *doctorDocumentPostgresRepository) FindByID(ctx context.Context, documentID string) (*models.DoctorDocument, error) {
	document, err := scanDoctorDocument(r.DB.QueryRowContext(ctx, queries.GetDoctorDocumentByID, documentID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return document, nil
}

func (r *doctorDocumentPostgresRepository) List(ctx context.Context, filter models.DoctorDocumentFilter) ([]models.DoctorDocument, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountDoctorDocuments, filter.DoctorID, filter.Status).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListDoctorDocuments, filter.DoctorID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	documents := make([]models.DoctorDocument, 0)
	for rows.Next() {
		document, err := scanDoctorDocument(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return documents, total, nil
}

func (r *doctorDocumentPostgresRepository) UpdateStatus(ctx context.Context, documentID, status string) error {
	if _, err := r.DB.ExecContext(ctx, queries.UpdateDoctorDocumentStatus, status, documentID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
