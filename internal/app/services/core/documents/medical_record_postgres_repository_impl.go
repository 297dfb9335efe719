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

type medicalRecordPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewMedicalRecordPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.MedicalRecordRepository {
	return &medicalRecordPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedicalRecord(row rowScanner) (*models.MedicalRecord, error) {
	var r models.MedicalRecord
	err := row.Scan(&r.ID, &r.PatientID, &r.UploadedBy, &r.Title, &r.FileURL, &r.FileType, &r.FileName, &r.Size, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *medicalRecordPostgresRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertMedicalRecord,
		record.PatientID,
		record.UploadedBy,
		record.Title,
		record.FileURL,
		record.FileType,
		record.FileName,
		record.Size,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *medicalRecordPostgresRepository) FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	record, err := scanMedicalRecord(r.DB.QueryRowContext(ctx, queries.GetMedicalRecordByID, recordID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return record, nil
}

func (r *medicalRecordPostgresRepository) List(ctx context.Context, filter models.MedicalRecordFilter) ([]models.MedicalRecord, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountMedicalRecords, filter.PatientID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListMedicalRecords, filter.PatientID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	records := make([]models.MedicalRecord, 0)
	for rows.Next() {
		record, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return records, total, nil
}

func (r *medicalRecordPostgresRepository) Delete(ctx context.Context, recordID string) error {
	if _, err := r.DB.ExecContext(ctx, queries.DeleteMedicalRecord, recordID); err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}
