package users

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPatientPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PatientRepository {
	return &patientPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *patientPostgresRepository) Create(ctx context.Context, patient *models.Patient) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertPatient,
		patient.UserID,
		nullTime(patient.DateOfBirth),
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.MedicalHistory,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *patientPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return r.findOne(ctx, queries.GetPatientByUserID, userID)
}

func (r *patientPostgresRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return r.findOne(ctx, queries.GetPatientByID, patientID)
}

func (r *patientPostgresRepository) findOne(ctx context.Context, query, arg string) (*models.Patient, error) {
	var (
		patient     models.Patient
		dateOfBirth sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&patient.ID,
		&patient.UserID,
		&dateOfBirth,
		&patient.Gender,
		&patient.Phone,
		&patient.Address,
		&patient.MedicalHistory,
		&patient.FullName,
		&patient.Email,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	if dateOfBirth.Valid {
		patient.DateOfBirth = &dateOfBirth.Time
	}
	return &patient, nil
}

func (r *patientPostgresRepository) Update(ctx context.Context, patient *models.Patient) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdatePatient,
		nullTime(patient.DateOfBirth),
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.MedicalHistory,
		patient.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
