package prescriptions

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type prescriptionPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPrescriptionPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PrescriptionRepository {
	return &prescriptionPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrescription(row rowScanner) (*models.Prescription, error) {
	var (
		p            models.Prescription
		instructions sql.NullString
	)
	err := row.Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Medication, &p.Dosage, &instructions,
		&p.DoctorName, &p.PatientName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Instructions = instructions.String
	return &p, nil
}

func (r *prescriptionPostgresRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertPrescription,
		prescription.DoctorID,
		prescription.PatientID,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
	).Scan(&prescription.ID, &prescription.CreatedAt, &prescription.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *prescriptionPostgresRepository) FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	prescription, err := scanPrescription(r.DB.QueryRowContext(ctx, queries.GetPrescriptionByID, prescriptionID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return prescription, nil
}

func (r *prescriptionPostgresRepository) List(ctx context.Context, filter models.PrescriptionFilter) ([]models.Prescription, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountPrescriptions, filter.PatientID, filter.DoctorID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListPrescriptions, filter.PatientID, filter.DoctorID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	prescriptions := make([]models.Prescription, 0)
	for rows.Next() {
		prescription, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		prescriptions = append(prescriptions, *prescription)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return prescriptions, total, nil
}

func (r *prescriptionPostgresRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdatePrescription,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
		prescription.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
