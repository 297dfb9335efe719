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

type doctorPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewDoctorPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.DoctorRepository {
	return &doctorPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *doctorPostgresRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertDoctor,
		doctor.UserID,
		doctor.Specialization,
		doctor.Phone,
		doctor.Address,
		nullString(doctor.HospitalID),
		doctor.Status,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return r.findOne(ctx, queries.GetDoctorByUserID, userID)
}

func (r *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return r.findOne(ctx, queries.GetDoctorByID, doctorID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*models.Doctor, error) {
	var (
		doctor     models.Doctor
		hospitalID sql.NullString
	)
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Specialization,
		&doctor.Phone,
		&doctor.Address,
		&hospitalID,
		&doctor.Status,
		&doctor.FullName,
		&doctor.Email,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if hospitalID.Valid {
		doctor.HospitalID = &hospitalID.String
	}
	return &doctor, nil
}

func (r *doctorPostgresRepository) findOne(ctx context.Context, query, arg string) (*models.Doctor, error) {
	doctor, err := scanDoctor(r.DB.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return doctor, nil
}

func (r *doctorPostgresRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	_, err := r.DB.ExecContext(ctx, queries.UpdateDoctor,
		doctor.Specialization,
		doctor.Phone,
		doctor.Address,
		nullString(doctor.HospitalID),
		doctor.ID,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) UpdateStatus(ctx context.Context, doctorID, status string) error {
	if _, err := r.DB.ExecContext(ctx, queries.UpdateDoctorStatus, status, doctorID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, queries.CountDoctors, filter.Status, filter.Specialization).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListDoctors, filter.Status, filter.Specialization, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	doctors := make([]models.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		doctors = append(doctors, *doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return doctors, total, nil
}
