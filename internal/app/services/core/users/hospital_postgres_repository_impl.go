package users

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type hospitalPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewHospitalPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.HospitalRepository {
	return &hospitalPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *hospitalPostgresRepository) Create(ctx context.Context, hospital *models.Hospital) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertHospital, hospital.Name, hospital.Address, hospital.Phone).
		Scan(&hospital.ID, &hospital.CreatedAt, &hospital.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *hospitalPostgresRepository) List(ctx context.Context) ([]models.Hospital, error) {
	rows, err := r.DB.QueryContext(ctx, queries.ListHospitals)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	hospitals := make([]models.Hospital, 0)
	for rows.Next() {
		var model models.Hospital
		if err := rows.Scan(&model.ID, &model.Name, &model.Address, &model.Phone, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		hospitals = append(hospitals, model)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return hospitals, nil
}
