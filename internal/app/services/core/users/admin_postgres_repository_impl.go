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

type adminPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewAdminPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AdminRepository {
	return &adminPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *adminPostgresRepository) Create(ctx context.Context, admin *models.Admin) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertAdmin, admin.UserID).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *adminPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	var admin models.Admin
	err := r.DB.QueryRowContext(ctx, queries.GetAdminByUserID, userID).
		Scan(&admin.ID, &admin.UserID, &admin.CreatedAt, &admin.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &admin, nil
}
