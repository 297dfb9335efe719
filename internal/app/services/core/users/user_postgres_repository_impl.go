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

type userPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewUserPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRepository {
	return &userPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *userPostgresRepository) Create(ctx context.Context, user *models.User) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertUser,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *userPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, queries.GetUserByEmail, email)
}

func (r *userPostgresRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, queries.GetUserByID, userID)
}

func (r *userPostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &user, nil
}

func (r *userPostgresRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	if _, err := r.DB.ExecContext(ctx, queries.MarkUserEmailVerified, userID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *userPostgresRepository) UpdateFullName(ctx context.Context, userID, fullName string) error {
	if _, err := r.DB.ExecContext(ctx, queries.UpdateUserFullName, fullName, userID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
