package users

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserPostgresRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgresRepository(db, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(queries.InsertUser).
			WithArgs("ama@example.com", "Ama Mensah", "hash", "PATIENT").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email_verified", "created_at", "updated_at"}).
				AddRow("user-1", false, now, now))

		user := &models.User{Email: "ama@example.com", FullName: "Ama Mensah", PasswordHash: "hash", Role: "PATIENT"}
		require.NoError(t, repo.Create(context.Background(), user))
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("Duplicate Email Is Conflict", func(t *testing.T) {
		mock.ExpectQuery(queries.InsertUser).
			WithArgs("ama@example.com", "Ama Mensah", "hash", "PATIENT").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		user := &models.User{Email: "ama@example.com", FullName: "Ama Mensah", PasswordHash: "hash", Role: "PATIENT"}
		err := repo.Create(context.Background(), user)
		require.Error(t, err)
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientPostgresRepository_FindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientPostgresRepository(db, zap.NewNop())
	now := time.Now()
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(queries.GetPatientByUserID).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date_of_birth", "gender", "phone", "address", "medical_history", "full_name", "email", "created_at", "updated_at"}).
			AddRow("pat-1", "user-1", dob, "FEMALE", "", "", "", "Ama Mensah", "ama@example.com", now, now))

	patient, err := repo.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, patient.DateOfBirth)
	assert.True(t, dob.Equal(*patient.DateOfBirth))
	assert.Equal(t, "Ama Mensah", patient.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
