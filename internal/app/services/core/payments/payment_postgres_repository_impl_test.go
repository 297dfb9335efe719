package payments

import (
	"context"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentPostgresRepository_UpdateStatusIfPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewPaymentPostgresRepository(db, zap.NewNop())

	t.Run("Success Stores Gateway Reference", func(t *testing.T) {
		mock.ExpectExec(queries.UpdatePaymentStatusIfPending).
			WithArgs("SUCCESS", "ref-1", "4099260516").
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.UpdateStatusIfPending(context.Background(), "ref-1", "SUCCESS", "4099260516")
		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("Already Settled", func(t *testing.T) {
		mock.ExpectExec(queries.UpdatePaymentStatusIfPending).
			WithArgs("FAILED", "ref-1", "").
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.UpdateStatusIfPending(context.Background(), "ref-1", "FAILED", "")
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("Reused Gateway Reference Is Conflict", func(t *testing.T) {
		mock.ExpectExec(queries.UpdatePaymentStatusIfPending).
			WithArgs("SUCCESS", "ref-2", "4099260516").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_payments_success_gateway_reference"})

		applied, err := repo.UpdateStatusIfPending(context.Background(), "ref-2", "SUCCESS", "4099260516")
		assert.False(t, applied)
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
