package payments

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

type paymentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPaymentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var appointmentID, gatewayRef, description sql.NullString
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&appointmentID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.Status,
		&p.Reference,
		&gatewayRef,
		&description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if appointmentID.Valid {
		p.AppointmentID = &appointmentID.String
	}
	if gatewayRef.Valid {
		p.GatewayReference = &gatewayRef.String
	}
	p.Description = description.String
	return &p, nil
}

func (r *paymentPostgresRepository) Create(ctx context.Context, payment *models.Payment) error {
	var appointmentID interface{}
	if payment.AppointmentID != nil {
		appointmentID = *payment.AppointmentID
	}
	err := r.DB.QueryRowContext(ctx, queries.InsertPayment,
		payment.ID,
		payment.UserID,
		appointmentID,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.Reference,
		payment.Description,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *paymentPostgresRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := scanPayment(r.DB.QueryRowContext(ctx, queries.GetPaymentByReference, reference))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return payment, nil
}

func (r *paymentPostgresRepository) SetGatewayReference(ctx context.Context, paymentID, gatewayReference string) error {
	if _, err := r.DB.ExecContext(ctx, queries.SetPaymentGatewayReference, gatewayReference, paymentID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *paymentPostgresRepository) UpdateStatusIfPending(ctx context.Context, reference, status, gatewayReference string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.UpdatePaymentStatusIfPending, status, reference, gatewayReference)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return false, exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected == 1, nil
}

func (r *paymentPostgresRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountPayments, filter.UserID, filter.Status).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListPayments, filter.UserID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return payments, total, nil
}
