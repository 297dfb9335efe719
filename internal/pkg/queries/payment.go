package queries

const (
	InsertPayment = `
		INSERT INTO payments (id, user_id, appointment_id, amount, currency, method, status, reference, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	paymentSelect = `
		SELECT id, user_id, appointment_id, amount, currency, method, status, reference,
			gateway_reference, description, created_at, updated_at
		FROM payments
	`

	GetPaymentByReference = paymentSelect + ` WHERE reference = $1`

	GetPaymentByID = paymentSelect + ` WHERE id = $1`

	SetPaymentGatewayReference = `
		UPDATE payments SET gateway_reference = $1, updated_at = NOW() WHERE id = $2
	`

	// Status only ever leaves PENDING once.
	UpdatePaymentStatusIfPending = `
		UPDATE payments
		SET status = $1,
			gateway_reference = COALESCE(NULLIF($3, ''), gateway_reference),
			updated_at = NOW()
		WHERE reference = $2 AND status = 'PENDING'
	`

	ListPayments = paymentSelect + `
		WHERE ($1 = '' OR user_id::text = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	CountPayments = `
		SELECT COUNT(*) FROM payments
		WHERE ($1 = '' OR user_id::text = $1)
			AND ($2 = '' OR status = $2)
	`
)
