package queries

const (
	CountUsersByRole = `SELECT role, COUNT(*) FROM users GROUP BY role`

	CountDoctorsByStatus = `SELECT status, COUNT(*) FROM doctors GROUP BY status`

	CountAppointmentsByStatus = `SELECT status, COUNT(*) FROM appointments GROUP BY status`

	CountPaymentsByStatus = `SELECT status, COUNT(*) FROM payments GROUP BY status`

	SumSuccessfulPayments = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'SUCCESS'`

	CountDoctorDocumentsByStatus = `SELECT status, COUNT(*) FROM doctor_documents GROUP BY status`
)
