package queries

const (
	InsertAppointment = `
		INSERT INTO appointments (patient_id, doctor_id, date, time, type, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	appointmentColumns = `
		a.id, a.patient_id, a.doctor_id, a.date, a.time, a.type, a.status, a.notes,
		a.meeting_id, a.meeting_url, a.end_time, a.reminder_sent_at, a.created_at, a.updated_at
	`

	appointmentDetailSelect = `
		SELECT ` + appointmentColumns + `,
			pu.id, pu.full_name, pu.email, du.id, du.full_name, du.email
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN users pu ON pu.id = p.user_id
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users du ON du.id = d.user_id
	`

	GetAppointmentByID = `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1`

	GetAppointmentDetailByID = appointmentDetailSelect + ` WHERE a.id = $1`

	// Empty string filters are ignored.
	ListAppointmentDetails = appointmentDetailSelect + `
		WHERE ($1 = '' OR a.patient_id::text = $1)
			AND ($2 = '' OR a.doctor_id::text = $2)
			AND ($3 = '' OR a.status = $3)
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $4 OFFSET $5
	`

	CountAppointments = `
		SELECT COUNT(*) FROM appointments a
		WHERE ($1 = '' OR a.patient_id::text = $1)
			AND ($2 = '' OR a.doctor_id::text = $2)
			AND ($3 = '' OR a.status = $3)
	`

	// UpdateAppointmentIfStatus only writes when the row still holds the
	// status the caller read ($7).
	UpdateAppointmentIfStatus = `
		UPDATE appointments
		SET status = $1, notes = $2, date = $3, time = $4, end_time = $5, updated_at = NOW()
		WHERE id = $6 AND status = $7
	`

	SetAppointmentMeetingIfAbsent = `
		UPDATE appointments
		SET meeting_id = $1, meeting_url = $2, updated_at = NOW()
		WHERE id = $3 AND meeting_id IS NULL
	`

	ListAppointmentsDueForReminder = appointmentDetailSelect + `
		WHERE a.status = 'APPROVED'
			AND a.reminder_sent_at IS NULL
			AND a.date >= $1 AND a.date <= $2
		ORDER BY a.date ASC
		LIMIT $3
	`

	MarkAppointmentReminderSent = `
		UPDATE appointments SET reminder_sent_at = $1
		WHERE id = $2 AND reminder_sent_at IS NULL
	`

	ExistsAppointmentBetween = `
		SELECT EXISTS (SELECT 1 FROM appointments WHERE patient_id = $1 AND doctor_id = $2)
	`

	GetLatestCompletedEndTime = `
		SELECT MAX(end_time) FROM appointments
		WHERE patient_id = $1 AND doctor_id = $2 AND status = 'COMPLETED'
	`
)
