package queries

const (
	InsertPrescription = `
		INSERT INTO prescriptions (doctor_id, patient_id, medication, dosage, instructions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	prescriptionSelect = `
		SELECT rx.id, rx.doctor_id, rx.patient_id, rx.medication, rx.dosage, rx.instructions,
			du.full_name, pu.full_name, rx.created_at, rx.updated_at
		FROM prescriptions rx
		JOIN doctors d ON d.id = rx.doctor_id
		JOIN users du ON du.id = d.user_id
		JOIN patients p ON p.id = rx.patient_id
		JOIN users pu ON pu.id = p.user_id
	`

	GetPrescriptionByID = prescriptionSelect + ` WHERE rx.id = $1`

	ListPrescriptions = prescriptionSelect + `
		WHERE ($1 = '' OR rx.patient_id::text = $1)
			AND ($2 = '' OR rx.doctor_id::text = $2)
		ORDER BY rx.created_at DESC
		LIMIT $3 OFFSET $4
	`

	CountPrescriptions = `
		SELECT COUNT(*) FROM prescriptions rx
		WHERE ($1 = '' OR rx.patient_id::text = $1)
			AND ($2 = '' OR rx.doctor_id::text = $2)
	`

	UpdatePrescription = `
		UPDATE prescriptions
		SET medication = $1, dosage = $2, instructions = $3, updated_at = NOW()
		WHERE id = $4
	`
)
