package queries

const (
	InsertMedicalRecord = `
		INSERT INTO medical_records (patient_id, uploaded_by, title, file_url, file_type, file_name, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	medicalRecordSelect = `
		SELECT id, patient_id, uploaded_by, title, file_url, file_type, file_name, size, created_at
		FROM medical_records
	`

	GetMedicalRecordByID = medicalRecordSelect + ` WHERE id = $1`

	ListMedicalRecords = medicalRecordSelect + `
		WHERE ($1 = '' OR patient_id::text = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountMedicalRecords = `
		SELECT COUNT(*) FROM medical_records WHERE ($1 = '' OR patient_id::text = $1)
	`

	DeleteMedicalRecord = `DELETE FROM medical_records WHERE id = $1`

	InsertDoctorDocument = `
		INSERT INTO doctor_documents (doctor_id, title, file_url, file_type, file_name, size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	doctorDocumentSelect = `
		SELECT id, doctor_id, title, file_url, file_type, file_name, size, status, created_at, updated_at
		FROM doctor_documents
	`

	GetDoctorDocumentByID = doctorDocumentSelect + ` WHERE id = $1`

	ListDoctorDocuments = doctorDocumentSelect + `
		WHERE ($1 = '' OR doctor_id::text = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	CountDoctorDocuments = `
		SELECT COUNT(*) FROM doctor_documents
		WHERE ($1 = '' OR doctor_id::text = $1)
			AND ($2 = '' OR status = $2)
	`

	UpdateDoctorDocumentStatus = `
		UPDATE doctor_documents SET status = $1, updated_at = NOW() WHERE id = $2
	`
)
