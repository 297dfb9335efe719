package queries

const (
	InsertUser = `
		INSERT INTO users (email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email_verified, created_at, updated_at
	`

	GetUserByEmail = `
		SELECT id, email, full_name, password_hash, role, email_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	GetUserByID = `
		SELECT id, email, full_name, password_hash, role, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	UpdateUserFullName = `UPDATE users SET full_name = $1, updated_at = NOW() WHERE id = $2`

	MarkUserEmailVerified = `UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`

	InsertPatient = `
		INSERT INTO patients (user_id, date_of_birth, gender, phone, address, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	selectPatient = `
		SELECT p.id, p.user_id, p.date_of_birth, p.gender, p.phone, p.address, p.medical_history,
			u.full_name, u.email, p.created_at, p.updated_at
		FROM patients p
		JOIN users u ON u.id = p.user_id
	`

	GetPatientByUserID = selectPatient + ` WHERE p.user_id = $1`

	GetPatientByID = selectPatient + ` WHERE p.id = $1`

	UpdatePatient = `
		UPDATE patients
		SET date_of_birth = $1, gender = $2, phone = $3, address = $4, medical_history = $5, updated_at = NOW()
		WHERE id = $6
	`

	InsertDoctor = `
		INSERT INTO doctors (user_id, specialization, phone, address, hospital_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	selectDoctor = `
		SELECT d.id, d.user_id, d.specialization, d.phone, d.address, d.hospital_id, d.status,
			u.full_name, u.email, d.created_at, d.updated_at
		FROM doctors d
		JOIN users u ON u.id = d.user_id
	`

	GetDoctorByUserID = selectDoctor + ` WHERE d.user_id = $1`

	GetDoctorByID = selectDoctor + ` WHERE d.id = $1`

	// $1 status filter, $2 specialization filter (ILIKE), both optional
	ListDoctors = selectDoctor + `
		WHERE ($1 = '' OR d.status = $1)
			AND ($2 = '' OR d.specialization ILIKE '%' || $2 || '%')
		ORDER BY u.full_name ASC
		LIMIT $3 OFFSET $4
	`

	CountDoctors = `
		SELECT COUNT(*) FROM doctors d
		WHERE ($1 = '' OR d.status = $1)
			AND ($2 = '' OR d.specialization ILIKE '%' || $2 || '%')
	`

	UpdateDoctor = `
		UPDATE doctors
		SET specialization = $1, phone = $2, address = $3, hospital_id = $4, updated_at = NOW()
		WHERE id = $5
	`

	UpdateDoctorStatus = `UPDATE doctors SET status = $1, updated_at = NOW() WHERE id = $2`

	InsertAdmin = `
		INSERT INTO admins (user_id)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	GetAdminByUserID = `SELECT id, user_id, created_at, updated_at FROM admins WHERE user_id = $1`

	InsertHospital = `
		INSERT INTO hospitals (name, address, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	ListHospitals = `
		SELECT id, name, address, phone, created_at, updated_at
		FROM hospitals
		ORDER BY name ASC
	`
)
