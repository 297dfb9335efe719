package requests

type RegisterUser struct {
	Role     string `json:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"omitempty,phone_number"`
	Address  string `json:"address" validate:"omitempty,max=255"`

	// patient profile
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,calendar"`
	Gender         string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	MedicalHistory string `json:"medicalHistory" validate:"omitempty,max=5000"`

	// doctor profile
	Specialization string  `json:"specialization" validate:"required_if=Role DOCTOR,max=120"`
	HospitalID     *string `json:"hospitalId" validate:"omitempty,uuid"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmail struct {
	Token string `json:"token" validate:"required"`
}
