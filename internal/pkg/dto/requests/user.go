package requests

type UpdatePatientProfile struct {
	FullName       *string `json:"fullName" validate:"omitempty,min=2,max=120"`
	DateOfBirth    *string `json:"dateOfBirth" validate:"omitempty,calendar"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone          *string `json:"phone" validate:"omitempty,phone_number"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	MedicalHistory *string `json:"medicalHistory" validate:"omitempty,max=5000"`
}

type UpdateDoctorProfile struct {
	FullName       *string `json:"fullName" validate:"omitempty,min=2,max=120"`
	Specialization *string `json:"specialization" validate:"omitempty,min=2,max=120"`
	Phone          *string `json:"phone" validate:"omitempty,phone_number"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	HospitalID     *string `json:"hospitalId" validate:"omitempty,uuid"`
}

type UpdateDoctorStatus struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED SUSPENDED"`
}

type CreateHospital struct {
	Name    string `json:"name" validate:"required,min=2,max=160"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,phone_number"`
}

type DoctorQuery struct {
	Status         string
	Specialization string
	Pagination
}
