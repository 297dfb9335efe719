package requests

type CreateAppointment struct {
	DoctorID string `json:"doctorId" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,calendar"`
	Time     string `json:"time" validate:"omitempty,clock"`
	Type     string `json:"type" validate:"required,oneof=IN_PERSON ONLINE VIDEO_CALL"`
	Notes    string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateAppointment is a partial update; nil fields are left untouched.
type UpdateAppointment struct {
	Status *string `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED CANCELED"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
	Date   *string `json:"date" validate:"omitempty,calendar"`
	Time   *string `json:"time" validate:"omitempty,clock"`
}

type AppointmentQuery struct {
	Status string
	Pagination
}
