package requests

type CreatePrescription struct {
	PatientID    string `json:"patientId" validate:"required,uuid"`
	Medication   string `json:"medication" validate:"required,max=255"`
	Dosage       string `json:"dosage" validate:"required,max=255"`
	Instructions string `json:"instructions" validate:"omitempty,max=2000"`
}

// UpdatePrescription only carries editable fields; the parties are fixed at creation.
type UpdatePrescription struct {
	Medication   *string `json:"medication" validate:"omitempty,min=1,max=255"`
	Dosage       *string `json:"dosage" validate:"omitempty,min=1,max=255"`
	Instructions *string `json:"instructions" validate:"omitempty,max=2000"`
}
