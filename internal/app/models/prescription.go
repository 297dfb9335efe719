package models

type Prescription struct {
	ID           string `json:"id"`
	DoctorID     string `json:"doctorId"`
	PatientID    string `json:"patientId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions,omitempty"`
	DoctorName   string `json:"doctorName,omitempty"`
	PatientName  string `json:"patientName,omitempty"`
	TimeModel
}

type PrescriptionFilter struct {
	DoctorID  string
	PatientID string
	Limit     int
	Offset    int
}
