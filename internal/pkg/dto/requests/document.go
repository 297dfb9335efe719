package requests

import "io"

type UploadDocument struct {
	Title       string `validate:"required,max=255"`
	PatientID   string `validate:"omitempty,uuid"`
	FileName    string `validate:"required"`
	ContentType string `validate:"required"`
	Size        int64  `validate:"gt=0"`
	File        io.Reader
}

type UpdateDocumentStatus struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

type MedicalRecordQuery struct {
	PatientID string
	Pagination
}

type DoctorDocumentQuery struct {
	Status string
	Pagination
}
