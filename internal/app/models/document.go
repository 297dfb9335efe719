package models

import "time"

type MedicalRecord struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	UploadedBy string    `json:"uploadedBy"`
	Title      string    `json:"title"`
	FileURL    string    `json:"fileUrl"`
	FileType   string    `json:"fileType"`
	FileName   string    `json:"fileName"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DoctorDocument struct {
	ID       string `json:"id"`
	DoctorID string `json:"doctorId"`
	Title    string `json:"title"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Status   string `json:"status"`
	TimeModel
}

type DoctorDocumentFilter struct {
	DoctorID string
	Status   string
	Limit    int
	Offset   int
}

type MedicalRecordFilter struct {
	PatientID string
	Limit     int
	Offset    int
}
