package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	PasswordHash  string `json:"-"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	TimeModel
}

type Patient struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	MedicalHistory string     `json:"medicalHistory,omitempty"`
	FullName       string     `json:"fullName,omitempty"`
	Email          string     `json:"email,omitempty"`
	TimeModel
}

type Doctor struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Specialization string  `json:"specialization"`
	Phone          string  `json:"phone,omitempty"`
	Address        string  `json:"address,omitempty"`
	HospitalID     *string `json:"hospitalId,omitempty"`
	Status         string  `json:"status"`
	FullName       string  `json:"fullName,omitempty"`
	Email          string  `json:"email,omitempty"`
	TimeModel
}

type Admin struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	TimeModel
}

type Hospital struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TimeModel
}

type DoctorFilter struct {
	Status         string
	Specialization string
	Limit          int
	Offset         int
}
