package utils

import (
	"strings"
	"telehealth-service/internal/pkg/dto/requests"
)

func trimPointer(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func upperPointer(p *string) {
	if p != nil {
		*p = strings.ToUpper(strings.TrimSpace(*p))
	}
}

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.ReplaceAll(strings.TrimSpace(input.Phone), " ", "")
	input.Address = strings.TrimSpace(input.Address)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Gender = strings.ToUpper(strings.TrimSpace(input.Gender))
	input.Specialization = strings.TrimSpace(input.Specialization)
	trimPointer(input.HospitalID)
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeUpdatePatientProfileRequest(input *requests.UpdatePatientProfile) {
	trimPointer(input.FullName)
	trimPointer(input.DateOfBirth)
	upperPointer(input.Gender)
	trimPointer(input.Phone)
	trimPointer(input.Address)
	trimPointer(input.MedicalHistory)
}

func SanitizeUpdateDoctorProfileRequest(input *requests.UpdateDoctorProfile) {
	trimPointer(input.FullName)
	trimPointer(input.Specialization)
	trimPointer(input.Phone)
	trimPointer(input.Address)
	trimPointer(input.HospitalID)
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Type = strings.ToUpper(strings.TrimSpace(input.Type))
	input.Notes = strings.TrimSpace(input.Notes)
}

func SanitizeUpdateAppointmentRequest(input *requests.UpdateAppointment) {
	upperPointer(input.Status)
	trimPointer(input.Notes)
	trimPointer(input.Date)
	trimPointer(input.Time)
}

func SanitizeInitializePaymentRequest(input *requests.InitializePayment) {
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	input.Description = strings.TrimSpace(input.Description)
	input.UserID = strings.TrimSpace(input.UserID)
	trimPointer(input.AppointmentID)
	if input.AppointmentID != nil && *input.AppointmentID == "" {
		input.AppointmentID = nil
	}
}

func SanitizeCreatePrescriptionRequest(input *requests.CreatePrescription) {
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.Medication = strings.TrimSpace(input.Medication)
	input.Dosage = strings.TrimSpace(input.Dosage)
	input.Instructions = strings.TrimSpace(input.Instructions)
}

func SanitizeUpdatePrescriptionRequest(input *requests.UpdatePrescription) {
	trimPointer(input.Medication)
	trimPointer(input.Dosage)
	trimPointer(input.Instructions)
}

func SanitizeSendMessageRequest(input *requests.SendMessage) {
	input.Content = strings.TrimSpace(input.Content)
}
