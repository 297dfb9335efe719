package utils

import (
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	valid := requests.CreateAppointment{
		DoctorID: "0b5c8f0e-8a43-4d3e-9b55-7c1d2f7a9e11",
		Date:     "2024-05-01",
		Time:     "09:30",
		Type:     "VIDEO_CALL",
	}

	t.Run("Valid Appointment", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid))
	})

	t.Run("Missing Doctor Uses Json Name", func(t *testing.T) {
		req := valid
		req.DoctorID = ""
		err := ValidateStruct(req)
		require.Error(t, err)
		assert.Contains(t, exceptions.FormatFirstValidationError(err), "doctorId")
	})

	t.Run("Bad Clock", func(t *testing.T) {
		req := valid
		req.Time = "25:00"
		assert.Error(t, ValidateStruct(req))
	})

	t.Run("Bad Calendar", func(t *testing.T) {
		req := valid
		req.Date = "tomorrow"
		assert.Error(t, ValidateStruct(req))
	})

	t.Run("Unknown Type", func(t *testing.T) {
		req := valid
		req.Type = "PHONE"
		assert.Error(t, ValidateStruct(req))
	})
}

func TestValidatePasswordAndCurrency(t *testing.T) {
	register := requests.RegisterUser{
		Role:     "PATIENT",
		Email:    "jane@example.com",
		Password: "weak",
		FullName: "Jane Doe",
	}
	assert.Error(t, ValidateStruct(register))

	register.Password = "Str0ng!Pass"
	assert.NoError(t, ValidateStruct(register))

	register.Role = "DOCTOR"
	assert.Error(t, ValidateStruct(register), "doctors must provide a specialization")

	payment := requests.InitializePayment{Amount: 50, Currency: "ghs"}
	assert.Error(t, ValidateStruct(payment))
	payment.Currency = "GHS"
	assert.NoError(t, ValidateStruct(payment))
	payment.Amount = 0
	assert.Error(t, ValidateStruct(payment))
}

func TestIsPaymentReference(t *testing.T) {
	assert.True(t, IsPaymentReference("6f1c2a9e-3b7d-4c1e-9a55-0e2d4b8f7c10"))
	assert.True(t, IsPaymentReference("T123456789_ps"))
	assert.False(t, IsPaymentReference(""))
	assert.False(t, IsPaymentReference("ref/../../admin"))
	assert.False(t, IsPaymentReference("has space"))
}
