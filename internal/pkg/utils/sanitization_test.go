package utils

import (
	"telehealth-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRegisterUserRequest(t *testing.T) {
	t.Run("Email And Role Normalized", func(t *testing.T) {
		request := &requests.RegisterUser{
			Role:     "  patient ",
			Email:    "  JANE@EXAMPLE.COM  ",
			FullName: "  Jane Doe ",
			Gender:   " female",
		}

		SanitizeRegisterUserRequest(request)

		assert.Equal(t, "PATIENT", request.Role)
		assert.Equal(t, "jane@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "Jane Doe", request.FullName)
		assert.Equal(t, "FEMALE", request.Gender)
	})

	t.Run("Phone Inner Spaces Removed", func(t *testing.T) {
		request := &requests.RegisterUser{Phone: " +233 24 123 4567 "}

		SanitizeRegisterUserRequest(request)

		assert.Equal(t, "+233241234567", request.Phone)
	})
}

func TestSanitizeUpdateAppointmentRequest(t *testing.T) {
	status := " approved "
	notes := "  bring lab results  "
	request := &requests.UpdateAppointment{Status: &status, Notes: &notes}

	SanitizeUpdateAppointmentRequest(request)

	assert.Equal(t, "APPROVED", *request.Status)
	assert.Equal(t, "bring lab results", *request.Notes)
	assert.Nil(t, request.Date, "absent fields stay absent")
}

func TestSanitizeInitializePaymentRequest(t *testing.T) {
	empty := "   "
	request := &requests.InitializePayment{Currency: " ghs ", AppointmentID: &empty}

	SanitizeInitializePaymentRequest(request)

	assert.Equal(t, "GHS", request.Currency)
	assert.Nil(t, request.AppointmentID, "blank appointment id is treated as absent")
}
