package responses

import (
	"telehealth-service/internal/app/models"
	"time"
)

type RegisterUser struct {
	User    *models.User `json:"user"`
	Profile interface{}  `json:"profile"`
	// Repaired is true when an existing account only received its missing profile.
	Repaired bool `json:"repaired"`
}

type LoginUser struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	RedirectURL string       `json:"redirectUrl"`
	User        *models.User `json:"user"`
}

type Me struct {
	User    *models.User    `json:"user"`
	Patient *models.Patient `json:"patient,omitempty"`
	Doctor  *models.Doctor  `json:"doctor,omitempty"`
	Admin   *models.Admin   `json:"admin,omitempty"`
}
