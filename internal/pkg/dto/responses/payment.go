package responses

import "telehealth-service/internal/app/models"

type InitializePayment struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
	PaymentID        string `json:"paymentId"`
}

type VerifyPayment struct {
	Status  string          `json:"status"`
	Payment *models.Payment `json:"payment"`
}

type GatewayInitialize struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type GatewayVerify struct {
	Status    string
	Reference string
	GatewayID string
	Amount    int64
	Currency  string
}

type WebhookResult struct {
	Event     string `json:"event"`
	Reference string `json:"reference,omitempty"`
	Applied   bool   `json:"applied"`
}
