package models

type Payment struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	AppointmentID    *string `json:"appointmentId,omitempty"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Method           string  `json:"method"`
	Status           string  `json:"status"`
	Reference        string  `json:"reference"`
	GatewayReference *string `json:"gatewayReference,omitempty"`
	Description      string  `json:"description,omitempty"`
	TimeModel
}

type PaymentFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}
