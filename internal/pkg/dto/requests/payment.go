package requests

type InitializePayment struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"omitempty,currency"`
	AppointmentID *string `json:"appointmentId" validate:"omitempty,uuid"`
	Description   string  `json:"description" validate:"omitempty,max=255"`
	UserID        string  `json:"userId" validate:"omitempty,uuid"`
}

type PaymentQuery struct {
	Status string
	Pagination
}

// GatewayInitialize is the body sent to the gateway transaction initialize endpoint.
type GatewayInitialize struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
