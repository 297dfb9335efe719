package requests

type SendMessage struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}
