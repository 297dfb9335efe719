package mailer

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendGridHost         = "https://api.sendgrid.com"
	sendGridSendEndpoint = "/v3/mail/send"
)

type sendGridSender struct {
	Log       *zap.Logger
	apiKey    string
	host      string
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey string, logger *zap.Logger, fromEmail, fromName string) contracts.EmailSender {
	return &sendGridSender{
		Log:       logger,
		apiKey:    apiKey,
		host:      sendGridHost,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridSender) Send(ctx context.Context, message *models.EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(message.ToName, message.To)
	payload := mail.NewSingleEmail(from, message.Subject, to, message.Body, "")

	request := sendgrid.GetRequest(s.apiKey, sendGridSendEndpoint, s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(payload)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return exceptions.ErrSendGridSendEmail(err, 0)
	}
	if response.StatusCode >= constvars.StatusBadRequest {
		s.Log.Error("sendGridSender.Send rejected",
			zap.String(constvars.LoggingEmailKey, message.To),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
			zap.String(constvars.LoggingResponseKey, response.Body),
		)
		return exceptions.ErrSendGridSendEmail(nil, response.StatusCode)
	}

	s.Log.Info("sendGridSender.Send delivered email",
		zap.String(constvars.LoggingEmailKey, message.To),
		zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
	)
	return nil
}
