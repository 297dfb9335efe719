package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"telehealth-service/internal/app/contracts"
	driverMailer "telehealth-service/internal/app/drivers/mailer"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpSender struct {
	Client     *driverMailer.SMTPClient
	Log        *zap.Logger
	fromEmail  string
	fromName   string
	sendMailFn sendMailFunc
}

func NewSMTPSender(client *driverMailer.SMTPClient, logger *zap.Logger, fromEmail, fromName string) contracts.EmailSender {
	return &smtpSender{
		Client:     client,
		Log:        logger,
		fromEmail:  fromEmail,
		fromName:   fromName,
		sendMailFn: smtp.SendMail,
	}
}

func (s *smtpSender) Send(ctx context.Context, message *models.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := buildPlainTextMessage(s.fromName, s.fromEmail, message)
	err := s.sendMailFn(s.Client.Addr(), s.Client.Auth, s.fromEmail, []string{message.To}, body)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
	}

	s.Log.Info("smtpSender.Send delivered email",
		zap.String(constvars.LoggingEmailKey, message.To),
	)
	return nil
}

func buildPlainTextMessage(fromName, fromEmail string, message *models.EmailMessage) []byte {
	from := (&mail.Address{Name: fromName, Address: fromEmail}).String()
	to := (&mail.Address{Name: message.ToName, Address: message.To}).String()
	return []byte(fmt.Sprintf(constvars.EmailSendBasicEmailSubjectFormat, from, to, message.Subject, message.Body))
}
