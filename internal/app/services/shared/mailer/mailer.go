package mailer

import (
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	driverMailer "telehealth-service/internal/app/drivers/mailer"

	"go.uber.org/zap"
)

const ProviderSendGrid = "sendgrid"

// NewEmailSender picks the delivery backend named by the mailer provider.
// SMTP is used unless SendGrid is selected and has an API key.
func NewEmailSender(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.EmailSender {
	sender := internalConfig.Mailer.EmailSender
	if sender == "" {
		sender = driverConfig.SMTP.EmailSender
	}

	if strings.EqualFold(internalConfig.Mailer.Provider, ProviderSendGrid) && driverConfig.SendGrid.APIKey != "" {
		return NewSendGridSender(driverConfig.SendGrid.APIKey, logger, sender, internalConfig.Mailer.SenderName)
	}
	return NewSMTPSender(driverMailer.NewSMTPClient(driverConfig), logger, sender, internalConfig.Mailer.SenderName)
}
