package mailer

import (
	"fmt"
	"net/smtp"
	"telehealth-service/internal/app/config"
)

type SMTPClient struct {
	Host     string
	Port     int
	Username string
	Auth     smtp.Auth
}

func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	var auth smtp.Auth
	if driverConfig.SMTP.Username != "" {
		auth = smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	}
	return &SMTPClient{
		Host:     driverConfig.SMTP.Host,
		Port:     driverConfig.SMTP.Port,
		Username: driverConfig.SMTP.Username,
		Auth:     auth,
	}
}

func (c *SMTPClient) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
