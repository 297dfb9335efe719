package mailer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"telehealth-service/internal/app/config"
	driverMailer "telehealth-service/internal/app/drivers/mailer"
	"telehealth-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMessage() *models.EmailMessage {
	return &models.EmailMessage{
		To:      "patient@example.com",
		ToName:  "Ama Mensah",
		Subject: "Upcoming Appointment Reminder",
		Body:    "See you tomorrow.",
	}
}

func TestSMTPSender_Send(t *testing.T) {
	client := &driverMailer.SMTPClient{Host: "smtp.example.com", Port: 2525}

	t.Run("Builds Plain Text Message", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotBody string

		sender := NewSMTPSender(client, zap.NewNop(), "care@example.com", "Telehealth").(*smtpSender)
		sender.sendMailFn = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)
			return nil
		}

		require.NoError(t, sender.Send(context.Background(), testMessage()))
		assert.Equal(t, "smtp.example.com:2525", gotAddr)
		assert.Equal(t, "care@example.com", gotFrom)
		assert.Equal(t, []string{"patient@example.com"}, gotTo)
		assert.Contains(t, gotBody, "From: \"Telehealth\" <care@example.com>\r\n")
		assert.Contains(t, gotBody, "To: \"Ama Mensah\" <patient@example.com>\r\n")
		assert.Contains(t, gotBody, "Subject: Upcoming Appointment Reminder\r\n")
		assert.True(t, strings.HasSuffix(gotBody, "See you tomorrow.\r\n"))
	})

	t.Run("Wraps Transport Error", func(t *testing.T) {
		sender := NewSMTPSender(client, zap.NewNop(), "care@example.com", "Telehealth").(*smtpSender)
		sender.sendMailFn = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}

		err := sender.Send(context.Background(), testMessage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestSendGridSender_Send(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		var gotAuth, gotPath, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sender := NewSendGridSender("sg-key", zap.NewNop(), "care@example.com", "Telehealth").(*sendGridSender)
		sender.host = server.URL

		require.NoError(t, sender.Send(context.Background(), testMessage()))
		assert.Equal(t, "Bearer sg-key", gotAuth)
		assert.Equal(t, "/v3/mail/send", gotPath)
		assert.Contains(t, gotBody, "patient@example.com")
		assert.Contains(t, gotBody, "Upcoming Appointment Reminder")
	})

	t.Run("Rejected Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
		}))
		defer server.Close()

		sender := NewSendGridSender("sg-key", zap.NewNop(), "care@example.com", "Telehealth").(*sendGridSender)
		sender.host = server.URL

		assert.Error(t, sender.Send(context.Background(), testMessage()))
	})
}

func TestNewEmailSender(t *testing.T) {
	driverCfg := &config.DriverConfig{}
	driverCfg.SMTP.Host = "smtp.example.com"
	driverCfg.SMTP.Port = 25
	internalCfg := &config.InternalConfig{}

	_, isSMTP := NewEmailSender(driverCfg, internalCfg, zap.NewNop()).(*smtpSender)
	assert.True(t, isSMTP)

	internalCfg.Mailer.Provider = "SendGrid"
	_, isSMTP = NewEmailSender(driverCfg, internalCfg, zap.NewNop()).(*smtpSender)
	assert.True(t, isSMTP, "sendgrid without an api key falls back to smtp")

	driverCfg.SendGrid.APIKey = "sg-key"
	_, isSendGrid := NewEmailSender(driverCfg, internalCfg, zap.NewNop()).(*sendGridSender)
	assert.True(t, isSendGrid)
}
