package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeMailer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func downAlert() *models.Alert {
	return &models.Alert{
		Type:      models.AlertBackendDown,
		Message:   "The Leadlift backend stopped answering liveness probes.",
		Backend:   "http://backend:8000",
		Failures:  1,
		Error:     "connection refused",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSendAlert_Teams(t *testing.T) {
	var got TeamsMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewService(&config.Config{TeamsWebhookURL: server.URL})
	require.NoError(t, service.SendAlert(context.Background(), downAlert()))

	assert.Equal(t, "MessageCard", got.Type)
	assert.Equal(t, "Leadlift backend unreachable", got.Title)
	assert.Equal(t, "d13438", got.ThemeColor)
	require.Len(t, got.Sections, 1)
	assert.Contains(t, got.Sections[0].Facts, TeamsFact{Name: "Last error", Value: "connection refused"})
}

func TestSendAlert_TeamsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	service := NewService(&config.Config{TeamsWebhookURL: server.URL})
	err := service.SendAlert(context.Background(), downAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestSendAlert_Email(t *testing.T) {
	cfg := &config.Config{
		NotificationEmail: "ops@leadlift.test",
		SMTPHost:          "smtp.leadlift.test",
		SMTPPort:          587,
		SMTPUsername:      "alerts@leadlift.test",
		SMTPPassword:      "pw",
	}
	mail := &fakeMailer{}
	service := NewService(cfg)
	service.mailer = mail

	recovered := downAlert()
	recovered.Type = models.AlertBackendRecovered
	recovered.Error = ""
	require.NoError(t, service.SendAlert(context.Background(), recovered))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"ops@leadlift.test"}, mail.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Leadlift backend recovered"}, mail.sent[0].GetHeader("Subject"))

	mail.err = errors.New("dial tcp: timeout")
	err := service.SendAlert(context.Background(), downAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email:")
}

func TestSendAlert_NoChannels(t *testing.T) {
	service := NewService(&config.Config{})
	assert.NoError(t, service.SendAlert(context.Background(), downAlert()))
}

func TestBuildEmailBodies(t *testing.T) {
	body, err := buildEmailHTML(downAlert())
	require.NoError(t, err)
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "Leadlift backend unreachable")
	assert.Contains(t, body, "connection refused")

	text := buildEmailText(downAlert())
	assert.Contains(t, text, "Failed probes: 1")
	assert.Contains(t, text, "Time: 2024-03-01 12:00:00 UTC")
}
