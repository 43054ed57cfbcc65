package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// mailer is satisfied by *gomail.Dialer
type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Service handles sending alerts via the configured channels
type Service struct {
	config *config.Config
	client *resty.Client
	mailer mailer
}

// Ensure Service implements Notifier
var _ Notifier = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		mailer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendAlert delivers alert to every configured channel. A failing channel
// does not stop the others.
func (s *Service) SendAlert(ctx context.Context, alert *models.Alert) error {
	var errs []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(ctx, alert); err != nil {
			logrus.Errorf("Failed to send Teams alert: %v", err)
			errs = append(errs, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Infof("Sent %s alert to Teams", alert.Type)
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(alert); err != nil {
			logrus.Errorf("Failed to send email alert: %v", err)
			errs = append(errs, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Infof("Sent %s alert via email", alert.Type)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(ctx context.Context, alert *models.Alert) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(buildTeamsMessage(alert)).
		Post(s.config.TeamsWebhookURL)
	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func subject(alert *models.Alert) string {
	if alert.Type == models.AlertBackendRecovered {
		return "Leadlift backend recovered"
	}
	return "Leadlift backend unreachable"
}

func facts(alert *models.Alert) []TeamsFact {
	out := []TeamsFact{
		{Name: "Backend", Value: alert.Backend},
		{Name: "Failed probes", Value: fmt.Sprintf("%d", alert.Failures)},
		{Name: "Time", Value: alert.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
	}
	if alert.Error != "" {
		out = append(out, TeamsFact{Name: "Last error", Value: alert.Error})
	}
	return out
}

func buildTeamsMessage(alert *models.Alert) *TeamsMessage {
	color := "d13438"
	if alert.Type == models.AlertBackendRecovered {
		color = "107c10"
	}
	return &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: color,
		Title:      subject(alert),
		Text:       alert.Message,
		Sections: []TeamsSection{{
			ActivityTitle: "Details",
			Facts:         facts(alert),
			Markdown:      true,
		}},
	}
}

func (s *Service) sendEmail(alert *models.Alert) error {
	htmlBody, err := buildEmailHTML(alert)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject(alert))
	m.SetBody("text/plain", buildEmailText(alert))
	m.AddAlternative("text/html", htmlBody)

	if err := s.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildEmailHTML(alert *models.Alert) (string, error) {
	var sb strings.Builder
	err := Doctype(HTML(
		Head(Meta(Charset("UTF-8")), TitleEl(g.Text(subject(alert)))),
		Body(
			g.Attr("style", "font-family: Arial, sans-serif; margin: 20px;"),
			H1(g.Text(subject(alert))),
			P(g.Text(alert.Message)),
			Table(g.Group(g.Map(facts(alert), func(f TeamsFact) g.Node {
				return Tr(Td(Strong(g.Text(f.Name))), Td(g.Text(f.Value)))
			}))),
			Hr(),
			P(Small(g.Text("This alert was sent automatically by Leadlift web."))),
		),
	)).Render(&sb)
	return sb.String(), err
}

func buildEmailText(alert *models.Alert) string {
	var text strings.Builder

	text.WriteString(subject(alert) + "\n\n")
	text.WriteString(alert.Message + "\n\n")
	for _, f := range facts(alert) {
		text.WriteString(fmt.Sprintf("%s: %s\n", f.Name, f.Value))
	}
	text.WriteString("\n---\nThis alert was sent automatically by Leadlift web.\n")

	return text.String()
}
