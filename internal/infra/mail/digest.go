package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/leadtrack/internal/usecase"
)

type DigestSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewDigestSender(host string, port int, user, password, from string) *DigestSender {
	return &DigestSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

type digestRow struct {
	Name    string
	Phone   string
	Email   string
	Status  string
	Urgency string
}

type digestData struct {
	Date  string
	Count int
	Rows  []digestRow
}

// SendFollowUpDigest renders the ranked follow-up list into the digest
// template and mails it. An empty list still sends, so the user knows
// the queue is clear.
func (s *DigestSender) SendFollowUpDigest(to string, ranked []usecase.RankedLead, now time.Time) error {
	tmplPath := filepath.Join("templates", "digest.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("reading digest template: %w", err)
	}

	data := digestData{
		Date:  now.Format("January 2, 2006"),
		Count: len(ranked),
	}
	for _, r := range ranked {
		data.Rows = append(data.Rows, digestRow{
			Name:    r.Lead.Name,
			Phone:   r.Lead.Phone,
			Email:   r.Lead.Email,
			Status:  r.Lead.Status,
			Urgency: r.Urgency.Label,
		})
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering digest template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Follow-up digest: %d lead(s) need attention", len(ranked)))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending digest via SMTP: %w", err)
	}

	return nil
}
