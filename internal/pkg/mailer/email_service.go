package mailer

import (
	"fmt"
	"html"
	"log"
	"strings"

	"gopkg.in/gomail.v2"
)

// LeadNotification is the lead summary mailed to the agency inbox.
type LeadNotification struct {
	Name       string
	Email      string
	Company    string
	Phone      string
	Budget     string
	Message    string
	SourcePage string
}

type IEmailService interface {
	SendLeadNotification(toEmail string, lead LeadNotification) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendLeadNotification(toEmail string, lead LeadNotification) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetAddressHeader("Reply-To", lead.Email, lead.Name)
	m.SetHeader("Subject", leadSubject(lead))
	m.SetBody("text/plain", leadText(lead))
	m.AddAlternative("text/html", leadHTML(lead))

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("[MAILER ERROR] Failed to send lead notification to %s: %v", toEmail, err)
		return err
	}

	log.Printf("[MAILER] Lead notification sent to %s", toEmail)
	return nil
}

func leadSubject(lead LeadNotification) string {
	if lead.Company != "" {
		return fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Company)
	}
	return "New lead: " + lead.Name
}

func leadRows(lead LeadNotification) [][2]string {
	rows := [][2]string{
		{"Name", lead.Name},
		{"Email", lead.Email},
		{"Company", lead.Company},
		{"Phone", lead.Phone},
		{"Budget", lead.Budget},
		{"Page", lead.SourcePage},
	}
	out := rows[:0]
	for _, r := range rows {
		if r[1] != "" {
			out = append(out, r)
		}
	}
	return out
}

func leadText(lead LeadNotification) string {
	var sb strings.Builder
	for _, r := range leadRows(lead) {
		fmt.Fprintf(&sb, "%s: %s\n", r[0], r[1])
	}
	sb.WriteString("\n")
	sb.WriteString(lead.Message)
	sb.WriteString("\n")
	return sb.String()
}

// leadHTML escapes every visitor-supplied value.
func leadHTML(lead LeadNotification) string {
	var rows strings.Builder
	for _, r := range leadRows(lead) {
		fmt.Fprintf(&rows, `<tr><td style="padding: 4px 12px 4px 0; color: #666;">%s</td><td>%s</td></tr>`,
			r[0], html.EscapeString(r[1]))
	}

	message := strings.ReplaceAll(html.EscapeString(lead.Message), "\n", "<br>")

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New project inquiry</h2>
			<table>%s</table>
			<p style="margin-top: 16px;">%s</p>
		</div>
	`, rows.String(), message)
}
