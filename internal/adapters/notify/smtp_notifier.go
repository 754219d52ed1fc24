package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

// SMTPNotifier sends admin notifications and submitter confirmations
// over SMTP. Dispatch is best-effort; callers log and swallow errors.
type SMTPNotifier struct {
	cfg    config.EmailConfig
	logger *zap.Logger
	send   func(e *email.Email) error
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg config.EmailConfig, logger *zap.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		cfg:    cfg,
		logger: logger,
	}
	n.send = n.sendSMTP
	return n
}

func (n *SMTPNotifier) sendSMTP(e *email.Email) error {
	addr := net.JoinHostPort(n.cfg.SMTPHost, strconv.Itoa(n.cfg.SMTPPort))
	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// adminRecipients returns the deduplicated admin notification addresses.
func (n *SMTPNotifier) adminRecipients() []string {
	seen := map[string]bool{}
	var out []string
	for _, addr := range []string{n.cfg.AdminAddress, n.cfg.CompanyAddress} {
		if addr != "" && !seen[addr] {
			seen[addr] = true
			out = append(out, addr)
		}
	}
	return out
}

func (n *SMTPNotifier) dispatch(subject, body string, to []string, replyTo string) error {
	if !n.cfg.Enabled {
		n.logger.Debug("Email dispatch disabled, skipping", zap.String("subject", subject))
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = n.cfg.FromAddress
	e.To = to
	if replyTo != "" {
		e.ReplyTo = []string{replyTo}
	}
	e.Subject = subject
	e.Text = []byte(body)

	if err := n.send(e); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("Notification sent",
		zap.String("subject", subject),
		zap.Strings("to", to))
	return nil
}

// NotifyContactSupport emails the admins about a new contact request.
func (n *SMTPNotifier) NotifyContactSupport(ctx context.Context, c *core.ContactSupport) error {
	subject := fmt.Sprintf("New Contact Support Request - %s", n.cfg.CompanyName)
	body := strings.Join([]string{
		fmt.Sprintf("Name: %s %s", c.FirstName, c.LastName),
		fmt.Sprintf("Email: %s", c.Email),
		fmt.Sprintf("Phone: %s", c.Phone),
		fmt.Sprintf("Subject: %s", c.Subject),
		"",
		c.Message,
		"",
		fmt.Sprintf("Submitted: %s", c.CreatedAt.Format(time.RFC1123)),
	}, "\n")

	return n.dispatch(subject, body, n.adminRecipients(), c.Email)
}

// NotifyAppointment emails the admins about a new appointment request
// and sends the submitter a confirmation when an email was provided.
func (n *SMTPNotifier) NotifyAppointment(ctx context.Context, a *core.Appointment) error {
	subject := fmt.Sprintf("New Appointment Request - %s", n.cfg.CompanyName)
	body := strings.Join([]string{
		fmt.Sprintf("Name: %s %s", a.FirstName, a.LastName),
		fmt.Sprintf("Email: %s", a.Email),
		fmt.Sprintf("Phone: %s", a.Phone),
		fmt.Sprintf("Address: %s %s, %s, %s %s", a.Address, a.Address2, a.City, a.State, a.Zipcode),
		fmt.Sprintf("Insured property: %s", a.InsuranceProperty),
		"",
		a.Message,
		"",
		fmt.Sprintf("Submitted: %s", a.CreatedAt.Format(time.RFC1123)),
	}, "\n")

	if err := n.dispatch(subject, body, n.adminRecipients(), a.Email); err != nil {
		return err
	}

	if a.Email != "" {
		confirmation := fmt.Sprintf(
			"Hi %s,\n\nThank you for scheduling a free inspection with %s. Our team will contact you shortly to confirm your appointment.\n",
			a.FirstName, n.cfg.CompanyName)
		return n.dispatch(
			fmt.Sprintf("We received your request - %s", n.cfg.CompanyName),
			confirmation, []string{a.Email}, "")
	}
	return nil
}

// NotifyFacebookLead emails the admins about a new ad lead and sends
// the submitter a confirmation.
func (n *SMTPNotifier) NotifyFacebookLead(ctx context.Context, l *core.FacebookLead) error {
	subject := fmt.Sprintf("New Lead (%s) - %s", l.LeadSource, n.cfg.CompanyName)
	body := strings.Join([]string{
		fmt.Sprintf("Name: %s %s", l.FirstName, l.LastName),
		fmt.Sprintf("Email: %s", l.Email),
		fmt.Sprintf("Phone: %s", l.Phone),
		fmt.Sprintf("Address: %s %s, %s, %s %s", l.Address, l.Address2, l.City, l.State, l.Zipcode),
		fmt.Sprintf("Insured property: %s", l.InsuranceProperty),
		fmt.Sprintf("Source: %s", l.LeadSource),
		"",
		l.Message,
		"",
		fmt.Sprintf("Submitted: %s", l.CreatedAt.Format(time.RFC1123)),
	}, "\n")

	if err := n.dispatch(subject, body, n.adminRecipients(), l.Email); err != nil {
		return err
	}

	confirmation := fmt.Sprintf(
		"Hi %s,\n\nThank you for reaching out to %s. Our team will contact you shortly.\n",
		l.FirstName, n.cfg.CompanyName)
	return n.dispatch(
		fmt.Sprintf("We received your request - %s", n.cfg.CompanyName),
		confirmation, []string{l.Email}, "")
}
