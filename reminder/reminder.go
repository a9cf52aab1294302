// Package reminder sends payment reminder emails for overdue invoices.
package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mailjet/mailjet-apiv3-go"

	"github.com/invoicehub/engine/model"
)

// Service sends reminder emails. Outside production mode nothing leaves
// the machine, reminders are only logged.
type Service struct {
	APIKey    string
	APISecret string
	From      string
	FromName  string
	Mode      string
	Log       *slog.Logger
}

func NewService(cfg *model.Config, log *slog.Logger) *Service {
	return &Service{
		APIKey:    cfg.MailAPIKey,
		APISecret: cfg.MailSecret,
		From:      cfg.MailFrom,
		FromName:  cfg.MailFromName,
		Mode:      cfg.Mode,
		Log:       log,
	}
}

// SendOverdueReminders mails a reminder for every overdue invoice that has
// a client email address. It returns the number of reminders sent and the
// first send error, if any.
func (s *Service) SendOverdueReminders(invoices []model.Invoice, today time.Time) (int, error) {
	sent := 0
	for _, inv := range invoices {
		if model.DeriveStatus(inv, today) != model.InvoiceStatusOverdue {
			continue
		}
		if inv.ClientEmail == "" {
			s.Log.Warn("overdue invoice has no client email", "invoice", inv.InvoiceNumber)
			continue
		}
		subject := fmt.Sprintf("Invoice Reminder - %s", inv.InvoiceNumber)
		body := fmt.Sprintf("Your invoice %s is due on %s. Please make the payment.",
			inv.InvoiceNumber, model.FormatDate(inv.DueDate))
		if err := s.sendEmail(inv.ClientEmail, subject, body); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (s *Service) sendEmail(to string, subject string, body string) error {
	// when in production, send real email, else just log to console
	if s.Mode == "production" {
		return s.sendRealEmail(to, subject, body)
	}
	s.Log.Info("sending email", "to", to, "subject", subject, "body", body)
	return nil
}

func (s *Service) sendRealEmail(to string, subject string, body string) error {
	mj := mailjet.NewMailjetClient(s.APIKey, s.APISecret)

	messagesInfo := []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: s.From,
				Name:  s.FromName,
			},
			To: &mailjet.RecipientsV31{
				mailjet.RecipientV31{
					Email: to,
				},
			},
			Subject:  subject,
			TextPart: body,
		},
	}

	messages := mailjet.MessagesV31{Info: messagesInfo}
	if _, err := mj.SendMailV31(&messages); err != nil {
		return fmt.Errorf("cannot send reminder to %s: %w", to, err)
	}
	return nil
}
