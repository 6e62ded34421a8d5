package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendPayoutCompleted(ctx context.Context, email, name string, amount float64, reference string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour payout of %.2f has been completed.\n\nTransfer reference: %s\n\nBest regards,\nThe CampusBooks Team", name, amount, reference)
	return s.send(email, "Your payout has been completed", body)
}

func (s *emailService) SendPayoutFailed(ctx context.Context, email, name string, amount float64, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour payout of %.2f could not be completed.", name, amount)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nPlease review your payout details and submit a new request, or contact support.\n\nBest regards,\nThe CampusBooks Team"
	return s.send(email, "Your payout could not be completed", body)
}

func (s *emailService) SendPayoutRejected(ctx context.Context, email, name string, amount float64, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour payout request of %.2f was rejected.", name, amount)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe CampusBooks Team"
	return s.send(email, "Your payout request was rejected", body)
}
