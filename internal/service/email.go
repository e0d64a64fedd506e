package service

import (
	"context"
	"fmt"

	"golfcart-rental-backend/internal/domain"

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

func (s *emailService) SendBookingConfirmation(ctx context.Context, b *domain.Booking) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", b.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking received - %s", b.BookingNumber))

	body := fmt.Sprintf(
		"Hello %s,\n\nWe have received your booking %s for %d cart(s) from %s to %s.\n\nTotal: $%.2f (incl. GST $%.2f)\n\nYour booking is pending until payment completes.\n\nBest regards,\nThe Rentals Team",
		b.CustomerName, b.BookingNumber, b.Quantity,
		b.StartDate.Format("Mon 2 Jan 2006 3:04 PM"), b.EndDate.Format("Mon 2 Jan 2006 3:04 PM"),
		float64(b.TotalCents)/100, float64(b.TaxCents)/100)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}

	return nil
}

func (s *emailService) SendBookingCancellation(ctx context.Context, b *domain.Booking) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", b.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking cancelled - %s", b.BookingNumber))

	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking %s has been cancelled and the reserved cart(s) released.\n\nIf you already paid, a refund will follow separately.\n\nBest regards,\nThe Rentals Team",
		b.CustomerName, b.BookingNumber)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking cancellation: %w", err)
	}

	return nil
}
