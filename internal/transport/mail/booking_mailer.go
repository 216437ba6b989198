package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

type BookingMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewBookingMailer(host, port, username, password, from string) *BookingMailer {
	return &BookingMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *BookingMailer) SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	subject := fmt.Sprintf("Booking confirmed: %s", booking.PackageTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nTrip: %s\nDeparture: %s\nTravelers: %d\nTotal charged: %.2f %s\nBooking reference: %s\n\nSee you out there,\nThe WanderTrails team",
		booking.FirstName,
		booking.PackageTitle,
		booking.TravelDate,
		booking.Travelers,
		booking.TotalPrice,
		strings.ToUpper(booking.Currency),
		booking.ID,
	)

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(message.String()))
}
