package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Residentia-pg/residentia-backend/models"
)

// EmailService sends plain-text transactional mail over SMTP. Configured by
// SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD and SMTP_FROM.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (s *EmailService) send(to, subject, body string) error {
	if s.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"Message-ID: <" + uuid.NewString() + "@residentia>",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{to}, []byte(msg))
}

func (s *EmailService) SendPaymentConfirmation(booking *models.Booking) error {
	propertyName := booking.Property.PropertyName

	checkIn := "-"
	if booking.CheckInDate != nil {
		checkIn = booking.CheckInDate.Format("02 Jan 2006")
	}

	subject := fmt.Sprintf("Payment Confirmation - Residentia Booking #%d", booking.ID)
	body := fmt.Sprintf(`Dear %s,

Your payment has been received. Booking details:

Booking ID: %d
Property: %s
Amount: Rs. %.2f
Payment ID: %s
Check-in: %s
Billed On: %s

Thank you for choosing Residentia.
`,
		booking.TenantName,
		booking.ID,
		propertyName,
		booking.Amount,
		booking.RazorpayPaymentID,
		checkIn,
		time.Now().Format("02 Jan 2006"),
	)

	return s.send(booking.TenantEmail, subject, body)
}
