package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailKind int

const (
	EmailBookingConfirmed EmailKind = iota
	EmailBookingCancelled
)

// BookingEmail carries everything the templates need.
type BookingEmail struct {
	Kind        EmailKind
	Recipient   string
	GuestName   string
	BookingID   uint
	RoomNumber  string
	CheckIn     string
	CheckOut    string
	NumGuests   int
	TotalAmount float64
}

// SendBookingEmail sends a confirmation or cancellation email over SMTP.
// When SMTP is not configured it falls back to a mock send (log only) so dev
// environments work without a mail relay.
func SendBookingEmail(m BookingEmail) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Hotel Team")

	subject, plainBody, htmlBody := renderBookingEmail(m, fromName)

	// DEV fallback -> mock send (log) when SMTP not configured
	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%q booking:%d room:%s",
			m.Recipient, subject, m.BookingID, m.RoomNumber)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{m.Recipient}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", m.Recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", m.Recipient, err)
		return err
	}

	log.Printf("📨 Email sent to %s (booking %d)", m.Recipient, m.BookingID)
	return nil
}

func renderBookingEmail(m BookingEmail, fromName string) (subject, plain, html string) {
	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guest := safe(m.GuestName)
	room := safe(m.RoomNumber)

	switch m.Kind {
	case EmailBookingCancelled:
		subject = "Your Reservation Cancellation"
		plain = fmt.Sprintf(
			"Hello %s,\n\nYour reservation for Room %s from %s to %s has been cancelled.\n\n"+
				"If this was a mistake or you have any questions, please contact us.\n\n"+
				"Best Regards,\n%s",
			guest, room, m.CheckIn, m.CheckOut, fromName,
		)
		html = fmt.Sprintf(
			"<p>Hello <strong>%s</strong>,</p>"+
				"<p>Your reservation for <strong>Room %s</strong> from <strong>%s</strong> to <strong>%s</strong> has been cancelled.</p>"+
				"<p>If this was a mistake or you have any questions, please contact us.</p>"+
				"<p><strong>Best Regards,</strong><br/>%s</p>",
			htmlEscape(guest), htmlEscape(room), m.CheckIn, m.CheckOut, htmlEscape(fromName),
		)
	default:
		subject = "Your Reservation Confirmation"
		plain = fmt.Sprintf(
			"Hello %s,\n\nThank you for your reservation at our hotel. Here are your booking details:\n\n"+
				"Room Number: %s\nCheck-In: %s\nCheck-Out: %s\nNumber of Guests: %d\nTotal Amount: $%.2f\n\n"+
				"We look forward to hosting you!\n\nBest Regards,\n%s",
			guest, room, m.CheckIn, m.CheckOut, m.NumGuests, m.TotalAmount, fromName,
		)
		html = fmt.Sprintf(
			"<p>Hello <strong>%s</strong>,</p>"+
				"<p>Thank you for your reservation at our hotel. Here are your booking details:</p>"+
				"<ul>"+
				"<li><strong>Room Number:</strong> %s</li>"+
				"<li><strong>Check-In:</strong> %s</li>"+
				"<li><strong>Check-Out:</strong> %s</li>"+
				"<li><strong>Number of Guests:</strong> %d</li>"+
				"<li><strong>Total Amount:</strong> $%.2f</li>"+
				"</ul>"+
				"<p>We look forward to hosting you!</p>"+
				"<p><strong>Best Regards,</strong><br/>%s</p>",
			htmlEscape(guest), htmlEscape(room), m.CheckIn, m.CheckOut, m.NumGuests, m.TotalAmount, htmlEscape(fromName),
		)
	}
	return subject, plain, html
}

// minimal html escaper for the small strings we use
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
