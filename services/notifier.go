package services

import (
	"log"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"
)

// Notifier is the post-commit hook for guest-facing messages. Dispatch is
// fire-and-forget: the reservation engine calls it from a detached goroutine
// after the transaction committed and the room lock was released, so a slow
// mail relay can never roll back or delay a booking.
type Notifier interface {
	BookingConfirmed(booking *models.Booking) error
	BookingCancelled(booking *models.Booking) error
}

// EmailNotifier sends booking mails over SMTP (or the mock log sender when
// SMTP is not configured).
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) BookingConfirmed(booking *models.Booking) error {
	return utils.SendBookingEmail(utils.BookingEmail{
		Kind:        utils.EmailBookingConfirmed,
		Recipient:   booking.Guest.Email,
		GuestName:   booking.Guest.FirstName,
		BookingID:   booking.ID,
		RoomNumber:  booking.RoomNumber,
		CheckIn:     booking.CheckIn.Format("2006-01-02"),
		CheckOut:    booking.CheckOut.Format("2006-01-02"),
		NumGuests:   booking.NumGuests,
		TotalAmount: booking.TotalAmount,
	})
}

func (n *EmailNotifier) BookingCancelled(booking *models.Booking) error {
	return utils.SendBookingEmail(utils.BookingEmail{
		Kind:       utils.EmailBookingCancelled,
		Recipient:  booking.Guest.Email,
		GuestName:  booking.Guest.FirstName,
		BookingID:  booking.ID,
		RoomNumber: booking.RoomNumber,
		CheckIn:    booking.CheckIn.Format("2006-01-02"),
		CheckOut:   booking.CheckOut.Format("2006-01-02"),
	})
}

// NopNotifier is used in tests and when mail is disabled outright.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(*models.Booking) error { return nil }
func (NopNotifier) BookingCancelled(*models.Booking) error { return nil }

// dispatch runs a notification in the background, logging failures.
// Notification success is independent of booking success.
func dispatch(name string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			log.Printf("⚠️  notification %s failed: %v", name, err)
		}
	}()
}
