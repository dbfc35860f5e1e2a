package services

import (
	"time"

	"hotel-booking-backend/models"
)

// Nights returns the billable nights for a stay: the floor of the day span,
// never less than one. A same-day checkout still bills a full night.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Price computes the stay total for a room. Pure function, no side effects.
func Price(room *models.Room, checkIn, checkOut time.Time) float64 {
	return float64(Nights(checkIn, checkOut)) * room.PricePerNight
}
