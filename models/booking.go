package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking occupies the half-open date range [CheckIn, CheckOut) on its room
// while Status is Pending or Confirmed.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CheckIn   time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut  time.Time `gorm:"column:check_out" json:"checkOut"`
	NumGuests int       `gorm:"column:num_guests" json:"numGuests"`

	TotalAmount   float64       `gorm:"column:total_amount" json:"totalAmount"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;size:32" json:"paymentStatus"`
	PaymentRef    *string       `gorm:"column:payment_ref;size:128" json:"paymentRef,omitempty"`

	GuestID    uint   `gorm:"column:guest_id;index" json:"guestId"`
	RoomNumber string `gorm:"column:room_number;index;type:varchar(50)" json:"roomNumber"`

	Guest Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomNumber;references:RoomNumber" json:"room,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
