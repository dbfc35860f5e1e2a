package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is the closed set of room categories the hotel sells.
type RoomType string

const (
	RoomTypeSingle    RoomType = "Single"
	RoomTypeDouble    RoomType = "Double"
	RoomTypeSuite     RoomType = "Suite"
	RoomTypeFamily    RoomType = "Family"
	RoomTypeDeluxe    RoomType = "Deluxe"
	RoomTypeExecutive RoomType = "Executive"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeFamily, RoomTypeDeluxe, RoomTypeExecutive:
		return true
	}
	return false
}

// Room is keyed by its room number. The number is immutable after creation;
// update paths must never touch it.
type Room struct {
	RoomNumber string `gorm:"primaryKey;column:room_number;type:varchar(50)" json:"roomNumber"`

	RoomType      RoomType       `gorm:"column:room_type;size:32" json:"roomType"`
	PricePerNight float64        `gorm:"column:price_per_night" json:"pricePerNight"`
	Capacity      int            `gorm:"column:capacity" json:"capacity"`
	Size          int            `gorm:"column:size" json:"size"`
	Features      datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Description   string         `gorm:"type:text" json:"description"`

	Images []RoomImage `gorm:"foreignKey:RoomNumber;references:RoomNumber" json:"images"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
