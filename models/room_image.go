package models

import "time"

type RoomImage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RoomNumber   string `gorm:"index;column:room_number;type:varchar(50)" json:"roomNumber"`
	URL          string `gorm:"column:url;size:255" json:"url"`
	DisplayOrder int    `gorm:"column:display_order;default:1" json:"displayOrder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
