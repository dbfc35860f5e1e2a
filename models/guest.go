package models

import (
	"time"

	"gorm.io/gorm"
)

// Guest identity is the (identification, document_type) pair. Email is a
// plain contact attribute, never an identity key.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Identification string `gorm:"column:identification;size:64;uniqueIndex:idx_guest_identity" json:"identification"`
	DocumentType   string `gorm:"column:document_type;size:32;uniqueIndex:idx_guest_identity" json:"documentType"`

	FirstName string `gorm:"column:first_name;size:100" json:"firstName"`
	LastName  string `gorm:"column:last_name;size:100" json:"lastName"`
	Email     string `gorm:"column:email;size:150" json:"email"`
	Phone     string `gorm:"column:phone;size:50" json:"phone"`
	Country   string `gorm:"column:country;size:100" json:"country"`

	// Optional link to the primary booker. A lookup reference only, not an
	// ownership relation.
	HostingGuestID *uint  `gorm:"column:hosting_guest_id;index" json:"hostingGuestId,omitempty"`
	HostingGuest   *Guest `gorm:"foreignKey:HostingGuestID" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
