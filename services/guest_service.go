package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-booking-backend/models"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// GuestInput is the identity + contact payload attached to a booking request.
type GuestInput struct {
	Identification string `json:"identification" binding:"required"`
	DocumentType   string `json:"documentType" binding:"required"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Country        string `json:"country" binding:"required"`
}

func (in *GuestInput) validate() error {
	for field, v := range map[string]string{
		"identification": in.Identification,
		"documentType":   in.DocumentType,
		"firstName":      in.FirstName,
		"lastName":       in.LastName,
		"email":          in.Email,
		"phone":          in.Phone,
		"country":        in.Country,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: guest %s is required", ErrValidation, field)
		}
	}
	return nil
}

// Upsert creates or refreshes a guest strictly by the
// (identification, documentType) identity pair. Contact fields are always
// taken from the latest request. Email is never used as an identity key.
func (s *GuestService) Upsert(tx *gorm.DB, in GuestInput) (*models.Guest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var guest models.Guest
	err := tx.
		Where("identification = ? AND document_type = ?", in.Identification, in.DocumentType).
		First(&guest).Error

	switch {
	case err == nil:
		guest.FirstName = in.FirstName
		guest.LastName = in.LastName
		guest.Email = in.Email
		guest.Phone = in.Phone
		guest.Country = in.Country
		if err := tx.Save(&guest).Error; err != nil {
			return nil, fmt.Errorf("failed to update guest: %w", err)
		}
		return &guest, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		guest = models.Guest{
			Identification: in.Identification,
			DocumentType:   in.DocumentType,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Email:          in.Email,
			Phone:          in.Phone,
			Country:        in.Country,
		}
		if err := tx.Create(&guest).Error; err != nil {
			if isDuplicateKeyError(err) {
				return nil, fmt.Errorf("%w: guest identity already exists", ErrConflict)
			}
			return nil, fmt.Errorf("failed to create guest: %w", err)
		}
		return &guest, nil

	default:
		return nil, fmt.Errorf("db error looking up guest: %w", err)
	}
}

// GetAll returns guests sorted by first name.
func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.Order("first_name ASC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	return guests, nil
}
