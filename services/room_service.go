package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// Default images per room type, used when a new room comes without any.
var defaultRoomImages = map[models.RoomType]string{
	models.RoomTypeSingle: "/images/single-room.jpg",
	models.RoomTypeDouble: "/images/double-room.jpg",
	models.RoomTypeSuite:  "/images/suite-room.jpg",
	models.RoomTypeFamily: "/images/family-room.jpg",
}

const defaultRoomImage = "/images/default-room.jpg"

type RoomImageInput struct {
	URL          string `json:"url" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type CreateRoomInput struct {
	RoomNumber    string           `json:"roomNumber" binding:"required"`
	RoomType      models.RoomType  `json:"roomType" binding:"required"`
	PricePerNight float64          `json:"pricePerNight" binding:"required"`
	Capacity      int              `json:"capacity" binding:"required"`
	Size          int              `json:"size" binding:"required"`
	Features      []string         `json:"features" binding:"required"`
	Description   string           `json:"description"`
	Images        []RoomImageInput `json:"images"`
}

type UpdateRoomInput struct {
	RoomType      models.RoomType `json:"roomType" binding:"required"`
	PricePerNight float64         `json:"pricePerNight" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required"`
	Size          int             `json:"size" binding:"required"`
	Features      []string        `json:"features" binding:"required"`
	Description   string          `json:"description"`
}

// RoomFilter narrows listings; zero values mean no filtering.
type RoomFilter struct {
	RoomType   models.RoomType
	NumberLike string
}

func validateRoomAttrs(roomType models.RoomType, price float64, capacity int) error {
	if !roomType.Valid() {
		return fmt.Errorf("%w: unknown room type %q", ErrValidation, roomType)
	}
	if price <= 0 {
		return fmt.Errorf("%w: pricePerNight must be positive", ErrValidation)
	}
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	return nil
}

// Create inserts a room together with its image rows in one transaction.
// A duplicate room number is a Conflict, not an internal error.
func (s *RoomService) Create(in CreateRoomInput) (*models.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.RoomNumber == "" {
		return nil, fmt.Errorf("%w: roomNumber is required", ErrValidation)
	}
	if err := validateRoomAttrs(in.RoomType, in.PricePerNight, in.Capacity); err != nil {
		return nil, err
	}

	features, err := featuresJSON(in.Features)
	if err != nil {
		return nil, err
	}

	room := models.Room{
		RoomNumber:    in.RoomNumber,
		RoomType:      in.RoomType,
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		Size:          in.Size,
		Features:      features,
		Description:   in.Description,
	}

	images := in.Images
	if len(images) == 0 {
		url, ok := defaultRoomImages[in.RoomType]
		if !ok {
			url = defaultRoomImage
		}
		images = []RoomImageInput{{URL: url, DisplayOrder: 1}}
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("%w: room number '%s' already exists", ErrConflict, room.RoomNumber)
			}
			return fmt.Errorf("failed to create room: %w", err)
		}
		for _, img := range images {
			rec := models.RoomImage{
				RoomNumber:   room.RoomNumber,
				URL:          img.URL,
				DisplayOrder: img.DisplayOrder,
			}
			if rec.DisplayOrder == 0 {
				rec.DisplayOrder = 1
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create room image: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByNumber(room.RoomNumber)
}

// GetAll lists rooms with their images ordered for display.
func (s *RoomService) GetAll(filter RoomFilter) ([]models.Room, error) {
	q := s.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	})
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if like := strings.TrimSpace(filter.NumberLike); like != "" {
		q = q.Where("room_number LIKE ?", "%"+like+"%")
	}

	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByNumber(roomNumber string) (*models.Room, error) {
	var room models.Room
	err := s.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("room_number = ?", roomNumber).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room '%s'", ErrNotFound, roomNumber)
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

// Update replaces room attributes. The room number itself is immutable.
func (s *RoomService) Update(roomNumber string, in UpdateRoomInput) (*models.Room, error) {
	if err := validateRoomAttrs(in.RoomType, in.PricePerNight, in.Capacity); err != nil {
		return nil, err
	}
	features, err := featuresJSON(in.Features)
	if err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.Room{}).
		Where("room_number = ?", roomNumber).
		Updates(map[string]interface{}{
			"room_type":       in.RoomType,
			"price_per_night": in.PricePerNight,
			"capacity":        in.Capacity,
			"size":            in.Size,
			"features":        features,
			"description":     in.Description,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room '%s'", ErrNotFound, roomNumber)
	}
	return s.GetByNumber(roomNumber)
}

// Delete removes a room. It refuses while the room still has active
// (Pending/Confirmed) bookings; historical booking rows and images are
// cascaded explicitly inside the transaction so nothing is left orphaned.
func (s *RoomService) Delete(roomNumber string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room '%s'", ErrNotFound, roomNumber)
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("room_number = ? AND status IN ?", roomNumber,
				[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: room '%s' has %d active booking(s)", ErrConflict, roomNumber, active)
		}

		if err := tx.Where("room_number = ?", roomNumber).Delete(&models.RoomImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete room images: %w", err)
		}
		if err := tx.Where("room_number = ?", roomNumber).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to delete historical bookings: %w", err)
		}
		if err := tx.Where("room_number = ?", roomNumber).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}
		return nil
	})
}

func featuresJSON(features []string) (datatypes.JSON, error) {
	if features == nil {
		features = []string{}
	}
	js, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid features list", ErrValidation)
	}
	return datatypes.JSON(js), nil
}
