package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking-backend/models"
)

var testDBSeq int64

// newTestDB opens a private in-memory sqlite database with the full schema.
// Each test gets its own named database; a single pooled connection keeps
// the shared cache consistent across goroutines.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:bookingtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Guest{},
		&models.Room{},
		&models.RoomImage{},
		&models.Booking{},
	))
	return db
}

func newBookingService(t *testing.T, db *gorm.DB) *BookingService {
	t.Helper()

	index := NewAvailabilityIndex()
	require.NoError(t, index.Rebuild(db))
	return NewBookingService(db, index, NewRoomLocker(), NewGuestService(db), NopNotifier{})
}

func seedRoom(t *testing.T, db *gorm.DB, number string, roomType models.RoomType, price float64, capacity int) {
	t.Helper()

	room := models.Room{
		RoomNumber:    number,
		RoomType:      roomType,
		PricePerNight: price,
		Capacity:      capacity,
		Size:          25,
		Features:      datatypes.JSON([]byte(`["WiFi"]`)),
	}
	require.NoError(t, db.Create(&room).Error)
}

// futureDate keeps booking tests clear of the no-backdating rule.
func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func guestInput(identification string) GuestInput {
	return GuestInput{
		Identification: identification,
		DocumentType:   "Passport",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Phone:          "+44123456789",
		Country:        "UK",
	}
}

func createInput(room string, inDays, outDays int) CreateBookingInput {
	return CreateBookingInput{
		CheckIn:    futureDate(inDays),
		CheckOut:   futureDate(outDays),
		NumGuests:  1,
		RoomNumber: room,
		Guest:      guestInput("ID-" + room),
	}
}
