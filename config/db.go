package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking-backend/models"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations and seeds base
// data. The handle is returned to the caller; nothing is kept in a package
// global, wiring happens in main.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	SeedDatabase(db)
	return db, nil
}

// Migrate applies the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Guest{},
		&models.Room{},
		&models.RoomImage{},
		&models.Booking{},
	)
}

// SeedDatabase inserts the starter inventory once.
func SeedDatabase(db *gorm.DB) {
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		return
	}

	features := func(items ...string) datatypes.JSON {
		js, _ := json.Marshal(items)
		return datatypes.JSON(js)
	}

	rooms := []models.Room{
		{
			RoomNumber:    "101",
			RoomType:      models.RoomTypeSingle,
			PricePerNight: 120000,
			Capacity:      1,
			Size:          20,
			Features:      features("WiFi", "AirConditioning"),
			Description:   "A cozy single room with all amenities.",
		},
		{
			RoomNumber:    "102",
			RoomType:      models.RoomTypeDouble,
			PricePerNight: 160000,
			Capacity:      2,
			Size:          30,
			Features:      features("WiFi", "AirConditioning", "SeaView"),
			Description:   "A spacious double room with a beautiful view.",
		},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	images := []models.RoomImage{
		{RoomNumber: "101", URL: "/images/single-room.jpg", DisplayOrder: 1},
		{RoomNumber: "101", URL: "/images/double-room-2.jpg", DisplayOrder: 2},
		{RoomNumber: "102", URL: "/images/family-room.jpg", DisplayOrder: 1},
	}
	if err := db.Create(&images).Error; err != nil {
		log.Printf("warning: failed to seed room images: %v", err)
	}

	log.Println("Rooms seeded")
}
