package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/models"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Reservation core: the availability index is a cache over the bookings
	// table; rebuild it before taking traffic.
	index := services.NewAvailabilityIndex()
	if err := index.Rebuild(db); err != nil {
		log.Fatalf("❌ Failed to build availability index: %v", err)
	}
	locks := services.NewRoomLocker()

	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, index, locks, guestService, services.NewEmailNotifier())

	if timeout := utils.EnvOrDefault("ROOM_LOCK_TIMEOUT", ""); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			log.Fatalf("❌ Invalid ROOM_LOCK_TIMEOUT: %v", err)
		}
		bookingService.LockTimeout = d
	}
	if initial := models.BookingStatus(utils.EnvOrDefault("BOOKING_INITIAL_STATUS", "")); initial != "" {
		if initial != models.BookingPending && initial != models.BookingConfirmed {
			log.Fatalf("❌ BOOKING_INITIAL_STATUS must be Pending or Confirmed, got %q", initial)
		}
		bookingService.InitialStatus = initial
	}

	gateway := services.NewHTTPPaymentGateway(utils.EnvOrDefault("PAYMENT_GATEWAY_URL", "http://localhost:3002"))
	paymentService := services.NewPaymentService(bookingService, gateway)

	bookingController := controllers.NewBookingController(bookingService)
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)
	paymentController := controllers.NewPaymentController(paymentService)

	router := routes.SetupRouter(bookingController, roomController, guestController, paymentController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
