package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"hotel-booking-backend/models"
)

// ChargeRequest is what we hand to the external payment gateway.
type ChargeRequest struct {
	ReservationID uint    `json:"reservationId"`
	Amount        float64 `json:"amount"`
	CardNumber    string  `json:"cardNumber"`
	ExpiryDate    string  `json:"expiryDate"`
	CVC           string  `json:"cvc"`
}

// ChargeResult is the gateway's verdict. The gateway is opaque: we only care
// about success/failure and the transaction reference.
type ChargeResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// PaymentGateway is the external payment collaborator.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// HTTPPaymentGateway posts charges to PAYMENT_GATEWAY_URL (a Mockoon-style
// endpoint in dev).
type HTTPPaymentGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPPaymentGateway(baseURL string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPPaymentGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ChargeResult{}, fmt.Errorf("marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/payments", bytes.NewReader(body))
	if err != nil {
		return ChargeResult{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return ChargeResult{}, fmt.Errorf("%w: payment gateway unreachable: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ChargeResult{}, fmt.Errorf("%w: bad gateway response: %v", ErrExternalService, err)
	}
	if resp.StatusCode != http.StatusOK || result.Status != "success" {
		return result, fmt.Errorf("%w: gateway status %q", ErrPaymentDeclined, result.Status)
	}
	return result, nil
}

// PaymentService drives the external charge flow. It runs strictly after the
// booking exists and entirely outside any room lock, so a hanging gateway can
// never block reservations.
type PaymentService struct {
	Bookings *BookingService
	Gateway  PaymentGateway
}

func NewPaymentService(bookings *BookingService, gateway PaymentGateway) *PaymentService {
	return &PaymentService{Bookings: bookings, Gateway: gateway}
}

type ProcessPaymentInput struct {
	ReservationID uint   `json:"reservationId" binding:"required"`
	CardNumber    string `json:"cardNumber" binding:"required"`
	ExpiryDate    string `json:"expiryDate" binding:"required"`
	CVC           string `json:"cvc" binding:"required"`
}

// Process charges the booking's total through the gateway. Success marks the
// booking Paid with the transaction reference; a decline or gateway failure
// marks it Failed. The room's date range is NOT released on failure — it
// stays occupied pending manual resolution.
func (s *PaymentService) Process(ctx context.Context, in ProcessPaymentInput) (*models.Booking, error) {
	booking, err := s.Bookings.Get(in.ReservationID)
	if err != nil {
		return nil, err
	}

	result, chargeErr := s.Gateway.Charge(ctx, ChargeRequest{
		ReservationID: booking.ID,
		Amount:        booking.TotalAmount,
		CardNumber:    in.CardNumber,
		ExpiryDate:    in.ExpiryDate,
		CVC:           in.CVC,
	})
	if chargeErr != nil {
		if _, markErr := s.Bookings.SetPaymentStatus(booking.ID, models.PaymentFailed, nil); markErr != nil {
			log.Printf("❌ failed to mark booking %d payment as Failed: %v", booking.ID, markErr)
		}
		return nil, chargeErr
	}

	return s.Bookings.SetPaymentStatus(booking.ID, models.PaymentPaid, &result.TransactionID)
}
