package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Residentia-pg/residentia-backend/models"
)

// Mailer delivers payment receipts. Delivery failures never fail a payment.
type Mailer interface {
	SendPaymentConfirmation(booking *models.Booking) error
}

// OrderDetails is what the client needs to open the Razorpay checkout.
type OrderDetails struct {
	OrderID  string  `json:"orderId"`
	Amount   int64   `json:"amount"` // paise
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
	Booking  float64 `json:"bookingAmount"` // rupees, as stored on the booking
}

// PaymentStatusView is the read-side projection for payment status polls.
type PaymentStatusView struct {
	BookingID         uint    `json:"bookingId"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"paymentStatus"`
	Amount            float64 `json:"amount"`
	RazorpayOrderID   string  `json:"razorpayOrderId"`
	RazorpayPaymentID string  `json:"razorpayPaymentId"`
}

type PaymentService struct {
	db        *gorm.DB
	gateway   PaymentGateway
	mailer    Mailer
	keySecret string
}

func NewPaymentService(db *gorm.DB, gateway PaymentGateway, mailer Mailer) *PaymentService {
	return &PaymentService{
		db:        db,
		gateway:   gateway,
		mailer:    mailer,
		keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
	}
}

// CreateOrder opens a gateway order for a booking. The rupee amount on the
// booking is converted to paise for the gateway.
func (s *PaymentService) CreateOrder(bookingID uint) (*OrderDetails, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrForbidden
	}

	amountPaise := int64(booking.Amount * 100)
	receipt := fmt.Sprintf("booking_%d", booking.ID)

	order, err := s.gateway.CreateOrder(amountPaise, "INR", receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// Re-creating an order for the same booking overwrites the previous
	// order id, so only the latest order can be verified.
	// TODO: reuse the open order instead of minting a new one each call.
	booking.RazorpayOrderID = order.ID
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, err
	}

	return &OrderDetails{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    os.Getenv("RAZORPAY_KEY_ID"),
		Booking:  booking.Amount,
	}, nil
}

// VerifySignature checks the checkout callback signature: hex HMAC-SHA256
// over "orderId|paymentId" keyed with the gateway secret.
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPayment validates the gateway callback and, in a single transaction,
// marks the booking PAID and CONFIRMED. A receipt email goes out afterwards
// on a best-effort basis.
func (s *PaymentService) VerifyPayment(orderID, paymentID, signature string) (*models.Booking, error) {
	if !s.VerifySignature(orderID, paymentID, signature) {
		return nil, ErrSignatureInvalid
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("razorpay_order_id = ?", orderID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		booking.RazorpayPaymentID = paymentID
		booking.RazorpaySignature = signature
		booking.PaymentStatus = models.PaymentStatusPaid
		booking.Status = models.BookingStatusConfirmed

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		var loaded models.Booking
		if err := s.db.Preload("Property").First(&loaded, booking.ID).Error; err == nil {
			booking = loaded
		}
		if err := s.mailer.SendPaymentConfirmation(&booking); err != nil {
			log.Printf("payment confirmation email for booking %d failed: %v", booking.ID, err)
		}
	}

	return &booking, nil
}

// Status returns the payment projection for a booking.
func (s *PaymentService) Status(bookingID uint) (*PaymentStatusView, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &PaymentStatusView{
		BookingID:         booking.ID,
		Status:            booking.Status,
		PaymentStatus:     booking.PaymentStatus,
		Amount:            booking.Amount,
		RazorpayOrderID:   booking.RazorpayOrderID,
		RazorpayPaymentID: booking.RazorpayPaymentID,
	}, nil
}
