package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

type Booking struct {
	gorm.Model
	PropertyID   uint       `json:"propertyID" gorm:"not null;index"`
	Property     Property   `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	TenantName   string     `json:"tenantName" gorm:"not null"`
	TenantEmail  string     `json:"tenantEmail" gorm:"not null;index"`
	TenantPhone  string     `json:"tenantPhone" gorm:"not null"`
	BookingDate  time.Time  `json:"bookingDate"`
	CheckInDate  *time.Time `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate"`
	Amount       float64    `json:"amount"`
	Notes        string     `json:"notes" gorm:"type:text"`
	Status       string     `json:"status" gorm:"type:varchar(20);not null;index"`

	// Payment reconciliation fields, written only by the payment service.
	PaymentStatus     string `json:"paymentStatus" gorm:"type:varchar(20);index"`
	RazorpayOrderID   string `json:"razorpayOrderID" gorm:"type:varchar(64);index"`
	RazorpayPaymentID string `json:"razorpayPaymentID" gorm:"type:varchar(64)"`
	RazorpaySignature string `json:"razorpaySignature" gorm:"type:varchar(128)"`
}

// CanReview reports whether the tenant may review the stay: the booking must
// be confirmed and the check-out date in the past.
func (b *Booking) CanReview() bool {
	return b.Status == BookingStatusConfirmed &&
		b.CheckOutDate != nil &&
		b.CheckOutDate.Before(time.Now())
}

// Custom JSON marshaling to expose canReview and to avoid serializing an
// empty property
func (b *Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	aux := &struct {
		Property  *Property `json:"property,omitempty"`
		CanReview bool      `json:"canReview"`
		*Alias
	}{
		Property:  nil,
		CanReview: b.CanReview(),
		Alias:     (*Alias)(b),
	}

	if b.Property.ID > 0 {
		propertyCopy := b.Property
		propertyCopy.Bookings = nil
		aux.Property = &propertyCopy
	}

	return json.Marshal(aux)
}
