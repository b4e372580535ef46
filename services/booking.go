package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Residentia-pg/residentia-backend/models"
)

type BookingInput struct {
	PropertyID   uint     `json:"propertyId" validate:"required"`
	TenantName   string   `json:"tenantName" validate:"required,max=256"`
	TenantEmail  string   `json:"tenantEmail" validate:"required,email"`
	TenantPhone  string   `json:"tenantPhone" validate:"required"`
	CheckInDate  *string  `json:"checkInDate"`
	CheckOutDate *string  `json:"checkOutDate"`
	Amount       *float64 `json:"amount"`
	Notes        string   `json:"notes" validate:"max=2048"`
}

type BookingUpdateInput struct {
	TenantName   *string    `json:"tenantName"`
	TenantEmail  *string    `json:"tenantEmail" validate:"omitempty,email"`
	TenantPhone  *string    `json:"tenantPhone"`
	CheckInDate  *time.Time `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate"`
	Amount       *float64   `json:"amount" validate:"omitempty,gt=0"`
	Status       *string    `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	Notes        *string    `json:"notes" validate:"omitempty,max=2048"`
}

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// Create records a new booking in PENDING state. When the caller supplies no
// amount (or a non-positive one) the property's monthly rent is charged.
func (s *BookingService) Create(input BookingInput, checkIn, checkOut *time.Time) (*models.Booking, error) {
	var property models.Property
	if err := s.db.First(&property, input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	amount := 0.0
	if input.Amount != nil {
		amount = *input.Amount
	}
	if amount <= 0 {
		amount = float64(property.RentAmount)
	}

	booking := models.Booking{
		PropertyID:    property.ID,
		TenantName:    input.TenantName,
		TenantEmail:   strings.ToLower(input.TenantEmail),
		TenantPhone:   input.TenantPhone,
		BookingDate:   time.Now(),
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Amount:        amount,
		Notes:         input.Notes,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	booking.Property = property
	return &booking, nil
}

func (s *BookingService) get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Property").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// Cancel marks a booking CANCELLED. Cancelling an already cancelled booking
// is a no-op rather than an error.
func (s *BookingService) Cancel(id uint) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return booking, nil
	}

	booking.Status = models.BookingStatusCancelled
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// Restore moves a booking back to CONFIRMED regardless of its prior state.
// Support staff use this to undo accidental cancellations.
func (s *BookingService) Restore(id uint) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusConfirmed
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// Update applies a partial edit. Tenant contact fields are frozen once a
// payment has been captured against the booking.
func (s *BookingService) Update(id uint, input BookingUpdateInput) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}

	contactEdit := input.TenantName != nil || input.TenantEmail != nil || input.TenantPhone != nil
	if contactEdit && booking.RazorpayPaymentID != "" {
		return nil, ErrForbidden
	}

	if input.TenantName != nil {
		booking.TenantName = *input.TenantName
	}
	if input.TenantEmail != nil {
		booking.TenantEmail = strings.ToLower(*input.TenantEmail)
	}
	if input.TenantPhone != nil {
		booking.TenantPhone = *input.TenantPhone
	}
	if input.CheckInDate != nil {
		booking.CheckInDate = input.CheckInDate
	}
	if input.CheckOutDate != nil {
		booking.CheckOutDate = input.CheckOutDate
	}
	if input.Amount != nil {
		booking.Amount = *input.Amount
	}
	if input.Status != nil {
		booking.Status = *input.Status
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListByTenant(email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").
		Where("tenant_email = ?", strings.ToLower(email)).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListByOwner(ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.owner_id = ?", ownerID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListByProperty(propertyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListAll(page, perPage int) ([]models.Booking, int64, error) {
	var total int64
	if err := s.db.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := s.db.Preload("Property").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bookings).Error
	return bookings, total, err
}

func (s *BookingService) Delete(id uint) error {
	booking, err := s.get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(booking).Error
}
