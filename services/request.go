package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Residentia-pg/residentia-backend/models"
)

type ChangeRequestService struct {
	db *gorm.DB
}

func NewChangeRequestService(db *gorm.DB) *ChangeRequestService {
	return &ChangeRequestService{db: db}
}

// fieldChange is one key/value pair from a request payload, in the order the
// owner submitted it. Later keys win when a payload repeats one.
type fieldChange struct {
	Key   string
	Value interface{}
}

// propertyFieldSetters maps lowercased payload keys to the property fields
// they write. Keys not in this table are logged and skipped at approval.
var propertyFieldSetters = map[string]func(*models.Property, interface{}) error{
	"propertyname":  func(p *models.Property, v interface{}) error { return setString(&p.PropertyName, "propertyName", v) },
	"address":       func(p *models.Property, v interface{}) error { return setString(&p.Address, "address", v) },
	"city":          func(p *models.Property, v interface{}) error { return setString(&p.City, "city", v) },
	"state":         func(p *models.Property, v interface{}) error { return setString(&p.State, "state", v) },
	"pincode":       func(p *models.Property, v interface{}) error { return setString(&p.Pincode, "pincode", v) },
	"rentamount":    func(p *models.Property, v interface{}) error { return setInt(&p.RentAmount, "rentAmount", v) },
	"sharingtype":   func(p *models.Property, v interface{}) error { return setString(&p.SharingType, "sharingType", v) },
	"maxcapacity":   func(p *models.Property, v interface{}) error { return setInt(&p.MaxCapacity, "maxCapacity", v) },
	"availablebeds": func(p *models.Property, v interface{}) error { return setInt(&p.AvailableBeds, "availableBeds", v) },
	"foodincluded":  func(p *models.Property, v interface{}) error { return setBool(&p.FoodIncluded, "foodIncluded", v) },
	"description":   func(p *models.Property, v interface{}) error { return setString(&p.Description, "description", v) },
	"maplink":       func(p *models.Property, v interface{}) error { return setString(&p.MapLink, "mapLink", v) },
	"imageurl":      func(p *models.Property, v interface{}) error { return setString(&p.ImageURL, "imageUrl", v) },
	"amenities":     func(p *models.Property, v interface{}) error { return setString(&p.Amenities, "amenities", v) },
}

func setString(dst *string, field string, v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string, got %T", ErrValidationFailed, field, v)
	}
	*dst = s
	return nil
}

func setInt(dst *int, field string, v interface{}) error {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			// 13500.0 style values still narrow cleanly.
			f, ferr := n.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return fmt.Errorf("%w: %s expects an integer, got %s", ErrValidationFailed, field, n.String())
			}
			i = int64(f)
		}
		*dst = int(i)
		return nil
	case float64:
		if n != float64(int64(n)) {
			return fmt.Errorf("%w: %s expects an integer, got %v", ErrValidationFailed, field, n)
		}
		*dst = int(n)
		return nil
	default:
		return fmt.Errorf("%w: %s expects a number, got %T", ErrValidationFailed, field, v)
	}
}

func setBool(dst *bool, field string, v interface{}) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a boolean, got %T", ErrValidationFailed, field, v)
	}
	*dst = b
	return nil
}

// decodePayload walks the payload token by token so changes apply in the
// order the owner wrote them, not map iteration order.
func decodePayload(payload []byte) ([]fieldChange, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrValidationFailed)
	}

	var changes []fieldChange
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		key := keyTok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		changes = append(changes, fieldChange{Key: key, Value: value})
	}

	return changes, nil
}

// applyChanges writes a decoded payload onto a property. Unknown keys are
// logged and skipped; recognized keys with uncoercible values fail the
// whole application.
func applyChanges(property *models.Property, changes []fieldChange, requestID uint) error {
	for _, change := range changes {
		setter, ok := propertyFieldSetters[strings.ToLower(change.Key)]
		if !ok {
			log.Printf("change request %d: skipping unknown field %q", requestID, change.Key)
			continue
		}
		if err := setter(property, change.Value); err != nil {
			return err
		}
	}
	return nil
}

// SubmitCreate files a CREATE request. A placeholder property row is created
// in PENDING state so the request has something to point at; the payload is
// applied and the listing activated only when an admin approves.
func (s *ChangeRequestService) SubmitCreate(ownerID uint, payload []byte) (*models.ChangeRequest, error) {
	if _, err := decodePayload(payload); err != nil {
		return nil, err
	}

	var request models.ChangeRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		property := models.Property{
			OwnerID: ownerID,
			Status:  models.PropertyStatusPending,
		}
		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		request = models.ChangeRequest{
			PropertyID: property.ID,
			OwnerID:    ownerID,
			ChangeType: models.ChangeTypeCreate,
			Status:     models.RequestStatusPending,
			Payload:    datatypes.JSON(payload),
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// SubmitUpdate files an UPDATE request against an existing property owned by
// the caller. The payload is stored untouched; field coercion happens at
// approval time.
func (s *ChangeRequestService) SubmitUpdate(ownerID, propertyID uint, payload []byte) (*models.ChangeRequest, error) {
	if _, err := decodePayload(payload); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	request := models.ChangeRequest{
		PropertyID: property.ID,
		OwnerID:    ownerID,
		ChangeType: models.ChangeTypeUpdate,
		Status:     models.RequestStatusPending,
		Payload:    datatypes.JSON(payload),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve applies a pending request's payload to its property and flips the
// request to APPROVED, all in one transaction. CREATE approvals also move
// the placeholder listing to ACTIVE.
func (s *ChangeRequestService) Approve(requestID uint) (*models.ChangeRequest, error) {
	var request models.ChangeRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if request.Status != models.RequestStatusPending {
			return ErrAlreadyDecided
		}

		var property models.Property
		if err := tx.First(&property, request.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		changes, err := decodePayload(request.Payload)
		if err != nil {
			return err
		}
		if err := applyChanges(&property, changes, request.ID); err != nil {
			return err
		}

		if request.ChangeType == models.ChangeTypeCreate {
			property.Status = models.PropertyStatusActive
		}

		if err := tx.Save(&property).Error; err != nil {
			return err
		}

		request.Status = models.RequestStatusApproved
		return tx.Save(&request).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// Reject flips a pending request to REJECTED. The property is untouched.
func (s *ChangeRequestService) Reject(requestID uint) (*models.ChangeRequest, error) {
	var request models.ChangeRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if request.Status != models.RequestStatusPending {
		return nil, ErrAlreadyDecided
	}

	request.Status = models.RequestStatusRejected
	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *ChangeRequestService) Get(requestID uint) (*models.ChangeRequest, error) {
	var request models.ChangeRequest
	if err := s.db.Preload("Property").First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (s *ChangeRequestService) ListByOwner(ownerID uint) ([]models.ChangeRequest, error) {
	var requests []models.ChangeRequest
	err := s.db.Preload("Property").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (s *ChangeRequestService) ListAll(status string, page, perPage int) ([]models.ChangeRequest, int64, error) {
	query := s.db.Model(&models.ChangeRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ChangeRequest
	err := query.Preload("Property").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&requests).Error
	return requests, total, err
}
