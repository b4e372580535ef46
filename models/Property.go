package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	PropertyStatusPending  = "PENDING"
	PropertyStatusActive   = "ACTIVE"
	PropertyStatusInactive = "INACTIVE"
)

type Property struct {
	gorm.Model
	OwnerID       uint      `json:"ownerID" gorm:"not null;index"`
	Owner         Owner     `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	PropertyName  string    `json:"propertyName"`
	Address       string    `json:"address"`
	City          string    `json:"city" gorm:"index"`
	State         string    `json:"state"`
	Pincode       string    `json:"pincode" gorm:"type:varchar(10)"`
	RentAmount    int       `json:"rentAmount"`
	SharingType   string    `json:"sharingType" gorm:"type:varchar(30)"` // single, double, triple
	MaxCapacity   int       `json:"maxCapacity"`
	AvailableBeds int       `json:"availableBeds"`
	FoodIncluded  bool      `json:"foodIncluded" gorm:"default:false"`
	Description   string    `json:"description" gorm:"type:text"`
	MapLink       string    `json:"mapLink"`
	ImageURL      string    `json:"imageUrl"`
	Amenities     string    `json:"amenities"` // comma separated
	Status        string    `json:"status" gorm:"type:varchar(20);default:'ACTIVE';index"`
	Bookings      []Booking `json:"bookings,omitempty" gorm:"foreignKey:PropertyID"`
	Reviews       []Review  `json:"reviews,omitempty" gorm:"foreignKey:PropertyID"`
}

// Custom JSON marshaling to avoid serializing an empty owner and the
// owner -> properties circular reference
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Owner *Owner `json:"owner,omitempty"`
		*Alias
	}{
		Owner: nil,
		Alias: (*Alias)(p),
	}

	// Only include owner if it has an ID (is loaded)
	if p.Owner.ID > 0 {
		ownerCopy := p.Owner
		ownerCopy.Properties = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}
