package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ChangeTypeCreate = "CREATE"
	ChangeTypeUpdate = "UPDATE"

	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// ChangeRequest is an owner-submitted proposal to create or mutate a
// property, moderated by an admin. The payload is stored as submitted and is
// only validated when an approval applies it.
type ChangeRequest struct {
	gorm.Model
	PropertyID uint           `json:"propertyID" gorm:"not null;index"`
	Property   Property       `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	OwnerID    uint           `json:"ownerID" gorm:"not null;index"`
	Owner      Owner          `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	ChangeType string         `json:"changeType" gorm:"type:varchar(20);not null"`
	Status     string         `json:"status" gorm:"type:varchar(20);not null;index"`
	Payload    datatypes.JSON `json:"payload" gorm:"type:jsonb"`
}
