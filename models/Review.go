package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID     uint        `json:"userID" gorm:"not null;index"`
	User       RegularUser `json:"user" gorm:"foreignKey:UserID;references:ID"`
	PropertyID uint        `json:"propertyID" gorm:"not null;index"`
	Property   Property    `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	Stars      int         `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Body       string      `json:"body" gorm:"type:text"`
}
