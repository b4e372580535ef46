package models

import "gorm.io/gorm"

type Owner struct {
	gorm.Model
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"`
	PhoneNumber string     `json:"phoneNumber"`
	Verified    bool       `json:"verified" gorm:"default:false"`
	Properties  []Property `json:"properties,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
