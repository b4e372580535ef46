package models

import "gorm.io/gorm"

// RegularUser is a tenant-side account ("client" role).
type RegularUser struct {
	gorm.Model
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    string `json:"-"`
	PhoneNumber string `json:"phoneNumber"`
}
