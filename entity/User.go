package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser   = "user"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

type VehicleDetails struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plateNumber"`
}

type User struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	Role        string `gorm:"not null;default:user" json:"role"`
	PhoneNumber string `json:"phoneNumber"`

	// driver-only fields
	LicenseNumber  string         `json:"licenseNumber,omitempty"`
	VehicleDetails VehicleDetails `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicleDetails"`
	IsAvailable    bool           `json:"isAvailable"`

	Rating float64 `json:"rating"`

	// preload เฉพาะตอนจำเป็น
	Rides       []Ride           `gorm:"foreignKey:UserID" json:"-"`
	DrivenRides []Ride           `gorm:"foreignKey:DriverID" json:"-"`
	Payments    []PaymentHistory `gorm:"foreignKey:UserID" json:"-"`
}
