package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RideRequested  = "requested"
	RideAccepted   = "accepted"
	RideInProgress = "in-progress"
	RideCompleted  = "completed"
	RideCancelled  = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Ride struct {
	gorm.Model

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"` // preload เฉพาะตอนต้องการชื่อ/เบอร์ลูกค้า

	// DriverID ว่างจนกว่าจะมี driver รับงาน
	DriverID *uint `json:"driverId,omitempty"`
	Driver   *User `json:"-"`

	Pickup  Location `gorm:"embedded;embeddedPrefix:pickup_" json:"pickup"`
	Dropoff Location `gorm:"embedded;embeddedPrefix:dropoff_" json:"dropoff"`

	CurrentLat *float64 `json:"currentLat,omitempty"`
	CurrentLng *float64 `json:"currentLng,omitempty"`

	Status string `gorm:"not null;default:requested" json:"status"`

	Fare     float64 `gorm:"not null" json:"fare"`
	Distance float64 `gorm:"not null" json:"distance"` // km
	Duration int     `gorm:"not null" json:"duration"` // estimated minutes

	PaymentStatus string `gorm:"not null;default:pending" json:"paymentStatus"`
	PaymentMethod string `gorm:"not null" json:"paymentMethod"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
