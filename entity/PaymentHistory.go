package entity

import (
	"time"
)

// PaymentHistory เป็น append-only: สร้างครั้งเดียวตอน confirm payment
type PaymentHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RideID uint `gorm:"not null" json:"rideId"`
	Ride   Ride `json:"-"` // preload เฉพาะตอน admin ดูประวัติ

	UserID uint `gorm:"not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	DriverID uint `gorm:"not null" json:"driverId"`
	Driver   User `gorm:"foreignKey:DriverID" json:"-"`

	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMethod string  `gorm:"not null" json:"paymentMethod"`
}
