package repository

import (
	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
)

// PaymentRepository appends and lists the immutable charge ledger.
type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Append(tx *gorm.DB, rec *entity.PaymentHistory) error {
	return tx.Create(rec).Error
}

func (r *PaymentRepository) ListAll() ([]entity.PaymentHistory, error) {
	var records []entity.PaymentHistory
	err := r.DB.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *PaymentRepository) CountForRide(rideID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.PaymentHistory{}).Where("ride_id = ?", rideID).Count(&count).Error
	return count, err
}
