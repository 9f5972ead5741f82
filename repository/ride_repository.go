package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
)

type RideRepository struct {
	DB *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{DB: db}
}

// ---------------- Rides (CRUD หลัก) ----------------

func (r *RideRepository) Create(tx *gorm.DB, ride *entity.Ride) error {
	return tx.Create(ride).Error
}

func (r *RideRepository) GetByID(rideID uint) (*entity.Ride, error) {
	var ride entity.Ride
	if err := r.DB.First(&ride, rideID).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// GetCurrentForUser: rider sees their own active ride.
func (r *RideRepository) GetCurrentForUser(userID uint) (*entity.Ride, error) {
	var ride entity.Ride
	err := r.DB.
		Where("user_id = ? AND status IN ?", userID,
			[]string{entity.RideRequested, entity.RideAccepted, entity.RideInProgress}).
		First(&ride).Error
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// GetCurrentForDriver: the driver's assigned active ride, or failing that
// any open request they could pick up.
func (r *RideRepository) GetCurrentForDriver(driverID uint) (*entity.Ride, error) {
	var ride entity.Ride
	err := r.DB.
		Where("driver_id = ? AND status IN ?", driverID,
			[]string{entity.RideAccepted, entity.RideInProgress}).
		Or("status = ?", entity.RideRequested).
		First(&ride).Error
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *RideRepository) ListAll() ([]entity.Ride, error) {
	var rides []entity.Ride
	err := r.DB.Order("created_at DESC").Find(&rides).Error
	return rides, err
}

func (r *RideRepository) ListRequested() ([]entity.Ride, error) {
	var rides []entity.Ride
	err := r.DB.
		Where("status = ?", entity.RideRequested).
		Order("created_at DESC").
		Find(&rides).Error
	return rides, err
}

// ListHistory: paginated, newest first, filtered by role. Admin gets
// everything.
func (r *RideRepository) ListHistory(userID uint, role string, page, limit int) ([]entity.Ride, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Ride{})
	switch role {
	case entity.RoleUser:
		q = q.Where("user_id = ?", userID)
	case entity.RoleDriver:
		q = q.Where("driver_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rides []entity.Ride
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rides).Error; err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// ---------------- Guarded transitions ----------------
//
// Every status change is a conditional write; zero rows affected means the
// guard did not hold (already transitioned, wrong owner, ...). There is no
// generic update-by-id on purpose.

// ClaimForDriver moves requested → accepted and sets the driver in the same
// statement, so only one of two racing drivers can win.
func (r *RideRepository) ClaimForDriver(tx *gorm.DB, rideID, driverID uint) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", rideID, entity.RideRequested).
		Updates(map[string]any{"status": entity.RideAccepted, "driver_id": driverID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CancelForUser moves a rider-owned requested/accepted ride to cancelled.
func (r *RideRepository) CancelForUser(tx *gorm.DB, rideID, userID uint) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND user_id = ? AND status IN ?", rideID, userID,
			[]string{entity.RideRequested, entity.RideAccepted}).
		Update("status", entity.RideCancelled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// StartForDriver moves the driver's accepted ride to in-progress.
func (r *RideRepository) StartForDriver(tx *gorm.DB, rideID, driverID uint) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND driver_id = ? AND status = ?", rideID, driverID, entity.RideAccepted).
		Update("status", entity.RideInProgress)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CompleteForDriver moves the driver's in-progress ride to completed.
func (r *RideRepository) CompleteForDriver(tx *gorm.DB, rideID, driverID uint, at time.Time) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND driver_id = ? AND status = ?", rideID, driverID, entity.RideInProgress).
		Updates(map[string]any{"status": entity.RideCompleted, "completed_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ForceAssign is the admin escape hatch: overwrites driver and status with
// no guard on the current state.
func (r *RideRepository) ForceAssign(tx *gorm.DB, rideID, driverID uint) error {
	return tx.Model(&entity.Ride{}).
		Where("id = ?", rideID).
		Updates(map[string]any{"status": entity.RideAccepted, "driver_id": driverID}).Error
}

// MarkPaymentPending requires the ride to be accepted.
func (r *RideRepository) MarkPaymentPending(tx *gorm.DB, rideID uint) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND status = ?", rideID, entity.RideAccepted).
		Update("payment_status", entity.PaymentPending)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkPaymentCompleted closes the ride together with the payment; the
// pending guard makes a second confirm a no-op.
func (r *RideRepository) MarkPaymentCompleted(tx *gorm.DB, rideID uint, at time.Time) (bool, error) {
	res := tx.Model(&entity.Ride{}).
		Where("id = ? AND payment_status = ?", rideID, entity.PaymentPending).
		Updates(map[string]any{
			"payment_status": entity.PaymentCompleted,
			"status":         entity.RideCompleted,
			"completed_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
