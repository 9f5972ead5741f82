package repository

import (
	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
)

// UserRepository owns every query against the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DriverSummary is what riders see when choosing a driver.
type DriverSummary struct {
	ID             uint                  `json:"id"`
	Name           string                `json:"name"`
	Rating         float64               `json:"rating"`
	VehicleDetails entity.VehicleDetails `json:"vehicleDetails"`
}

func (r *UserRepository) ListAvailableDrivers() ([]DriverSummary, error) {
	var drivers []entity.User
	err := r.DB.
		Where("role = ? AND is_available = ?", entity.RoleDriver, true).
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}

	out := make([]DriverSummary, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, DriverSummary{
			ID:             d.ID,
			Name:           d.Name,
			Rating:         d.Rating,
			VehicleDetails: d.VehicleDetails,
		})
	}
	return out, nil
}

// SetAvailability updates the flag unconditionally (manual toggle, cancel,
// complete).
func (r *UserRepository) SetAvailability(tx *gorm.DB, driverID uint, available bool) error {
	return tx.Model(&entity.User{}).
		Where("id = ? AND role = ?", driverID, entity.RoleDriver).
		Update("is_available", available).Error
}

// ClaimDriver flips an available driver to unavailable. Zero rows affected
// means the driver was already taken; the conditional write is what keeps
// two concurrent accepts from both winning.
func (r *UserRepository) ClaimDriver(tx *gorm.DB, driverID uint) (bool, error) {
	res := tx.Model(&entity.User{}).
		Where("id = ? AND role = ? AND is_available = ?", driverID, entity.RoleDriver, true).
		Update("is_available", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
