package services

import (
	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
)

// DriverService covers driver discovery and the manual availability toggle;
// transition-driven toggles live in RideService.
type DriverService struct {
	userRepo *repository.UserRepository
}

func NewDriverService(userRepo *repository.UserRepository) *DriverService {
	return &DriverService{userRepo: userRepo}
}

// ListAvailable returns every available driver; an empty list is a valid
// answer, not an error.
func (s *DriverService) ListAvailable() ([]repository.DriverSummary, error) {
	return s.userRepo.ListAvailableDrivers()
}

// SetAvailability is the driver's own toggle.
func (s *DriverService) SetAvailability(driverID uint, available bool) (*entity.User, error) {
	if err := s.userRepo.SetAvailability(s.userRepo.DB, driverID, available); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(driverID)
}
