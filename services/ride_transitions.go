package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
)

// Guarded transitions. Each one runs in a transaction and relies on
// conditional updates; zero rows affected means another request won the
// race or the guard did not hold.

// AcceptedRideDetail carries the driver's contact for the rider's
// rideAccepted event.
type AcceptedRideDetail struct {
	Ride   *entity.Ride `json:"ride"`
	Driver struct {
		Name           string                `json:"name"`
		Phone          string                `json:"phone"`
		VehicleDetails entity.VehicleDetails `json:"vehicleDetails"`
	} `json:"driver"`
}

// Accept: requested → accepted, driver goes unavailable, rider is notified
// with the driver's contact.
func (s *RideService) Accept(rideID, driverID uint) (*entity.Ride, error) {
	driver, err := s.Users.FindByID(driverID)
	if err != nil || driver.Role != entity.RoleDriver {
		return nil, ErrInvalidDriver
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Rides.ClaimForDriver(tx, rideID, driverID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRideNotAvailable
		}

		// กันซ้ำ: a driver already on a ride cannot take a second one
		ok, err = s.Users.ClaimDriver(tx, driverID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDriverUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return nil, err
	}

	detail := AcceptedRideDetail{Ride: ride}
	detail.Driver.Name = driver.Name
	detail.Driver.Phone = driver.PhoneNumber
	detail.Driver.VehicleDetails = driver.VehicleDetails
	s.Notifier.Publish(ride.UserID, EventRideAccepted, detail)

	return ride, nil
}

// Cancel: requested/accepted → cancelled, rider-only. An assigned driver is
// released and notified; a ride with no driver cancels silently.
func (s *RideService) Cancel(rideID, userID uint) error {
	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return ErrNoActiveRide
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Rides.CancelForUser(tx, rideID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoActiveRide
		}
		if ride.DriverID != nil {
			return s.Users.SetAvailability(tx, *ride.DriverID, true)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ride.DriverID != nil {
		s.Notifier.Publish(*ride.DriverID, EventRideCancelled, ride)
	}
	return nil
}

// Start: accepted → in-progress, by the assigned driver.
func (s *RideService) Start(rideID, driverID uint) (*entity.Ride, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Rides.StartForDriver(tx, rideID, driverID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Rides.GetByID(rideID)
}

// Complete: in-progress → completed, by the assigned driver, who becomes
// available again.
func (s *RideService) Complete(rideID, driverID uint) (*entity.Ride, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Rides.CompleteForDriver(tx, rideID, driverID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return s.Users.SetAvailability(tx, driverID, true)
	})
	if err != nil {
		return nil, err
	}
	return s.Rides.GetByID(rideID)
}

// AdminAssign overwrites the driver and forces accepted, whatever the
// current state. The previously assigned driver (if any) is released so
// they are not left stuck unavailable.
func (s *RideService) AdminAssign(rideID, driverID uint) (*entity.Ride, error) {
	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return nil, ErrRideNotFound
	}

	driver, err := s.Users.FindByID(driverID)
	if err != nil || driver.Role != entity.RoleDriver {
		return nil, ErrInvalidDriver
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if ride.DriverID != nil && *ride.DriverID != driverID {
			if err := s.Users.SetAvailability(tx, *ride.DriverID, true); err != nil {
				return err
			}
		}
		if err := s.Rides.ForceAssign(tx, rideID, driverID); err != nil {
			return err
		}
		return s.Users.SetAvailability(tx, driverID, false)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Rides.GetByID(rideID)
	if err != nil {
		return nil, err
	}
	s.Notifier.Publish(driverID, EventRideAssigned, updated)
	return updated, nil
}
