package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/routing"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
)

// RideService is the lifecycle engine. Every status change goes through a
// guarded transition in ride_transitions.go; this file holds booking and
// the read paths.
type RideService struct {
	DB        *gorm.DB
	Rides     *repository.RideRepository
	Users     *repository.UserRepository
	Estimator routing.Estimator
	Notifier  Notifier
}

func NewRideService(
	db *gorm.DB,
	rides *repository.RideRepository,
	users *repository.UserRepository,
	estimator routing.Estimator,
	notifier Notifier,
) *RideService {
	return &RideService{
		DB:        db,
		Rides:     rides,
		Users:     users,
		Estimator: estimator,
		Notifier:  notifier,
	}
}

type BookInput struct {
	UserID        uint
	Pickup        string
	Dropoff       string
	PaymentMethod string
	DriverID      *uint // optional: rider picked a driver up front
}

// Book estimates the route once, creates the ride, and fans out the request
// to available drivers. When the rider picked a driver the ride is created
// accepted and that driver is taken off the street immediately.
func (s *RideService) Book(ctx context.Context, in BookInput) (*entity.Ride, error) {
	est, err := s.Estimator.Estimate(ctx, in.Pickup, in.Dropoff)
	if err != nil {
		return nil, err
	}

	ride := &entity.Ride{
		UserID: in.UserID,
		Pickup: entity.Location{
			Address: in.Pickup,
			Lat:     est.Pickup.Lat,
			Lng:     est.Pickup.Lng,
		},
		Dropoff: entity.Location{
			Address: in.Dropoff,
			Lat:     est.Dropoff.Lat,
			Lng:     est.Dropoff.Lng,
		},
		Status:        entity.RideRequested,
		PaymentMethod: in.PaymentMethod,
		Distance:      est.DistanceKm,
		Duration:      est.DurationMin,
		Fare:          est.Fare,
	}

	if in.DriverID != nil {
		driver, err := s.Users.FindByID(*in.DriverID)
		if err != nil || driver.Role != entity.RoleDriver {
			return nil, ErrInvalidDriver
		}
		ride.DriverID = in.DriverID
		ride.Status = entity.RideAccepted
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Rides.Create(tx, ride); err != nil {
			return err
		}
		if ride.DriverID != nil {
			return s.Users.SetAvailability(tx, *ride.DriverID, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ride.DriverID != nil {
		s.Notifier.Publish(*ride.DriverID, EventRideAssigned, ride)
	} else {
		drivers, err := s.Users.ListAvailableDrivers()
		if err == nil {
			for _, d := range drivers {
				s.Notifier.Publish(d.ID, EventNewRideRequest, ride)
			}
		}
	}

	return ride, nil
}

// CurrentRideDetail augments the active ride with realtime estimates.
type CurrentRideDetail struct {
	*entity.Ride
	Eta               *time.Time `json:"eta"`
	RemainingDistance float64    `json:"remainingDistance"`
	RemainingDuration int        `json:"remainingDuration"`
}

// GetCurrent returns the caller's active ride with an ETA once accepted.
func (s *RideService) GetCurrent(userID uint, role string) (*CurrentRideDetail, error) {
	var ride *entity.Ride
	var err error
	if role == entity.RoleDriver {
		ride, err = s.Rides.GetCurrentForDriver(userID)
	} else {
		ride, err = s.Rides.GetCurrentForUser(userID)
	}
	if err != nil {
		return nil, ErrNoActiveRide
	}

	detail := &CurrentRideDetail{
		Ride:              ride,
		RemainingDistance: ride.Distance,
		RemainingDuration: ride.Duration,
	}
	if ride.Status == entity.RideAccepted {
		eta := time.Now().Add(time.Duration(ride.Duration) * time.Minute)
		detail.Eta = &eta
	}
	return detail, nil
}

// GetCurrentForDriver: the driver's assigned active ride, or any open
// request.
func (s *RideService) GetCurrentForDriver(driverID uint) (*entity.Ride, error) {
	ride, err := s.Rides.GetCurrentForDriver(driverID)
	if err != nil {
		return nil, ErrNoActiveRide
	}
	return ride, nil
}

func (s *RideService) ListAvailable() ([]entity.Ride, error) {
	return s.Rides.ListRequested()
}

func (s *RideService) ListAll() ([]entity.Ride, error) {
	return s.Rides.ListAll()
}

type HistoryPage struct {
	Rides       []entity.Ride `json:"rides"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalRides  int64         `json:"totalRides"`
}

func (s *RideService) History(userID uint, role string, page, limit int) (*HistoryPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rides, total, err := s.Rides.ListHistory(userID, role, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &HistoryPage{
		Rides:       rides,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalRides:  total,
	}, nil
}
