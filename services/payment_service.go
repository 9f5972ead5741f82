package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/payments"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
)

// PaymentService talks to the external gateway and keeps the ledger.
type PaymentService struct {
	DB      *gorm.DB
	Rides   *repository.RideRepository
	Ledger  *repository.PaymentRepository
	Gateway payments.Gateway
}

func NewPaymentService(
	db *gorm.DB,
	rides *repository.RideRepository,
	ledger *repository.PaymentRepository,
	gateway payments.Gateway,
) *PaymentService {
	return &PaymentService{DB: db, Rides: rides, Ledger: ledger, Gateway: gateway}
}

// Initiate opens a gateway intent for an accepted ride and marks its
// payment pending.
func (s *PaymentService) Initiate(ctx context.Context, rideID uint) (*payments.Intent, error) {
	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return nil, ErrRideNotFound
	}
	if ride.Status != entity.RideAccepted {
		return nil, ErrRideNotAccepted
	}

	intent, err := s.Gateway.CreateIntent(ctx, ride.UserID, ride.Fare)
	if err != nil {
		return nil, err
	}

	if _, err := s.Rides.MarkPaymentPending(s.DB, rideID); err != nil {
		return nil, err
	}
	return intent, nil
}

// Confirm settles a pending payment: gateway confirmation, then close the
// ride and append exactly one ledger record. The pending guard makes a
// second confirm fail instead of double-charging.
func (s *PaymentService) Confirm(ctx context.Context, intentID string, rideID uint) (*entity.Ride, error) {
	ride, err := s.Rides.GetByID(rideID)
	if err != nil {
		return nil, ErrRideNotFound
	}
	if ride.PaymentStatus != entity.PaymentPending {
		return nil, ErrPaymentNotPending
	}
	if ride.DriverID == nil {
		// nothing to settle until a driver took the ride
		return nil, ErrRideNotAccepted
	}

	if err := s.Gateway.ConfirmIntent(ctx, intentID); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Rides.MarkPaymentCompleted(tx, rideID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrPaymentNotPending
		}
		return s.Ledger.Append(tx, &entity.PaymentHistory{
			RideID:        ride.ID,
			UserID:        ride.UserID,
			DriverID:      *ride.DriverID,
			Amount:        ride.Fare,
			PaymentMethod: ride.PaymentMethod,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Rides.GetByID(rideID)
}

// History is admin-only at the route layer; newest first.
func (s *PaymentService) History() ([]entity.PaymentHistory, error) {
	return s.Ledger.ListAll()
}
