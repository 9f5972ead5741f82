package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/routing"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Ride{}, &entity.PaymentHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeEstimator returns canned numbers without geocoding anything.
type fakeEstimator struct {
	EstimateFunc func(ctx context.Context, pickup, dropoff string) (*routing.Estimate, error)
}

func (f *fakeEstimator) Estimate(ctx context.Context, pickup, dropoff string) (*routing.Estimate, error) {
	if f.EstimateFunc != nil {
		return f.EstimateFunc(ctx, pickup, dropoff)
	}
	return &routing.Estimate{
		DistanceKm:  10,
		DurationMin: 15,
		Fare:        25,
		Pickup:      routing.Coordinates{Lat: 12.9, Lng: 77.5},
		Dropoff:     routing.Coordinates{Lat: 13.0, Lng: 77.6},
	}, nil
}

type publishedEvent struct {
	UserID  uint
	Event   string
	Payload any
}

// recordingNotifier captures events so tests can assert on delivery.
type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Publish(userID uint, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{UserID: userID, Event: event, Payload: payload})
}

func (n *recordingNotifier) eventsFor(userID uint) []publishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []publishedEvent
	for _, ev := range n.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out
}

func newRideService(t *testing.T, db *gorm.DB) (*RideService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	svc := NewRideService(
		db,
		repository.NewRideRepository(db),
		repository.NewUserRepository(db),
		&fakeEstimator{},
		notifier,
	)
	return svc, notifier
}

func createRider(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:     "Rider " + email,
		Email:    email,
		Password: "x",
		Role:     entity.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create rider: %v", err)
	}
	return u
}

func createDriver(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:          "Driver " + email,
		Email:         email,
		Password:      "x",
		Role:          entity.RoleDriver,
		PhoneNumber:   "555-0100",
		LicenseNumber: "X123",
		IsAvailable:   true,
		VehicleDetails: entity.VehicleDetails{
			Make: "Toyota", Model: "Prius", Year: 2020, PlateNumber: "KA-01",
		},
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return u
}

func reload(t *testing.T, db *gorm.DB, id uint) *entity.User {
	t.Helper()
	var u entity.User
	if err := db.First(&u, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &u
}

func reloadRide(t *testing.T, db *gorm.DB, id uint) *entity.Ride {
	t.Helper()
	var r entity.Ride
	if err := db.First(&r, id).Error; err != nil {
		t.Fatalf("reload ride %d: %v", id, err)
	}
	return &r
}
