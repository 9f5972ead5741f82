package services

import (
	"errors"
	"testing"
	"time"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := setupDB(t)
	repo := repository.NewUserRepository(db)
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func TestRegisterUser(t *testing.T) {
	svc, _ := newAuthService(t)

	token, user, err := svc.Register(RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
		Role:     entity.RoleUser,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Errorf("register should issue a token")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.IsAvailable {
		t.Errorf("riders are never available")
	}
	if user.LicenseNumber != "" {
		t.Errorf("riders carry no license, got %q", user.LicenseNumber)
	}
	if user.Password == "secret123" {
		t.Errorf("password stored in plaintext")
	}
}

func TestRegisterDriverRequiresLicense(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register(RegisterInput{
		Name:     "Dave",
		Email:    "dave@example.com",
		Password: "secret123",
		Role:     entity.RoleDriver,
	})
	if !errors.Is(err, ErrLicenseRequired) {
		t.Fatalf("err = %v, want ErrLicenseRequired", err)
	}

	_, driver, err := svc.Register(RegisterInput{
		Name:          "Dave",
		Email:         "dave@example.com",
		Password:      "secret123",
		Role:          entity.RoleDriver,
		LicenseNumber: "X123",
		VehicleDetails: entity.VehicleDetails{
			Make: "Honda", Model: "City", Year: 2019, PlateNumber: "KA-02",
		},
	})
	if err != nil {
		t.Fatalf("register driver: %v", err)
	}
	if !driver.IsAvailable {
		t.Errorf("new drivers start available")
	}
	if driver.LicenseNumber != "X123" {
		t.Errorf("license not stored: %q", driver.LicenseNumber)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register(RegisterInput{
		Name:     "Mallory",
		Email:    "m@example.com",
		Password: "secret123",
		Role:     entity.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	in := RegisterInput{Name: "Alice", Email: "a@example.com", Password: "secret123"}
	if _, _, err := svc.Register(in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginUniformError(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, _, err := svc.Register(RegisterInput{
		Name: "Alice", Email: "a@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// wrong password and unknown email must be indistinguishable
	_, _, errWrongPass := svc.Login("a@example.com", "nope")
	_, _, errNoUser := svc.Login("ghost@example.com", "nope")
	if !errors.Is(errWrongPass, ErrInvalidCredentials) || !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials, got %v / %v", errWrongPass, errNoUser)
	}

	token, user, err := svc.Login("A@Example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user.Email != "a@example.com" {
		t.Errorf("login should return token and user")
	}
}
