package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
	"github.com/tapan2502/Ride-Sharing-Assingement/utils"
)

// AuthService owns register/login/profile.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	PhoneNumber    string
	LicenseNumber  string
	VehicleDetails entity.VehicleDetails
}

// Register creates an account and returns a fresh token. Drivers must carry
// a license number and start out available; everyone else never does.
func (s *AuthService) Register(in RegisterInput) (string, *entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleDriver {
		return "", nil, ErrInvalidRole
	}
	if role == entity.RoleDriver && strings.TrimSpace(in.LicenseNumber) == "" {
		return "", nil, ErrLicenseRequired
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &entity.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Password:    string(hashed),
		Role:        role,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		IsAvailable: role == entity.RoleDriver,
	}
	if role == entity.RoleDriver {
		user.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
		user.VehicleDetails = in.VehicleDetails
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login answers with the same error for unknown email and wrong password.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
