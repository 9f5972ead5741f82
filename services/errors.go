package services

import "errors"

// Sentinel errors the controllers map onto HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLicenseRequired    = errors.New("license number is required for drivers")
	ErrInvalidRole        = errors.New("invalid role")

	ErrRideNotFound      = errors.New("ride not found")
	ErrNoActiveRide      = errors.New("no active ride found")
	ErrRideNotAvailable  = errors.New("ride not available for acceptance")
	ErrDriverUnavailable = errors.New("driver is not available")
	ErrInvalidDriver     = errors.New("invalid driver")
	ErrInvalidTransition = errors.New("ride is not in a valid state for this action")

	ErrPaymentNotPending = errors.New("no pending payment for this ride")
	ErrRideNotAccepted   = errors.New("ride is not in accepted state")
)
