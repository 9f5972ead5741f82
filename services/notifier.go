package services

// Lifecycle events pushed to connected clients.
const (
	EventNewRideRequest = "newRideRequest"
	EventRideAssigned   = "rideAssigned"
	EventRideAccepted   = "rideAccepted"
	EventRideCancelled  = "rideCancelled"
)

// Notifier delivers an event to one account's channel. Delivery is
// best-effort: a recipient that is not connected is simply skipped, and
// Publish never fails the calling operation.
type Notifier interface {
	Publish(userID uint, event string, payload any)
}

// NopNotifier is used when no realtime channel is wired (tests, tooling).
type NopNotifier struct{}

func (NopNotifier) Publish(uint, string, any) {}
