package services

import "errors"

// Errors shared across services. Handlers map these onto HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")
)

// Notifier abstracts the realtime hub so services can emit domain events
// without owning the transport. Satisfied by *realtime.Hub.
type Notifier interface {
	Broadcast(restaurantID, event string, payload interface{})
}

// noopNotifier is used when a service is constructed without a hub, e.g. in tests.
type noopNotifier struct{}

func (noopNotifier) Broadcast(string, string, interface{}) {}

// NewNoopNotifier returns a Notifier that discards every event.
func NewNoopNotifier() Notifier { return noopNotifier{} }
