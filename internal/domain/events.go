package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventStateChanged      EventType = "StateChanged"
	EventPointerDispatched EventType = "PointerDispatched"
	EventDispatchFailed    EventType = "DispatchFailed"
	EventConfigReloaded    EventType = "ConfigReloaded"
	EventConfigRejected    EventType = "ConfigRejected"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StateChangedEvent is emitted after every session transition, including resets
type StateChangedEvent struct {
	SessionID string
	State     SessionState
}

func (e StateChangedEvent) Type() EventType { return EventStateChanged }

// PointerDispatchedEvent is emitted after a pointer command succeeded
type PointerDispatchedEvent struct {
	SessionID string
	Key       KeySymbol
	Command   string
}

func (e PointerDispatchedEvent) Type() EventType { return EventPointerDispatched }

// DispatchFailedEvent is emitted when the pointer surface rejected a command
type DispatchFailedEvent struct {
	SessionID string
	Key       KeySymbol
	Err       error
}

func (e DispatchFailedEvent) Type() EventType { return EventDispatchFailed }

// ConfigReloadedEvent is emitted when a changed config file validated successfully.
// Config holds the new grid configuration as an opaque value to keep domain free
// of the grid package.
type ConfigReloadedEvent struct {
	Path   string
	Config interface{}
}

func (e ConfigReloadedEvent) Type() EventType { return EventConfigReloaded }

// ConfigRejectedEvent is emitted when a changed config file failed validation
type ConfigRejectedEvent struct {
	Path string
	Err  error
}

func (e ConfigRejectedEvent) Type() EventType { return EventConfigRejected }
