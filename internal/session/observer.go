package session

import (
	"gridkeys/internal/domain"
	"gridkeys/internal/eventbus"
	"gridkeys/internal/pointer"
)

// BusObserver forwards controller notifications to the event bus. Publish
// never blocks, so redraws and logging cannot stall key handling.
type BusObserver struct {
	bus eventbus.EventBus
}

// NewBusObserver creates an observer publishing on bus
func NewBusObserver(bus eventbus.EventBus) *BusObserver {
	return &BusObserver{bus: bus}
}

func (o *BusObserver) OnStateChanged(sessionID string, st domain.SessionState) {
	o.bus.Publish(eventbus.StateChangedEvent{SessionID: sessionID, State: st})
}

func (o *BusObserver) OnDispatched(sessionID string, key domain.KeySymbol, cmd pointer.Command) {
	o.bus.Publish(eventbus.PointerDispatchedEvent{SessionID: sessionID, Key: key, Command: cmd.String()})
}

func (o *BusObserver) OnDispatchFailed(sessionID string, key domain.KeySymbol, err error) {
	o.bus.Publish(eventbus.DispatchFailedEvent{SessionID: sessionID, Key: key, Err: err})
}
