package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"gridkeys/internal/eventbus"
	"gridkeys/internal/grid"
)

// Forward subscribes to the bus and hands every event the overlay cares
// about to send as a tea message. send is usually (*tea.Program).Send.
// The returned function removes the subscriptions.
func Forward(bus eventbus.EventBus, send func(tea.Msg)) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventStateChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.StateChangedEvent); ok {
				send(StateMsg{State: ev.State})
			}
		}),
		bus.Subscribe(eventbus.EventPointerDispatched, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.PointerDispatchedEvent); ok {
				send(DispatchedMsg{Key: ev.Key, Command: ev.Command})
			}
		}),
		bus.Subscribe(eventbus.EventDispatchFailed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.DispatchFailedEvent); ok {
				send(DispatchFailedMsg{Key: ev.Key, Err: ev.Err})
			}
		}),
		bus.Subscribe(eventbus.EventConfigReloaded, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.ConfigReloadedEvent)
			if !ok {
				return
			}
			cfg, ok := ev.Config.(*grid.Config)
			if !ok {
				log.Printf("ui: reload event for %s without a grid config", ev.Path)
				return
			}
			send(ConfigReloadedMsg{Path: ev.Path, Config: cfg})
		}),
		bus.Subscribe(eventbus.EventConfigRejected, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigRejectedEvent); ok {
				send(ConfigRejectedMsg{Path: ev.Path, Err: ev.Err})
			}
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
