// Package session binds key events to navigation and pointer actions and
// owns the single session state.
package session

import (
	"log"

	"github.com/google/uuid"

	"gridkeys/internal/actions"
	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
	"gridkeys/internal/navigation"
	"gridkeys/internal/pointer"
)

// Observer is notified after state transitions and pointer dispatches.
// Implementations must not block; the controller calls them inline.
type Observer interface {
	OnStateChanged(sessionID string, st domain.SessionState)
	OnDispatched(sessionID string, key domain.KeySymbol, cmd pointer.Command)
	OnDispatchFailed(sessionID string, key domain.KeySymbol, err error)
}

// Outcome reports what one key did. Exactly one of Nav or Action is
// meaningful, depending on the mode the session was in. Command is the
// pointer command issued, if any.
type Outcome struct {
	Key     domain.KeySymbol
	Nav     navigation.Result
	Action  actions.Result
	Command *pointer.Command
	Changed bool
	Ended   bool
}

// Controller owns the session state. It is not safe for concurrent use;
// key events are expected one at a time from a single loop.
type Controller struct {
	id       string
	cfg      *grid.Config
	nav      *navigation.Machine
	exec     *actions.Executor
	pointer  pointer.Pointer
	observer Observer
	state    domain.SessionState
}

// New creates a controller in the initial state. observer may be nil.
func New(cfg *grid.Config, p pointer.Pointer, observer Observer) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		pointer:  p,
		observer: observer,
	}
	c.configure(cfg)
	log.Printf("session %s: started over %s with %d levels", c.id, cfg.Bounds, cfg.Depth())
	return c
}

func (c *Controller) configure(cfg *grid.Config) {
	c.cfg = cfg
	c.nav = navigation.New(cfg)
	c.exec = actions.NewExecutor(cfg, c.pointer)
	c.state = cfg.InitialState()
}

// ID returns the session identifier used in logs and events
func (c *Controller) ID() string {
	return c.id
}

// Config returns the active configuration
func (c *Controller) Config() *grid.Config {
	return c.cfg
}

// State returns a copy of the current session state
func (c *Controller) State() domain.SessionState {
	return c.state.Clone()
}

// HandleKey applies one key event. The state either fully transitions or,
// when an error is returned, stays exactly as it was.
func (c *Controller) HandleKey(key domain.KeySymbol) (Outcome, error) {
	out := Outcome{Key: key}

	if c.isCancel(key) {
		c.releaseDrag(key)
	}

	next := c.state.Clone()

	if next.Mode == domain.ModeNavigating || (c.cfg.BackKey != "" && key == c.cfg.BackKey) {
		res := c.nav.Apply(&next, key)
		out.Nav = res
		if res.Kind == navigation.Ignored {
			return out, nil
		}
		if res.Kind == navigation.Resolved {
			cmd := pointer.Command{Kind: pointer.CommandMoveAbsolute, Point: res.Point}
			if err := pointer.Send(c.pointer, cmd); err != nil {
				derr := &actions.DispatchError{Command: cmd, Err: err}
				c.failed(key, derr)
				return out, derr
			}
			out.Command = &cmd
		}
	} else {
		res, err := c.exec.Apply(&next, key)
		if err != nil {
			c.failed(key, err)
			return out, err
		}
		out.Action = res
		if res.Kind == actions.Ignored {
			return out, nil
		}
		if res.Kind == actions.Dispatched {
			cmd := res.Command
			out.Command = &cmd
		}
		out.Ended = res.Ended
	}

	c.state = next
	out.Changed = true

	if out.Command != nil {
		log.Printf("session %s: key %q -> %s", c.id, key, out.Command)
		if c.observer != nil {
			c.observer.OnDispatched(c.id, key, *out.Command)
		}
	}
	c.notify()
	return out, nil
}

// Reset returns to the initial state as if the cancel key had been pressed
func (c *Controller) Reset() {
	c.releaseDrag(c.cfg.CancelKey)
	c.state = c.cfg.InitialState()
	c.notify()
}

// Reconfigure swaps the configuration and resets the session. A config
// equal to the active one is ignored and false is returned. It must be
// called between key events, from the same loop that calls HandleKey.
func (c *Controller) Reconfigure(cfg *grid.Config) bool {
	if c.cfg.Equal(cfg) {
		log.Printf("session %s: config unchanged, keeping state", c.id)
		return false
	}
	c.releaseDrag(c.cfg.CancelKey)
	c.configure(cfg)
	log.Printf("session %s: reconfigured over %s with %d levels", c.id, cfg.Bounds, cfg.Depth())
	c.notify()
	return true
}

func (c *Controller) isCancel(key domain.KeySymbol) bool {
	if key == c.cfg.CancelKey {
		return true
	}
	if c.state.Mode != domain.ModeCell {
		return false
	}
	a, ok := c.cfg.Binding(key)
	return ok && a.Kind == domain.ActionCancel
}

// releaseDrag lets go of a held button before a reset. A failure is
// reported but does not stop the reset: cancel must always work.
func (c *Controller) releaseDrag(key domain.KeySymbol) {
	if !c.state.Dragging {
		return
	}
	cmd := pointer.Command{Kind: pointer.CommandRelease, Button: c.state.DragButton}
	if err := pointer.Send(c.pointer, cmd); err != nil {
		c.failed(key, &actions.DispatchError{Command: cmd, Err: err})
		return
	}
	log.Printf("session %s: released held %s button", c.id, c.state.DragButton)
	if c.observer != nil {
		c.observer.OnDispatched(c.id, key, cmd)
	}
}

func (c *Controller) failed(key domain.KeySymbol, err error) {
	log.Printf("session %s: key %q: %v", c.id, key, err)
	if c.observer != nil {
		c.observer.OnDispatchFailed(c.id, key, err)
	}
}

func (c *Controller) notify() {
	if c.observer != nil {
		c.observer.OnStateChanged(c.id, c.state.Clone())
	}
}
