// Package actions turns cell-mode keys into pointer commands.
package actions

import (
	"errors"
	"fmt"

	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
	"gridkeys/internal/pointer"
)

// ErrDispatchFailed matches every DispatchError
var ErrDispatchFailed = errors.New("pointer dispatch failed")

// DispatchError reports a command the pointer surface rejected
type DispatchError struct {
	Command pointer.Command
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDispatchFailed, e.Command, e.Err)
}

func (e *DispatchError) Unwrap() []error {
	return []error{ErrDispatchFailed, e.Err}
}

// ResultKind is the outcome of a cell-mode key
type ResultKind int

const (
	Ignored ResultKind = iota
	Dispatched
	Reset
)

func (k ResultKind) String() string {
	switch k {
	case Dispatched:
		return "dispatched"
	case Reset:
		return "reset"
	default:
		return "ignored"
	}
}

// Result describes what a cell-mode key did. Ended is set when a click
// finished the session and the state went back to the initial level.
type Result struct {
	Kind    ResultKind
	Action  domain.Action
	Command pointer.Command
	Ended   bool
}

// Executor maps cell-mode bindings to pointer commands
type Executor struct {
	cfg     *grid.Config
	pointer pointer.Pointer
}

// NewExecutor creates an executor issuing commands through p
func NewExecutor(cfg *grid.Config, p pointer.Pointer) *Executor {
	return &Executor{cfg: cfg, pointer: p}
}

// Apply handles one key while in cell mode. On error st is left untouched.
func (e *Executor) Apply(st *domain.SessionState, key domain.KeySymbol) (Result, error) {
	if st.Mode != domain.ModeCell || st.Point == nil {
		return Result{Kind: Ignored}, nil
	}

	if key == e.cfg.CancelKey {
		*st = e.cfg.InitialState()
		return Result{Kind: Reset, Action: domain.Action{Kind: domain.ActionCancel}}, nil
	}

	action, ok := e.cfg.Binding(key)
	if !ok {
		return Result{Kind: Ignored}, nil
	}

	switch action.Kind {
	case domain.ActionCancel:
		*st = e.cfg.InitialState()
		return Result{Kind: Reset, Action: action}, nil

	case domain.ActionClick:
		return e.click(st, action, pointer.Command{Kind: pointer.CommandClick, Button: action.Button})

	case domain.ActionDoubleClick:
		return e.click(st, action, pointer.Command{Kind: pointer.CommandDoubleClick, Button: action.Button})

	case domain.ActionMove:
		return e.move(st, action)

	case domain.ActionScroll:
		cmd := pointer.Command{Kind: pointer.CommandScroll, Direction: action.Direction, Amount: action.Amount}
		if err := e.send(cmd); err != nil {
			return Result{}, err
		}
		return Result{Kind: Dispatched, Action: action, Command: cmd}, nil

	case domain.ActionDrag:
		return e.drag(st, action)
	}

	return Result{Kind: Ignored}, nil
}

// click sends cmd. While a drag holds a button the click is the drop
// instead: the held button is released and no click is sent.
func (e *Executor) click(st *domain.SessionState, action domain.Action, cmd pointer.Command) (Result, error) {
	if st.Dragging {
		return e.drop(st, action)
	}
	if err := e.send(cmd); err != nil {
		return Result{}, err
	}
	res := Result{Kind: Dispatched, Action: action, Command: cmd}
	if e.cfg.ResetAfterClick && !action.Stay {
		*st = e.cfg.InitialState()
		res.Ended = true
	}
	return res, nil
}

// move nudges the resolved point, staying inside the configured bounds
func (e *Executor) move(st *domain.SessionState, action domain.Action) (Result, error) {
	dx, dy := action.Direction.Delta(action.Amount)
	target := e.cfg.Bounds.Clamp(domain.Point{X: st.Point.X + dx, Y: st.Point.Y + dy})
	cmd := pointer.Command{Kind: pointer.CommandMoveRelative, DX: target.X - st.Point.X, DY: target.Y - st.Point.Y}
	if cmd.DX == 0 && cmd.DY == 0 {
		return Result{Kind: Ignored}, nil
	}

	if err := e.send(cmd); err != nil {
		return Result{}, err
	}
	*st.Point = target
	return Result{Kind: Dispatched, Action: action, Command: cmd}, nil
}

// drag presses the button and sends the user back to navigate to the drop
// point; the second drag releases it there
func (e *Executor) drag(st *domain.SessionState, action domain.Action) (Result, error) {
	if !st.Dragging {
		cmd := pointer.Command{Kind: pointer.CommandPress, Button: action.Button}
		if err := e.send(cmd); err != nil {
			return Result{}, err
		}
		*st = e.cfg.InitialState()
		st.Dragging = true
		st.DragButton = action.Button
		return Result{Kind: Dispatched, Action: action, Command: cmd}, nil
	}
	return e.drop(st, action)
}

// drop releases the button held by a drag at the current point
func (e *Executor) drop(st *domain.SessionState, action domain.Action) (Result, error) {
	cmd := pointer.Command{Kind: pointer.CommandRelease, Button: st.DragButton}
	if err := e.send(cmd); err != nil {
		return Result{}, err
	}
	st.Dragging = false
	st.DragButton = domain.ButtonLeft
	res := Result{Kind: Dispatched, Action: action, Command: cmd}
	if e.cfg.ResetAfterClick && !action.Stay {
		*st = e.cfg.InitialState()
		res.Ended = true
	}
	return res, nil
}

func (e *Executor) send(cmd pointer.Command) error {
	if err := pointer.Send(e.pointer, cmd); err != nil {
		return &DispatchError{Command: cmd, Err: err}
	}
	return nil
}
