// Package navigation narrows a session's rectangle level by level until a
// single point is resolved.
package navigation

import (
	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

// ResultKind is the outcome of applying one key
type ResultKind int

const (
	// Ignored means the key had no meaning here; state is unchanged
	Ignored ResultKind = iota
	// Narrowed means the session moved one level deeper
	Narrowed
	// Resolved means the last level selected a cell and its center is the target
	Resolved
	// Reset means the session returned to its initial state
	Reset
	// Backtracked means the session returned to the previous level
	Backtracked
)

func (k ResultKind) String() string {
	switch k {
	case Narrowed:
		return "narrowed"
	case Resolved:
		return "resolved"
	case Reset:
		return "reset"
	case Backtracked:
		return "backtracked"
	default:
		return "ignored"
	}
}

// Result describes a navigation step. Rect and Level are the new current
// rectangle and level; Point is only set for Resolved.
type Result struct {
	Kind  ResultKind
	Rect  domain.Rect
	Level int
	Point domain.Point
}

// Machine applies navigation keys to a session state it does not own
type Machine struct {
	cfg *grid.Config
}

// New creates a machine for a validated configuration
func New(cfg *grid.Config) *Machine {
	return &Machine{cfg: cfg}
}

// Apply consumes one key. st is only modified when the result is not Ignored.
func (m *Machine) Apply(st *domain.SessionState, key domain.KeySymbol) Result {
	if key == m.cfg.CancelKey {
		*st = m.cfg.InitialState()
		return Result{Kind: Reset, Rect: st.Rect}
	}

	if m.cfg.BackKey != "" && key == m.cfg.BackKey {
		return m.back(st)
	}

	if st.Mode != domain.ModeNavigating || st.Level < 0 || st.Level >= m.cfg.Depth() {
		return Result{Kind: Ignored}
	}

	level := m.cfg.Levels[st.Level]
	index, ok := level.Keys.IndexOf(key)
	if !ok {
		return Result{Kind: Ignored}
	}

	cell, err := grid.CellAt(st.Rect, level.Shape, index)
	if err != nil || !cell.Valid() {
		// the rectangle is already smaller than the grid
		return Result{Kind: Ignored}
	}

	st.History = append(st.History, st.Rect)
	st.Rect = cell

	if m.cfg.IsLastLevel(st.Level) {
		p := cell.Center()
		st.Mode = domain.ModeCell
		st.Point = &p
		return Result{Kind: Resolved, Rect: cell, Level: st.Level, Point: p}
	}

	st.Level++
	return Result{Kind: Narrowed, Rect: cell, Level: st.Level}
}

// back undoes the last narrowing step. From cell mode it returns to the
// last navigation level with the rectangle that was being split.
func (m *Machine) back(st *domain.SessionState) Result {
	if len(st.History) == 0 {
		return Result{Kind: Ignored}
	}

	prev := st.History[len(st.History)-1]
	st.History = st.History[:len(st.History)-1]
	if len(st.History) == 0 {
		st.History = nil
	}
	st.Rect = prev

	if st.Mode == domain.ModeCell {
		st.Mode = domain.ModeNavigating
		st.Point = nil
	} else {
		st.Level--
	}
	return Result{Kind: Backtracked, Rect: prev, Level: st.Level}
}

// Config returns the configuration the machine runs on
func (m *Machine) Config() *grid.Config {
	return m.cfg
}
