package domain

import "fmt"

// KeySymbol identifies a key as reported by the input source ("a", "esc", "space", "ctrl+h")
type KeySymbol string

// Point is an absolute screen position
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle in absolute screen coordinates
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Valid reports whether the rectangle has a positive area
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the rounded-down geometric center of r
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns Width*Height
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Clamp returns p moved to the nearest point inside r
func (r Rect) Clamp(p Point) Point {
	if p.X < r.X {
		p.X = r.X
	}
	if p.X > r.X+r.Width-1 {
		p.X = r.X + r.Width - 1
	}
	if p.Y < r.Y {
		p.Y = r.Y
	}
	if p.Y > r.Y+r.Height-1 {
		p.Y = r.Y + r.Height - 1
	}
	return p
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// GridShape is the number of rows and columns a rectangle is split into
type GridShape struct {
	Rows int
	Cols int
}

// Cells returns the number of cells in the shape
func (s GridShape) Cells() int {
	return s.Rows * s.Cols
}

func (s GridShape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Button is a pointer button
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Direction is used for pointer nudges and scrolling
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Delta returns the screen offset of moving step pixels in d.
// Screen y grows downwards.
func (d Direction) Delta(step int) (dx, dy int) {
	switch d {
	case DirectionUp:
		return 0, -step
	case DirectionDown:
		return 0, step
	case DirectionLeft:
		return -step, 0
	case DirectionRight:
		return step, 0
	}
	return 0, 0
}

// ActionKind selects what a cell-mode binding does
type ActionKind int

const (
	ActionClick ActionKind = iota
	ActionDoubleClick
	ActionDrag
	ActionMove
	ActionScroll
	ActionCancel
)

func (k ActionKind) String() string {
	switch k {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double_click"
	case ActionDrag:
		return "drag"
	case ActionMove:
		return "move"
	case ActionScroll:
		return "scroll"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is what a key does once a point has been resolved
type Action struct {
	Kind      ActionKind
	Button    Button    // click, double click, drag
	Direction Direction // move, scroll
	Amount    int       // pixels for move, wheel steps for scroll
	Stay      bool      // clicks only: keep cell mode even when clicks reset the session
}

// Describe returns a short human-readable description used in help output
func (a Action) Describe() string {
	switch a.Kind {
	case ActionClick:
		return a.Button.String() + " click"
	case ActionDoubleClick:
		return a.Button.String() + " double click"
	case ActionDrag:
		return a.Button.String() + " drag"
	case ActionMove:
		return fmt.Sprintf("move %s %dpx", a.Direction, a.Amount)
	case ActionScroll:
		return fmt.Sprintf("scroll %s %d", a.Direction, a.Amount)
	case ActionCancel:
		return "cancel"
	}
	return a.Kind.String()
}

// Mode is the phase a session is in
type Mode int

const (
	ModeNavigating Mode = iota
	ModeCell
)

func (m Mode) String() string {
	if m == ModeCell {
		return "cell"
	}
	return "navigating"
}

// SessionState is the single mutable state of a navigation session.
// Level indexes the configured navigation levels and is only meaningful
// while navigating. History holds the rectangles of the levels above the
// current one, outermost first. DragButton is the held button while
// Dragging is set.
type SessionState struct {
	Mode       Mode
	Level      int
	Rect       Rect
	History    []Rect
	Point      *Point
	Dragging   bool
	DragButton Button
}

// NewSessionState returns the initial state for a session over bounds
func NewSessionState(bounds Rect) SessionState {
	return SessionState{Mode: ModeNavigating, Rect: bounds}
}

// Clone returns a deep copy of s
func (s SessionState) Clone() SessionState {
	c := s
	if s.History != nil {
		c.History = append([]Rect(nil), s.History...)
	}
	if s.Point != nil {
		p := *s.Point
		c.Point = &p
	}
	return c
}

// IsInitial reports whether s equals the initial state for bounds
func (s SessionState) IsInitial(bounds Rect) bool {
	return s.Mode == ModeNavigating && s.Level == 0 && s.Rect == bounds &&
		len(s.History) == 0 && s.Point == nil && !s.Dragging
}
