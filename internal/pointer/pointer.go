// Package pointer defines the pointer-control capability the session drives
// and the backends implementing it.
package pointer

import (
	"fmt"

	"gridkeys/internal/domain"
)

// Pointer is the platform pointer-control surface. Every method issues
// exactly one command and reports whether the platform accepted it.
type Pointer interface {
	MoveAbsolute(p domain.Point) error
	MoveRelative(dx, dy int) error
	Click(b domain.Button) error
	DoubleClick(b domain.Button) error
	Press(b domain.Button) error
	Release(b domain.Button) error
	// Scroll turns the wheel amount steps; Up and Left move towards the
	// start of the content
	Scroll(d domain.Direction, amount int) error
}

// CommandKind identifies a pointer command
type CommandKind int

const (
	CommandMoveAbsolute CommandKind = iota
	CommandMoveRelative
	CommandClick
	CommandDoubleClick
	CommandPress
	CommandRelease
	CommandScroll
)

// Command is one abstract pointer command
type Command struct {
	Kind      CommandKind
	Point     domain.Point
	DX, DY    int
	Button    domain.Button
	Direction domain.Direction
	Amount    int
}

func (c Command) String() string {
	switch c.Kind {
	case CommandMoveAbsolute:
		return fmt.Sprintf("move-absolute %d %d", c.Point.X, c.Point.Y)
	case CommandMoveRelative:
		return fmt.Sprintf("move-relative %d %d", c.DX, c.DY)
	case CommandClick:
		return "click " + c.Button.String()
	case CommandDoubleClick:
		return "double-click " + c.Button.String()
	case CommandPress:
		return "press " + c.Button.String()
	case CommandRelease:
		return "release " + c.Button.String()
	case CommandScroll:
		return fmt.Sprintf("scroll %s %d", c.Direction, c.Amount)
	default:
		return fmt.Sprintf("command(%d)", int(c.Kind))
	}
}

// Send issues cmd through p
func Send(p Pointer, cmd Command) error {
	switch cmd.Kind {
	case CommandMoveAbsolute:
		return p.MoveAbsolute(cmd.Point)
	case CommandMoveRelative:
		return p.MoveRelative(cmd.DX, cmd.DY)
	case CommandClick:
		return p.Click(cmd.Button)
	case CommandDoubleClick:
		return p.DoubleClick(cmd.Button)
	case CommandPress:
		return p.Press(cmd.Button)
	case CommandRelease:
		return p.Release(cmd.Button)
	case CommandScroll:
		return p.Scroll(cmd.Direction, cmd.Amount)
	default:
		return fmt.Errorf("unknown pointer command %d", cmd.Kind)
	}
}
