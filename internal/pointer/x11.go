package pointer

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"

	"gridkeys/internal/domain"
)

// X11 core button numbers; 4..7 are the wheel directions
const (
	x11ButtonLeft       = 1
	x11ButtonMiddle     = 2
	x11ButtonRight      = 3
	x11WheelUp          = 4
	x11WheelDown        = 5
	x11WheelLeft        = 6
	x11WheelRight       = 7
	x11AnyDevice   byte = 0
)

// X11 drives the pointer through the XTEST extension
type X11 struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// NewX11 connects to $DISPLAY and initialises XTEST
func NewX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("init XTEST extension: %w", err)
	}
	return &X11{xu: xu, root: xu.RootWin()}, nil
}

// ScreenRect returns the size of the root window
func (x *X11) ScreenRect() domain.Rect {
	s := x.xu.Screen()
	return domain.Rect{Width: int(s.WidthInPixels), Height: int(s.HeightInPixels)}
}

// Close disconnects from the X server
func (x *X11) Close() error {
	x.xu.Conn().Close()
	return nil
}

func (x *X11) MoveAbsolute(p domain.Point) error {
	px, py, err := coords16(p.X, p.Y)
	if err != nil {
		return fmt.Errorf("warp pointer to %s: %w", p, err)
	}
	err = xproto.WarpPointerChecked(x.xu.Conn(), xproto.WindowNone, x.root, 0, 0, 0, 0, px, py).Check()
	if err != nil {
		return fmt.Errorf("warp pointer to %s: %w", p, err)
	}
	return nil
}

// MoveRelative warps with no destination window, which X treats as an
// offset from the current position
func (x *X11) MoveRelative(dx, dy int) error {
	ox, oy, err := coords16(dx, dy)
	if err != nil {
		return fmt.Errorf("warp pointer by %d,%d: %w", dx, dy, err)
	}
	err = xproto.WarpPointerChecked(x.xu.Conn(), xproto.WindowNone, xproto.WindowNone, 0, 0, 0, 0, ox, oy).Check()
	if err != nil {
		return fmt.Errorf("warp pointer by %d,%d: %w", dx, dy, err)
	}
	return nil
}

func (x *X11) Click(b domain.Button) error {
	return x.clickButton(x11Button(b), 1)
}

func (x *X11) DoubleClick(b domain.Button) error {
	return x.clickButton(x11Button(b), 2)
}

func (x *X11) Press(b domain.Button) error {
	return x.fake(xproto.ButtonPress, x11Button(b))
}

func (x *X11) Release(b domain.Button) error {
	return x.fake(xproto.ButtonRelease, x11Button(b))
}

func (x *X11) Scroll(d domain.Direction, amount int) error {
	var button byte
	switch d {
	case domain.DirectionUp:
		button = x11WheelUp
	case domain.DirectionDown:
		button = x11WheelDown
	case domain.DirectionLeft:
		button = x11WheelLeft
	case domain.DirectionRight:
		button = x11WheelRight
	default:
		return fmt.Errorf("unknown scroll direction %s", d)
	}
	return x.clickButton(button, amount)
}

func (x *X11) clickButton(button byte, times int) error {
	for i := 0; i < times; i++ {
		if err := x.fake(xproto.ButtonPress, button); err != nil {
			return err
		}
		if err := x.fake(xproto.ButtonRelease, button); err != nil {
			return err
		}
	}
	return nil
}

func (x *X11) fake(eventType, button byte) error {
	err := xtest.FakeInputChecked(x.xu.Conn(), eventType, button, 0, x.root, 0, 0, x11AnyDevice).Check()
	if err != nil {
		return fmt.Errorf("fake input (type %d, button %d): %w", eventType, button, err)
	}
	return nil
}

func x11Button(b domain.Button) byte {
	switch b {
	case domain.ButtonRight:
		return x11ButtonRight
	case domain.ButtonMiddle:
		return x11ButtonMiddle
	default:
		return x11ButtonLeft
	}
}

// coords16 converts a coordinate pair to the protocol's 16-bit fields
func coords16(x, y int) (int16, int16, error) {
	for _, v := range [2]int{x, y} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return 0, 0, fmt.Errorf("coordinate %d outside the X11 range", v)
		}
	}
	return int16(x), int16(y), nil
}
