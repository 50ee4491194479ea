package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"gridkeys/internal/domain"
)

// ErrUnknownAction is returned for action names that are not recognised
var ErrUnknownAction = errors.New("unknown action")

const (
	defaultMoveAmount   = 10
	defaultScrollAmount = 3
)

var actionNames = map[string]domain.Action{
	"click_left":          {Kind: domain.ActionClick, Button: domain.ButtonLeft},
	"click_right":         {Kind: domain.ActionClick, Button: domain.ButtonRight},
	"click_middle":        {Kind: domain.ActionClick, Button: domain.ButtonMiddle},
	"double_click":        {Kind: domain.ActionDoubleClick, Button: domain.ButtonLeft},
	"double_click_left":   {Kind: domain.ActionDoubleClick, Button: domain.ButtonLeft},
	"double_click_right":  {Kind: domain.ActionDoubleClick, Button: domain.ButtonRight},
	"double_click_middle": {Kind: domain.ActionDoubleClick, Button: domain.ButtonMiddle},
	"drag":                {Kind: domain.ActionDrag, Button: domain.ButtonLeft},
	"drag_left":           {Kind: domain.ActionDrag, Button: domain.ButtonLeft},
	"drag_right":          {Kind: domain.ActionDrag, Button: domain.ButtonRight},
	"drag_middle":         {Kind: domain.ActionDrag, Button: domain.ButtonMiddle},
	"move_up":             {Kind: domain.ActionMove, Direction: domain.DirectionUp},
	"move_down":           {Kind: domain.ActionMove, Direction: domain.DirectionDown},
	"move_left":           {Kind: domain.ActionMove, Direction: domain.DirectionLeft},
	"move_right":          {Kind: domain.ActionMove, Direction: domain.DirectionRight},
	"scroll_up":           {Kind: domain.ActionScroll, Direction: domain.DirectionUp},
	"scroll_down":         {Kind: domain.ActionScroll, Direction: domain.DirectionDown},
	"scroll_left":         {Kind: domain.ActionScroll, Direction: domain.DirectionLeft},
	"scroll_right":        {Kind: domain.ActionScroll, Direction: domain.DirectionRight},
	"cancel":              {Kind: domain.ActionCancel},
}

// ActionNames returns every accepted action name, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for n := range actionNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseAction resolves an action name. amount applies to moves (pixels)
// and scrolls (wheel steps) and falls back to a default when zero.
func ParseAction(name string, amount int, stay bool) (domain.Action, error) {
	a, ok := actionNames[name]
	if !ok {
		if s := suggest(name); s != "" {
			return domain.Action{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownAction, name, s)
		}
		return domain.Action{}, fmt.Errorf("%w %q", ErrUnknownAction, name)
	}

	switch a.Kind {
	case domain.ActionMove:
		a.Amount = defaultMoveAmount
	case domain.ActionScroll:
		a.Amount = defaultScrollAmount
	}
	if amount != 0 {
		a.Amount = amount
	}
	a.Stay = stay
	return a, nil
}

// suggest returns the closest known name within a small edit distance
func suggest(name string) string {
	best, bestDist := "", 4
	for _, candidate := range ActionNames() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
