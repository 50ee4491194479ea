package session

import (
	"fmt"
	"io"
	"strings"

	"gridkeys/internal/actions"
	"gridkeys/internal/domain"
	"gridkeys/internal/navigation"
)

// ParseKeys splits a whitespace-separated key script ("f f space")
func ParseKeys(script string) []domain.KeySymbol {
	fields := strings.Fields(script)
	keys := make([]domain.KeySymbol, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, domain.KeySymbol(f))
	}
	return keys
}

// Run feeds keys through the controller in order and writes one line per
// key to w. It stops at the first dispatch failure.
func Run(c *Controller, keys []domain.KeySymbol, w io.Writer) error {
	for _, k := range keys {
		out, err := c.HandleKey(k)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", k, err)
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", k, Describe(out))
	}
	return nil
}

// Describe summarises what a key did
func Describe(out Outcome) string {
	if !out.Changed {
		return "ignored"
	}

	var s string
	switch out.Nav.Kind {
	case navigation.Narrowed:
		s = fmt.Sprintf("narrowed to %s, level %d", out.Nav.Rect, out.Nav.Level+1)
	case navigation.Resolved:
		s = fmt.Sprintf("resolved %s", out.Nav.Point)
	case navigation.Backtracked:
		s = fmt.Sprintf("back to %s", out.Nav.Rect)
	case navigation.Reset:
		s = "reset"
	}

	switch out.Action.Kind {
	case actions.Dispatched:
		s = out.Action.Command.String()
	case actions.Reset:
		s = "reset"
	}

	if out.Ended {
		s += ", session ended"
	}
	return s
}
