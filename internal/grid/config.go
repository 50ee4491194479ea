package grid

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"gridkeys/internal/domain"
)

var (
	// ErrNoLevels is returned when a configuration has no navigation level
	ErrNoLevels = errors.New("at least one navigation level is required")
	// ErrInvalidBounds is returned for a screen rectangle without area
	ErrInvalidBounds = errors.New("invalid screen bounds")
	// ErrReservedKey is returned when the cancel or back key is bound elsewhere
	ErrReservedKey = errors.New("reserved key bound")
	// ErrInvalidAction is returned for malformed cell-mode bindings
	ErrInvalidAction = errors.New("invalid action")
)

// LevelSpec is the unvalidated description of one navigation level
type LevelSpec struct {
	Shape domain.GridShape
	Keys  []domain.KeySymbol
}

// ConfigSpec is the unvalidated input to NewConfig
type ConfigSpec struct {
	Bounds          domain.Rect
	Levels          []LevelSpec
	Bindings        map[domain.KeySymbol]domain.Action
	CancelKey       domain.KeySymbol
	BackKey         domain.KeySymbol
	ResetAfterClick bool
}

// Level is one validated navigation level
type Level struct {
	Shape domain.GridShape
	Keys  *KeyMap
}

// Config is a validated grid configuration. Build it with NewConfig;
// the navigation and action packages rely on its guarantees.
type Config struct {
	Bounds          domain.Rect
	Levels          []Level
	Bindings        map[domain.KeySymbol]domain.Action
	CancelKey       domain.KeySymbol
	BackKey         domain.KeySymbol
	ResetAfterClick bool
}

// NewConfig validates spec and returns the configuration the session runs on
func NewConfig(spec ConfigSpec) (*Config, error) {
	if !spec.Bounds.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBounds, spec.Bounds)
	}
	if len(spec.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if spec.CancelKey == "" {
		return nil, fmt.Errorf("%w: cancel key must be set", ErrReservedKey)
	}
	if spec.BackKey == spec.CancelKey {
		return nil, fmt.Errorf("%w: back key %q equals cancel key", ErrReservedKey, spec.BackKey)
	}

	cfg := &Config{
		Bounds:          spec.Bounds,
		Levels:          make([]Level, 0, len(spec.Levels)),
		Bindings:        make(map[domain.KeySymbol]domain.Action, len(spec.Bindings)),
		CancelKey:       spec.CancelKey,
		BackKey:         spec.BackKey,
		ResetAfterClick: spec.ResetAfterClick,
	}

	for i, ls := range spec.Levels {
		km, err := NewKeyMap(ls.Keys, ls.Shape)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		for _, reserved := range cfg.reserved() {
			if km.Contains(reserved) {
				return nil, fmt.Errorf("level %d: %w: %q", i+1, ErrReservedKey, reserved)
			}
		}
		cfg.Levels = append(cfg.Levels, Level{Shape: ls.Shape, Keys: km})
	}

	for key, action := range spec.Bindings {
		if err := validateAction(action); err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		if key == cfg.CancelKey && action.Kind != domain.ActionCancel {
			return nil, fmt.Errorf("binding %q: %w: cancel key can only cancel", key, ErrReservedKey)
		}
		if key == cfg.BackKey && cfg.BackKey != "" {
			return nil, fmt.Errorf("binding %q: %w: back key", key, ErrReservedKey)
		}
		cfg.Bindings[key] = action
	}

	return cfg, nil
}

func (c *Config) reserved() []domain.KeySymbol {
	if c.BackKey == "" {
		return []domain.KeySymbol{c.CancelKey}
	}
	return []domain.KeySymbol{c.CancelKey, c.BackKey}
}

func validateAction(a domain.Action) error {
	switch a.Kind {
	case domain.ActionClick, domain.ActionDoubleClick, domain.ActionDrag:
		if a.Button < domain.ButtonLeft || a.Button > domain.ButtonMiddle {
			return fmt.Errorf("%w: unknown button %d", ErrInvalidAction, a.Button)
		}
	case domain.ActionMove, domain.ActionScroll:
		if a.Direction < domain.DirectionUp || a.Direction > domain.DirectionRight {
			return fmt.Errorf("%w: unknown direction %d", ErrInvalidAction, a.Direction)
		}
		if a.Amount <= 0 {
			return fmt.Errorf("%w: %s needs a positive amount", ErrInvalidAction, a.Kind)
		}
	case domain.ActionCancel:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, a.Kind)
	}
	return nil
}

// Depth returns the number of navigation levels
func (c *Config) Depth() int {
	return len(c.Levels)
}

// IsLastLevel reports whether level is the deepest navigation level
func (c *Config) IsLastLevel(level int) bool {
	return level == len(c.Levels)-1
}

// Binding returns the cell-mode action for key
func (c *Config) Binding(key domain.KeySymbol) (domain.Action, bool) {
	a, ok := c.Bindings[key]
	return a, ok
}

// SortedBindingKeys returns the bound keys in a stable order for display
func (c *Config) SortedBindingKeys() []domain.KeySymbol {
	keys := make([]domain.KeySymbol, 0, len(c.Bindings))
	for k := range c.Bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ai, aj := c.Bindings[keys[i]], c.Bindings[keys[j]]
		if ai.Kind != aj.Kind {
			return ai.Kind < aj.Kind
		}
		return keys[i] < keys[j]
	})
	return keys
}

// InitialState returns a fresh session state over the configured bounds
func (c *Config) InitialState() domain.SessionState {
	return domain.NewSessionState(c.Bounds)
}

// Equal reports whether both configurations describe the same grid
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}
	return reflect.DeepEqual(*c, *o)
}
