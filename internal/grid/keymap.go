package grid

import (
	"errors"
	"fmt"

	"gridkeys/internal/domain"
)

var (
	// ErrDuplicateKey is returned when a key appears twice in one level
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrShapeMismatch is returned when the key count differs from rows*cols
	ErrShapeMismatch = errors.New("key count does not match grid shape")
)

// KeyMap is a bijection between the keys of one level and its cell indices
type KeyMap struct {
	shape   domain.GridShape
	keys    []domain.KeySymbol
	indexes map[domain.KeySymbol]int
}

// NewKeyMap builds a key map; keys are assigned to cells in row-major order
func NewKeyMap(keys []domain.KeySymbol, shape domain.GridShape) (*KeyMap, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	if len(keys) != shape.Cells() {
		return nil, fmt.Errorf("%w: %d keys for %s (%d cells)", ErrShapeMismatch, len(keys), shape, shape.Cells())
	}

	km := &KeyMap{
		shape:   shape,
		keys:    append([]domain.KeySymbol(nil), keys...),
		indexes: make(map[domain.KeySymbol]int, len(keys)),
	}
	for i, k := range keys {
		if prev, exists := km.indexes[k]; exists {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, k, prev, i)
		}
		km.indexes[k] = i
	}
	return km, nil
}

// IndexOf returns the cell index bound to key
func (km *KeyMap) IndexOf(key domain.KeySymbol) (int, bool) {
	i, ok := km.indexes[key]
	return i, ok
}

// KeyOf returns the key bound to a cell index
func (km *KeyMap) KeyOf(index int) (domain.KeySymbol, bool) {
	if index < 0 || index >= len(km.keys) {
		return "", false
	}
	return km.keys[index], true
}

// Contains reports whether key is part of the map
func (km *KeyMap) Contains(key domain.KeySymbol) bool {
	_, ok := km.indexes[key]
	return ok
}

// Keys returns the keys in cell order
func (km *KeyMap) Keys() []domain.KeySymbol {
	return append([]domain.KeySymbol(nil), km.keys...)
}

// Shape returns the grid shape the map was built for
func (km *KeyMap) Shape() domain.GridShape {
	return km.shape
}
