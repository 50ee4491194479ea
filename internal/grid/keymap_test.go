package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridkeys/internal/domain"
)

func symbols(s string) []domain.KeySymbol {
	keys := make([]domain.KeySymbol, 0, len(s))
	for _, r := range s {
		keys = append(keys, domain.KeySymbol(string(r)))
	}
	return keys
}

func TestKeyMapBijection(t *testing.T) {
	shape := domain.GridShape{Rows: 4, Cols: 4}
	km, err := NewKeyMap(symbols("abcdefghijklmnop"), shape)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, k := range symbols("abcdefghijklmnop") {
		idx, ok := km.IndexOf(k)
		require.True(t, ok)
		require.False(t, seen[idx], "index %d assigned twice", idx)
		seen[idx] = true

		back, ok := km.KeyOf(idx)
		require.True(t, ok)
		require.Equal(t, k, back)
	}
	require.Len(t, seen, shape.Cells())

	idx, _ := km.IndexOf("f")
	assert.Equal(t, 5, idx)
	assert.Equal(t, shape, km.Shape())
}

func TestKeyMapUnknownLookupsAreTotal(t *testing.T) {
	km, err := NewKeyMap(symbols("abcd"), domain.GridShape{Rows: 2, Cols: 2})
	require.NoError(t, err)

	_, ok := km.IndexOf("z")
	assert.False(t, ok)
	_, ok = km.IndexOf("")
	assert.False(t, ok)
	_, ok = km.KeyOf(4)
	assert.False(t, ok)
	_, ok = km.KeyOf(-1)
	assert.False(t, ok)
	assert.False(t, km.Contains("esc"))
}

func TestKeyMapConstructionErrors(t *testing.T) {
	tests := []struct {
		name  string
		keys  []domain.KeySymbol
		shape domain.GridShape
		want  error
	}{
		{"duplicate", symbols("abca"), domain.GridShape{Rows: 2, Cols: 2}, ErrDuplicateKey},
		{"too few", symbols("abc"), domain.GridShape{Rows: 2, Cols: 2}, ErrShapeMismatch},
		{"too many", symbols("abcde"), domain.GridShape{Rows: 2, Cols: 2}, ErrShapeMismatch},
		{"zero rows", nil, domain.GridShape{Rows: 0, Cols: 2}, ErrInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := NewKeyMap(tt.keys, tt.shape)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, km)
		})
	}
}

func TestKeyMapKeysIsACopy(t *testing.T) {
	km, err := NewKeyMap(symbols("ab"), domain.GridShape{Rows: 1, Cols: 2})
	require.NoError(t, err)

	keys := km.Keys()
	keys[0] = "z"
	k, _ := km.KeyOf(0)
	require.Equal(t, domain.KeySymbol("a"), k)
}
