package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

var screen = domain.Rect{Width: 1920, Height: 1080}

const sample = `
cancel_key = "q"
reset_after_click = false

[screen]
width = 800
height = 600
offset_y = 40

[[levels]]
rows = 2
cols = 2
keys = "asdf"

[[levels]]
rows = 1
cols = 3
keys = "f1 f2 f3"

[[bindings]]
key = "space"
action = "click_left"
stay = true

[[bindings]]
key = "j"
action = "scroll_down"
amount = 5
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFile(), f)

	cfg, err := f.Build(screen)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Depth())
	assert.Equal(t, screen, cfg.Bounds)
	assert.True(t, cfg.ResetAfterClick)
}

func TestLoadFile(t *testing.T) {
	f, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "q", f.CancelKey)
	assert.Equal(t, "backspace", f.BackKey, "unset scalars keep their default")
	assert.False(t, f.ResetAfterClick)
	require.Len(t, f.Levels, 2)
	require.Len(t, f.Bindings, 2)

	cfg, err := f.Build(screen)
	require.NoError(t, err)
	assert.Equal(t, domain.Rect{X: 0, Y: 40, Width: 800, Height: 560}, cfg.Bounds)
	assert.Equal(t, domain.GridShape{Rows: 1, Cols: 3}, cfg.Levels[1].Shape)

	idx, ok := cfg.Levels[1].Keys.IndexOf("f2")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	space, ok := cfg.Binding("space")
	require.True(t, ok)
	assert.True(t, space.Stay)

	j, ok := cfg.Binding("j")
	require.True(t, ok)
	assert.Equal(t, domain.Action{Kind: domain.ActionScroll, Direction: domain.DirectionDown, Amount: 5}, j)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDKEYS_CANCEL_KEY", "x")
	t.Setenv("GRIDKEYS_RESET_AFTER_CLICK", "false")
	t.Setenv("GRIDKEYS_SCREEN_OFFSET_X", "100")

	f, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "x", f.CancelKey)
	assert.False(t, f.ResetAfterClick)
	assert.Equal(t, 100, f.Screen.OffsetX)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("GRIDKEYS_CONFIG", "/tmp/from-env.toml")
	assert.Equal(t, "/explicit.toml", ResolvePath("/explicit.toml"))
	assert.Equal(t, "/tmp/from-env.toml", ResolvePath(""))

	t.Setenv("GRIDKEYS_CONFIG", "")
	assert.Equal(t, "config.toml", filepath.Base(ResolvePath("")))
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeFile(t, "cancel_key = [unterminated"))
	require.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*File)
		is     error
	}{
		{
			name:   "unknown action",
			mutate: func(f *File) { f.Bindings = []Binding{{Key: "x", Action: "clik_left"}} },
			is:     ErrUnknownAction,
		},
		{
			name:   "wrong key count",
			mutate: func(f *File) { f.Levels[0].Keys = "abc" },
			is:     grid.ErrShapeMismatch,
		},
		{
			name: "duplicate binding",
			mutate: func(f *File) {
				f.Bindings = []Binding{{Key: "x", Action: "drag"}, {Key: "x", Action: "cancel"}}
			},
			is: grid.ErrDuplicateKey,
		},
		{
			name:   "cancel key in a level",
			mutate: func(f *File) { f.CancelKey = "a" },
			is:     grid.ErrReservedKey,
		},
		{
			name:   "offset swallows the screen",
			mutate: func(f *File) { f.Screen.OffsetX = 5000 },
			is:     grid.ErrInvalidBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFile()
			tt.mutate(&f)
			_, err := f.Build(screen)
			require.ErrorIs(t, err, tt.is)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("move_left", 0, false)
	require.NoError(t, err)
	assert.Equal(t, domain.Action{Kind: domain.ActionMove, Direction: domain.DirectionLeft, Amount: 10}, a)

	a, err = ParseAction("scroll_up", 0, false)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Amount)

	a, err = ParseAction("double_click_right", 0, true)
	require.NoError(t, err)
	assert.Equal(t, domain.Action{Kind: domain.ActionDoubleClick, Button: domain.ButtonRight, Stay: true}, a)

	_, err = ParseAction("scrol_down", 0, false)
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), `did you mean "scroll_down"`)

	_, err = ParseAction("zzzzzzzzzz", 0, false)
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestActionNamesCoverDefaults(t *testing.T) {
	names := ActionNames()
	for _, b := range DefaultFile().Bindings {
		assert.Contains(t, names, b.Action)
	}
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []domain.KeySymbol{"a", "b", "c"}, SplitKeys("abc"))
	assert.Equal(t, []domain.KeySymbol{"f1", "f2", "space"}, SplitKeys(" f1 f2\tspace "))
	assert.Empty(t, SplitKeys(""))
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := DefaultFile()
	want.Screen.OffsetY = 24

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeFile(t, sample)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan File, 4)
	require.NoError(t, Watch(ctx, path, func(f File, err error) {
		if err != nil {
			return
		}
		select {
		case reloaded <- f:
		default:
		}
	}))

	updated := DefaultFile()
	updated.CancelKey = "z"
	require.NoError(t, Save(path, updated))

	// a truncating write can be observed half-way, so wait for the final content
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f := <-reloaded:
			if f.CancelKey == "z" {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}

func TestAreaFallsBackWhenScreenUnknown(t *testing.T) {
	f := DefaultFile()
	assert.Equal(t, FallbackScreen, f.Area(domain.Rect{}))

	f.Screen.OffsetX = 20
	f.Screen.OffsetY = 30
	assert.Equal(t, domain.Rect{X: 20, Y: 30, Width: 2540, Height: 1410}, f.Area(domain.Rect{Width: 2560, Height: 1440}))
}

func TestWatchCoalescesBurstOfWrites(t *testing.T) {
	old := reloadDelay
	reloadDelay = 300 * time.Millisecond
	defer func() { reloadDelay = old }()

	path := writeFile(t, sample)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan File, 8)
	require.NoError(t, Watch(ctx, path, func(f File, err error) {
		if err == nil {
			reloaded <- f
		}
	}))

	for _, k := range []string{"x", "y", "z"} {
		f := DefaultFile()
		f.CancelKey = k
		require.NoError(t, Save(path, f))
	}

	select {
	case f := <-reloaded:
		assert.Equal(t, "z", f.CancelKey)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writes")
	}

	select {
	case f := <-reloaded:
		t.Fatalf("burst reloaded more than once, extra load saw %q", f.CancelKey)
	case <-time.After(time.Second):
	}
}
