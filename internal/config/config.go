package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

// EnvPrefix prefixes every environment override (GRIDKEYS_CANCEL_KEY, ...)
const EnvPrefix = "GRIDKEYS"

// FallbackScreen is used when neither the file nor the backend knows the
// screen size
var FallbackScreen = domain.Rect{Width: 1920, Height: 1080}

// File is the on-disk configuration
type File struct {
	CancelKey       string    `mapstructure:"cancel_key" toml:"cancel_key"`
	BackKey         string    `mapstructure:"back_key" toml:"back_key"`
	ResetAfterClick bool      `mapstructure:"reset_after_click" toml:"reset_after_click"`
	Screen          Screen    `mapstructure:"screen" toml:"screen"`
	Levels          []Level   `mapstructure:"levels" toml:"levels"`
	Bindings        []Binding `mapstructure:"bindings" toml:"bindings"`
}

// Screen selects the area the grid covers. A zero width or height means
// the pointer backend's screen size is used. The offset insets the area
// from its top-left corner, e.g. to skip a panel.
type Screen struct {
	X       int `mapstructure:"x" toml:"x"`
	Y       int `mapstructure:"y" toml:"y"`
	Width   int `mapstructure:"width" toml:"width"`
	Height  int `mapstructure:"height" toml:"height"`
	OffsetX int `mapstructure:"offset_x" toml:"offset_x"`
	OffsetY int `mapstructure:"offset_y" toml:"offset_y"`
}

// Level is one navigation level. Keys is either a run of single-character
// keys ("abcd") or whitespace-separated key names ("f1 f2 f3 f4").
type Level struct {
	Rows int    `mapstructure:"rows" toml:"rows"`
	Cols int    `mapstructure:"cols" toml:"cols"`
	Keys string `mapstructure:"keys" toml:"keys"`
}

// Binding maps a cell-mode key to a named action
type Binding struct {
	Key    string `mapstructure:"key" toml:"key"`
	Action string `mapstructure:"action" toml:"action"`
	Amount int    `mapstructure:"amount" toml:"amount,omitempty"`
	Stay   bool   `mapstructure:"stay" toml:"stay,omitempty"`
}

// DefaultFile returns the configuration used when no file exists
func DefaultFile() File {
	return File{
		CancelKey:       "esc",
		BackKey:         "backspace",
		ResetAfterClick: true,
		Levels:          defaultLevels(),
		Bindings:        defaultBindings(),
	}
}

func defaultLevels() []Level {
	return []Level{
		{Rows: 4, Cols: 4, Keys: "abcdefghijklmnop"},
		{Rows: 4, Cols: 4, Keys: "abcdefghijklmnop"},
	}
}

func defaultBindings() []Binding {
	return []Binding{
		{Key: "space", Action: "click_left"},
		{Key: "enter", Action: "click_left"},
		{Key: "r", Action: "click_right"},
		{Key: "m", Action: "click_middle"},
		{Key: "2", Action: "double_click"},
		{Key: "v", Action: "drag"},
		{Key: "h", Action: "move_left", Amount: 10},
		{Key: "j", Action: "move_down", Amount: 10},
		{Key: "k", Action: "move_up", Amount: 10},
		{Key: "l", Action: "move_right", Amount: 10},
		{Key: "u", Action: "scroll_up", Amount: 3},
		{Key: "d", Action: "scroll_down", Amount: 3},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridkeys/config.toml or its
// platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "gridkeys", "config.toml")
}

// ResolvePath picks the config path: the explicit one, then GRIDKEYS_CONFIG,
// then the default location
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env
	}
	return DefaultPath()
}

// Load reads the configuration at path with GRIDKEYS_* environment
// overrides applied. A missing file yields the defaults.
func Load(path string) (File, error) {
	def := DefaultFile()
	v := viper.New()

	v.SetDefault("cancel_key", def.CancelKey)
	v.SetDefault("back_key", def.BackKey)
	v.SetDefault("reset_after_click", def.ResetAfterClick)
	v.SetDefault("screen.x", 0)
	v.SetDefault("screen.y", 0)
	v.SetDefault("screen.width", 0)
	v.SetDefault("screen.height", 0)
	v.SetDefault("screen.offset_x", 0)
	v.SetDefault("screen.offset_y", 0)

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return File{}, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Printf("config: %s not found, using defaults", path)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}

	// lists are not merged with defaults: a file that names levels or
	// bindings replaces them entirely
	if len(f.Levels) == 0 {
		f.Levels = def.Levels
	}
	if len(f.Bindings) == 0 {
		f.Bindings = def.Bindings
	}
	return f, nil
}

// Save writes f as TOML, creating the directory if needed
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Area returns the rectangle the grid covers. screen is used when the file
// leaves the size at zero, and FallbackScreen when screen is empty too.
func (f File) Area(screen domain.Rect) domain.Rect {
	r := screen
	if !r.Valid() {
		r = FallbackScreen
	}
	if f.Screen.Width > 0 && f.Screen.Height > 0 {
		r = domain.Rect{X: f.Screen.X, Y: f.Screen.Y, Width: f.Screen.Width, Height: f.Screen.Height}
	}
	r.X += f.Screen.OffsetX
	r.Y += f.Screen.OffsetY
	r.Width -= f.Screen.OffsetX
	r.Height -= f.Screen.OffsetY
	return r
}

// GridSpec converts the file into the unvalidated grid configuration
func (f File) GridSpec(screen domain.Rect) (grid.ConfigSpec, error) {
	spec := grid.ConfigSpec{
		Bounds:          f.Area(screen),
		Levels:          make([]grid.LevelSpec, 0, len(f.Levels)),
		Bindings:        make(map[domain.KeySymbol]domain.Action, len(f.Bindings)),
		CancelKey:       domain.KeySymbol(f.CancelKey),
		BackKey:         domain.KeySymbol(f.BackKey),
		ResetAfterClick: f.ResetAfterClick,
	}

	for _, l := range f.Levels {
		spec.Levels = append(spec.Levels, grid.LevelSpec{
			Shape: domain.GridShape{Rows: l.Rows, Cols: l.Cols},
			Keys:  SplitKeys(l.Keys),
		})
	}

	for _, b := range f.Bindings {
		key := domain.KeySymbol(b.Key)
		if key == "" {
			return grid.ConfigSpec{}, fmt.Errorf("binding for %q: empty key", b.Action)
		}
		if _, dup := spec.Bindings[key]; dup {
			return grid.ConfigSpec{}, fmt.Errorf("binding %q: %w", key, grid.ErrDuplicateKey)
		}
		action, err := ParseAction(b.Action, b.Amount, b.Stay)
		if err != nil {
			return grid.ConfigSpec{}, fmt.Errorf("binding %q: %w", key, err)
		}
		spec.Bindings[key] = action
	}
	return spec, nil
}

// Build converts and validates the file in one step
func (f File) Build(screen domain.Rect) (*grid.Config, error) {
	spec, err := f.GridSpec(screen)
	if err != nil {
		return nil, err
	}
	return grid.NewConfig(spec)
}

// SplitKeys turns a level's key string into key symbols
func SplitKeys(s string) []domain.KeySymbol {
	var keys []domain.KeySymbol
	if strings.ContainsAny(s, " \t\n") {
		for _, k := range strings.Fields(s) {
			keys = append(keys, domain.KeySymbol(k))
		}
		return keys
	}
	for _, r := range s {
		keys = append(keys, domain.KeySymbol(string(r)))
	}
	return keys
}
