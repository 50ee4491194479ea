package ui

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridkeys/internal/actions"
	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
	"gridkeys/internal/session"
	"gridkeys/internal/ui/views"
)

// PagerKey opens the bindings pager unless the configuration uses it
const PagerKey domain.KeySymbol = "f1"

// Options tune the overlay
type Options struct {
	// Oneshot quits after the first click that ends the session
	Oneshot bool
}

// Model is the overlay: it feeds keys to the session controller and draws
// the last state snapshot it received
type Model struct {
	controller *session.Controller
	opts       Options

	width    int
	height   int
	help     help.Model
	cellKeys []key.Binding
	renderer *views.Renderer

	snapshot      domain.SessionState
	statusMessage string
	statusIsError bool
	lastCommand   string

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(controller *session.Controller, opts Options) *Model {
	m := &Model{
		controller: controller,
		opts:       opts,
		help:       help.New(),
		renderer:   views.NewRenderer(),
		snapshot:   controller.State(),
	}
	m.cellKeys = cellKeyBindings(controller.Config())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// KeySymbol converts a terminal key press into the symbol used in the
// configuration
func KeySymbol(msg tea.KeyMsg) domain.KeySymbol {
	s := msg.String()
	if s == " " {
		return "space"
	}
	return domain.KeySymbol(s)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StateMsg:
		m.snapshot = msg.State

	case DispatchedMsg:
		m.lastCommand = msg.Command
		m.statusMessage = ""
		m.statusIsError = false

	case DispatchFailedMsg:
		m.setError(msg.Err)

	case ConfigReloadedMsg:
		if !m.controller.Reconfigure(msg.Config) {
			break
		}
		m.cellKeys = cellKeyBindings(msg.Config)
		m.snapshot = m.controller.State()
		m.statusMessage = fmt.Sprintf("reloaded %s", msg.Path)
		m.statusIsError = false

	case ConfigRejectedMsg:
		m.setError(fmt.Errorf("config %s not reloaded: %w", msg.Path, msg.Err))

	case bindingsPagerMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sym := KeySymbol(msg)
	if sym == "ctrl+c" {
		return m, tea.Quit
	}
	if sym == PagerKey && !keyInUse(m.controller.Config(), sym) {
		return m, m.openPager()
	}

	out, err := m.controller.HandleKey(sym)
	if err != nil {
		// the bus reports the failure too; show it right away
		m.setError(err)
		return m, nil
	}
	if out.Changed {
		m.statusMessage = ""
		m.statusIsError = false
	}
	if out.Ended && m.opts.Oneshot {
		log.Printf("ui: session ended, quitting")
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openPager() tea.Cmd {
	content := BindingsText(m.controller.Config())
	program := m.program
	return func() tea.Msg {
		return bindingsPagerMsg{err: ShowBindingsInPager(program, content)}
	}
}

func (m *Model) setError(err error) {
	m.statusIsError = true
	var derr *actions.DispatchError
	if errors.As(err, &derr) {
		m.statusMessage = fmt.Sprintf("%s failed: %v", derr.Command, derr.Err)
		return
	}
	m.statusMessage = err.Error()
}

// View renders the UI
func (m *Model) View() string {
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		State:         m.snapshot,
		Config:        m.controller.Config(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		LastCommand:   m.lastCommand,
	}
	if m.snapshot.Mode == domain.ModeCell {
		vs.HelpView = m.help.ShortHelpView(m.cellKeys)
	}
	return m.renderer.Render(vs)
}

func keyInUse(cfg *grid.Config, k domain.KeySymbol) bool {
	if k == cfg.CancelKey || k == cfg.BackKey {
		return true
	}
	if _, ok := cfg.Binding(k); ok {
		return true
	}
	for _, level := range cfg.Levels {
		if level.Keys.Contains(k) {
			return true
		}
	}
	return false
}
