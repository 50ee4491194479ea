package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"gridkeys/internal/grid"
)

// cellKeyBindings builds the short help shown in cell mode
func cellKeyBindings(cfg *grid.Config) []key.Binding {
	bindings := make([]key.Binding, 0, len(cfg.Bindings)+1)
	for _, k := range cfg.SortedBindingKeys() {
		a, _ := cfg.Binding(k)
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(string(k)),
			key.WithHelp(string(k), a.Describe()),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys(string(cfg.CancelKey)),
		key.WithHelp(string(cfg.CancelKey), "cancel"),
	))
	return bindings
}

// BindingsText renders the full key table for the pager and --bindings
func BindingsText(cfg *grid.Config) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("gridkeys bindings"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("screen %s\n", cfg.Bounds))

	for i, level := range cfg.Levels {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Level %d (%s)", i+1, level.Shape)))
		b.WriteString("\n")
		keys := level.Keys.Keys()
		for row := 0; row < level.Shape.Rows; row++ {
			cells := make([]string, 0, level.Shape.Cols)
			for col := 0; col < level.Shape.Cols; col++ {
				cells = append(cells, fmt.Sprintf("%-6s", keys[row*level.Shape.Cols+col]))
			}
			b.WriteString("  " + keyStyle.Render(strings.TrimRight(strings.Join(cells, ""), " ")))
			b.WriteString("\n")
		}
	}

	b.WriteString(sectionStyle.Render("Cell mode"))
	b.WriteString("\n")
	for _, k := range cfg.SortedBindingKeys() {
		a, _ := cfg.Binding(k)
		desc := a.Describe()
		if a.Stay {
			desc += " (stay)"
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", keyStyle.Render(string(k)), descStyle.Render(desc)))
	}

	b.WriteString(sectionStyle.Render("Any time"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-10s %s\n", keyStyle.Render(string(cfg.CancelKey)), descStyle.Render("cancel and start over")))
	if cfg.BackKey != "" {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", keyStyle.Render(string(cfg.BackKey)), descStyle.Render("back one level")))
	}
	if cfg.ResetAfterClick {
		b.WriteString(descStyle.Render("clicks end the session"))
	} else {
		b.WriteString(descStyle.Render("clicks keep the resolved point"))
	}
	b.WriteString("\n")

	return b.String()
}

// ShowBindingsInPager shows content in the ov pager. When program is set
// the terminal is released for the pager's duration.
func ShowBindingsInPager(program *tea.Program, content string) error {
	if program != nil {
		if err := program.ReleaseTerminal(); err != nil {
			return err
		}
		defer func() {
			// let ov finish with the terminal before taking it back
			time.Sleep(100 * time.Millisecond)
			_ = program.RestoreTerminal()
		}()
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
