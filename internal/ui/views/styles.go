package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the overlay
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Breadcrumb    lipgloss.Style
	GridLine      lipgloss.Style
	Label         lipgloss.Style
	Point         lipgloss.Style
	Dragging      lipgloss.Style
	Help          lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:        lipgloss.NewStyle().Faint(true),
		Breadcrumb: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		GridLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Point:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Dragging:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Help:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).MarginTop(1),  // green
	}
}
