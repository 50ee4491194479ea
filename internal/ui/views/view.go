package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	State         domain.SessionState
	Config        *grid.Config
	StatusMessage string
	StatusIsError bool
	LastCommand   string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.Config == nil {
		return ""
	}
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")
	content.WriteString(r.styles.Breadcrumb.Render(Breadcrumb(vs.State)))
	content.WriteString("\n")

	// title, breadcrumb, footer and status take 5 lines
	bodyHeight := vs.Height - 5
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	width := vs.Width
	if width <= 0 {
		width = 80
	}

	if vs.State.Mode == domain.ModeCell {
		content.WriteString(r.renderCell(vs, width, bodyHeight))
	} else if vs.State.Level >= 0 && vs.State.Level < vs.Config.Depth() {
		content.WriteString(r.RenderGrid(vs.Config.Levels[vs.State.Level], width, bodyHeight))
	}
	content.WriteString("\n")

	content.WriteString(r.renderFooter(vs))
	content.WriteString(r.renderStatus(vs))
	return content.String()
}

func (r *Renderer) renderTitle(vs ViewState) string {
	title := r.styles.Title.Render("gridkeys")
	var info string
	if vs.State.Mode == domain.ModeCell {
		info = "cell " + r.styles.Point.Render(pointText(vs.State.Point))
	} else {
		info = fmt.Sprintf("level %d/%d", vs.State.Level+1, vs.Config.Depth())
	}
	line := fmt.Sprintf("%s  %s", title, r.styles.Dim.Render(info))
	if vs.State.Dragging {
		line += "  " + r.styles.Dragging.Render(fmt.Sprintf("[dragging %s]", vs.State.DragButton))
	}
	return line
}

func (r *Renderer) renderCell(vs ViewState, width, height int) string {
	body := fmt.Sprintf("pointer at %s in %s", pointText(vs.State.Point), vs.State.Rect)
	box := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, r.styles.Point.Render(body))
	return box
}

func (r *Renderer) renderFooter(vs ViewState) string {
	if vs.State.Mode == domain.ModeCell && vs.HelpView != "" {
		return r.styles.Help.Render(vs.HelpView)
	}
	parts := []string{fmt.Sprintf("%s cancel", vs.Config.CancelKey)}
	if vs.Config.BackKey != "" {
		parts = append(parts, fmt.Sprintf("%s back", vs.Config.BackKey))
	}
	return r.styles.Help.Render(strings.Join(parts, " • "))
}

func (r *Renderer) renderStatus(vs ViewState) string {
	switch {
	case vs.StatusMessage != "" && vs.StatusIsError:
		return "\n" + r.styles.StatusError.Render(vs.StatusMessage)
	case vs.StatusMessage != "":
		return "\n" + r.styles.Status.Render(vs.StatusMessage)
	case vs.LastCommand != "":
		return "\n" + r.styles.StatusSuccess.Render("→ "+vs.LastCommand)
	}
	return ""
}

// Breadcrumb lists the rectangles from the screen down to the current one
func Breadcrumb(st domain.SessionState) string {
	parts := make([]string, 0, len(st.History)+1)
	for _, r := range st.History {
		parts = append(parts, r.String())
	}
	parts = append(parts, st.Rect.String())
	return strings.Join(parts, " › ")
}

func pointText(p *domain.Point) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
