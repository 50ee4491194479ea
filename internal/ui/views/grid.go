package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

type glyphKind int

const (
	glyphBlank glyphKind = iota
	glyphLine
	glyphLabel
)

// canvas is a width x height character grid with a style class per cell
type canvas struct {
	width  int
	height int
	runes  [][]rune
	kinds  [][]glyphKind
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.kinds = make([][]glyphKind, height)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", width))
		c.kinds[y] = make([]glyphKind, width)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, kind glyphKind) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = kind
}

// RenderGrid draws level's grid over a width x height terminal area. The
// cells are laid out with the same partition the session uses on screen,
// so the preview has the same proportions.
func (r *Renderer) RenderGrid(level grid.Level, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	cells, err := grid.Partition(domain.Rect{Width: width, Height: height}, level.Shape)
	if err != nil {
		return ""
	}

	c := newCanvas(width, height)
	for i, cell := range cells {
		for x := cell.X; x < cell.X+cell.Width; x++ {
			if cell.Y > 0 {
				c.set(x, cell.Y, '─', glyphLine)
			}
		}
		for y := cell.Y; y < cell.Y+cell.Height; y++ {
			if cell.X > 0 {
				c.set(cell.X, y, '│', glyphLine)
			}
		}
		if cell.X > 0 && cell.Y > 0 {
			c.set(cell.X, cell.Y, '┼', glyphLine)
		}

		key, ok := level.Keys.KeyOf(i)
		if !ok || !cell.Valid() {
			continue
		}
		label := []rune(string(key))
		if len(label) > cell.Width-1 {
			label = label[:max(cell.Width-1, 0)]
		}
		center := cell.Center()
		start := center.X - len(label)/2
		if start <= cell.X && cell.X > 0 {
			start = cell.X + 1
		}
		for j, ch := range label {
			c.set(start+j, center.Y, ch, glyphLabel)
		}
	}

	return c.render(r.styles)
}

func (c *canvas) render(styles *Styles) string {
	lines := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var line strings.Builder
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.kinds[y][x] == c.kinds[y][start] {
				continue
			}
			line.WriteString(styleFor(styles, c.kinds[y][start]).Render(string(c.runes[y][start:x])))
			start = x
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func styleFor(styles *Styles, kind glyphKind) lipgloss.Style {
	switch kind {
	case glyphLine:
		return styles.GridLine
	case glyphLabel:
		return styles.Label
	default:
		return lipgloss.NewStyle()
	}
}
