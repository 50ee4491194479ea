// Package grid splits rectangles into addressable cells and maps keys to them.
package grid

import (
	"errors"
	"fmt"

	"gridkeys/internal/domain"
)

// ErrInvalidShape is returned for shapes with fewer than one row or column
var ErrInvalidShape = errors.New("invalid grid shape")

// ValidateShape checks that a shape has at least one row and one column
func ValidateShape(shape domain.GridShape) error {
	if shape.Rows < 1 || shape.Cols < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}
	return nil
}

// Partition splits rect into shape.Rows*shape.Cols cells in row-major order.
// Every cell is floor(width/cols) wide except the last column, which takes
// the remainder; rows are handled the same way. A rectangle narrower than
// its column count yields empty cells; callers check Valid on the cell they use.
func Partition(rect domain.Rect, shape domain.GridShape) ([]domain.Rect, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}

	cells := make([]domain.Rect, 0, shape.Cells())
	for row := 0; row < shape.Rows; row++ {
		for col := 0; col < shape.Cols; col++ {
			cells = append(cells, cell(rect, shape, row, col))
		}
	}
	return cells, nil
}

// CellAt returns the cell with the given row-major index without building
// the whole partition
func CellAt(rect domain.Rect, shape domain.GridShape, index int) (domain.Rect, error) {
	if err := ValidateShape(shape); err != nil {
		return domain.Rect{}, err
	}
	if index < 0 || index >= shape.Cells() {
		return domain.Rect{}, fmt.Errorf("cell index %d out of range for %s", index, shape)
	}
	return cell(rect, shape, index/shape.Cols, index%shape.Cols), nil
}

func cell(rect domain.Rect, shape domain.GridShape, row, col int) domain.Rect {
	x, w := span(rect.X, rect.Width, shape.Cols, col)
	y, h := span(rect.Y, rect.Height, shape.Rows, row)
	return domain.Rect{X: x, Y: y, Width: w, Height: h}
}

// span returns the offset and length of slot i when length is cut into n slots
func span(origin, length, n, i int) (int, int) {
	step := length / n
	start := origin + i*step
	if i == n-1 {
		return start, length - (n-1)*step
	}
	return start, step
}
