package pointer

import (
	"fmt"
	"io"

	"gridkeys/internal/domain"
)

// Backend names accepted by Open
const (
	BackendX11    = "x11"
	BackendDryRun = "dryrun"
)

// Backend is an opened pointer surface together with the screen it covers.
// Screen is empty when the backend cannot tell.
type Backend struct {
	Pointer Pointer
	Screen  domain.Rect
	closer  io.Closer
}

// Close releases the backend's platform resources
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Open selects a backend by name. The dryrun backend writes every command
// to out.
func Open(name string, out io.Writer) (*Backend, error) {
	switch name {
	case BackendX11:
		x, err := NewX11()
		if err != nil {
			return nil, err
		}
		return &Backend{Pointer: x, Screen: x.ScreenRect(), closer: x}, nil
	case BackendDryRun, "":
		return &Backend{Pointer: NewRecorder(out)}, nil
	default:
		return nil, fmt.Errorf("unknown pointer backend %q (want %s or %s)", name, BackendX11, BackendDryRun)
	}
}
