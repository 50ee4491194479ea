package pointer

import (
	"fmt"
	"io"
	"log"
	"sync"

	"gridkeys/internal/domain"
)

// Recorder is a Pointer that performs nothing and remembers every command.
// It backs the dryrun backend and the tests. When FailWith is set every
// command fails with it and is not recorded.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	out      io.Writer
	FailWith error
}

// NewRecorder creates a recorder. If out is non-nil each accepted command
// is also written to it, one per line.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Commands returns the accepted commands in order
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Lines returns the accepted commands formatted with Command.String
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

// Reset forgets recorded commands
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.commands = nil
	r.mu.Unlock()
}

func (r *Recorder) record(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}
	r.commands = append(r.commands, cmd)
	log.Printf("pointer(dryrun): %s", cmd)
	if r.out != nil {
		fmt.Fprintln(r.out, cmd.String())
	}
	return nil
}

func (r *Recorder) MoveAbsolute(p domain.Point) error {
	return r.record(Command{Kind: CommandMoveAbsolute, Point: p})
}

func (r *Recorder) MoveRelative(dx, dy int) error {
	return r.record(Command{Kind: CommandMoveRelative, DX: dx, DY: dy})
}

func (r *Recorder) Click(b domain.Button) error {
	return r.record(Command{Kind: CommandClick, Button: b})
}

func (r *Recorder) DoubleClick(b domain.Button) error {
	return r.record(Command{Kind: CommandDoubleClick, Button: b})
}

func (r *Recorder) Press(b domain.Button) error {
	return r.record(Command{Kind: CommandPress, Button: b})
}

func (r *Recorder) Release(b domain.Button) error {
	return r.record(Command{Kind: CommandRelease, Button: b})
}

func (r *Recorder) Scroll(d domain.Direction, amount int) error {
	return r.record(Command{Kind: CommandScroll, Direction: d, Amount: amount})
}
