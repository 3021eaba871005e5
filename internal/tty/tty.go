// Package tty feeds raw terminal bytes to the machine's GETC trap. It adapts the teacher's
// Console — raw-mode terminal I/O for a memory-mapped keyboard/display pair — to this spec's
// simpler boundary: there is no display trap, so Console only ever produces bytes, it never
// consumes them.
package tty

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"lc16vm/internal/vm"
)

// ErrNoTTY is returned when standard input is not a terminal. Callers should fall back to
// FeedBuffered, reading ordinary line-buffered input instead.
var ErrNoTTY = errors.New("console: not a TTY")

// Console is a raw-mode terminal reader.
type Console struct {
	in    *os.File
	fd    int
	state *term.State
}

// NewConsole puts in into raw, single-keystroke mode. Callers must call Restore to return the
// terminal to its original state.
func NewConsole(in *os.File) (*Console, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	c := &Console{in: in, fd: fd, state: state}

	if err := c.setTerminalParams(1, 0); err != nil {
		return nil, err
	}

	return c, nil
}

// Restore returns the terminal to the state it was in before NewConsole.
func (c *Console) Restore() {
	_ = os.Stdin.SetReadDeadline(time.Now())
	_ = term.Restore(c.fd, c.state)
}

func (c *Console) setTerminalParams(vmin, vtime byte) error {
	_ = syscall.SetNonblock(c.fd, true)

	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	if err := unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO); err != nil {
		return err
	}

	_ = os.Stdin.SetReadDeadline(time.Time{})

	return nil
}

// Feed reads raw bytes from the console and delivers each to src until ctx is done or the read
// fails. One byte serviced by `vm getc` is one keystroke: no line buffering, no echo beyond what
// the terminal driver itself does in raw mode.
func (c *Console) Feed(ctx context.Context, src *vm.InputSource) error {
	_ = syscall.SetNonblock(c.fd, false)
	return feed(ctx, c.in, src)
}

// FeedBuffered reads line-buffered bytes from in and delivers each to src. It is a fallback for
// when stdin isn't a TTY (NewConsole returns ErrNoTTY), used by the termtest tool; the run
// command does not call it, and leaves the input source unfed when stdin isn't a TTY.
func FeedBuffered(ctx context.Context, in io.Reader, src *vm.InputSource) error {
	return feed(ctx, in, src)
}

func feed(ctx context.Context, in io.Reader, src *vm.InputSource) error {
	r := bufio.NewReader(in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		src.Put(b)
	}
}
