package vm

// input.go implements the blocking byte source the GETC trap servicer reads from. It is
// adapted from the teacher's memory-mapped Keyboard device: the same ready/empty, mutex-and-
// condition-variable handshake, but driving a plain queue instead of a device register pair,
// since this spec has no memory-mapped I/O page.

import (
	"sync"
)

// InputSource is a single-byte-deep, goroutine-safe mailbox between a host (the shell's `vm
// getc` command, or a console driver) and the GETC trap. Neither the trap nor InputSource reads
// stdin; bytes arrive only through Put.
type InputSource struct {
	mut     sync.Mutex
	ready   *sync.Cond
	full    bool
	pending uint8
}

// NewInputSource creates an empty input source.
func NewInputSource() *InputSource {
	in := &InputSource{}
	in.ready = sync.NewCond(&in.mut)

	return in
}

// Put delivers a byte to the source, waiting for any previously delivered byte to be consumed
// first. This is how an external actor satisfies the GETC trap's "write the byte" contract.
func (in *InputSource) Put(b uint8) {
	in.mut.Lock()
	defer in.mut.Unlock()

	for in.full {
		in.ready.Wait()
	}

	in.pending = b
	in.full = true
	in.ready.Broadcast()
}

// TryGet returns the pending byte and clears the source, or false if no byte is pending yet.
// It never blocks: the GETC trap's contract is that STAT, not this call, gates resumption.
func (in *InputSource) TryGet() (uint8, bool) {
	in.mut.Lock()
	defer in.mut.Unlock()

	if !in.full {
		return 0, false
	}

	b := in.pending
	in.full = false
	in.ready.Broadcast()

	return b, true
}
