package shell

// command.go defines the commands the shell's `vm` target accepts and their effect on a
// machine. Each command is parsed from a line of shell input and applied synchronously by the
// CPU's event loop (system.go).

import (
	"fmt"
	"os"

	"lc16vm/internal/encoding"
	"lc16vm/internal/vm"
)

// Command is a parsed `vm ...` line, ready to run against a machine.
type Command interface {
	fmt.Stringer

	// Apply runs the command and returns a human-readable result.
	Apply(m *vm.Machine) (string, error)
}

// loadCmd implements `vm load <file> <segment> <addr>`.
type loadCmd struct {
	file    string
	segment vm.Segment
	addr    vm.Word
}

func (c loadCmd) String() string {
	return fmt.Sprintf("vm load %s %s %s", c.file, c.segment, c.addr)
}

func (c loadCmd) Apply(m *vm.Machine) (string, error) {
	bs, err := os.ReadFile(c.file)
	if err != nil {
		return "", fmt.Errorf("load: %w", err)
	}

	var dec encoding.BitEncoding
	if err := dec.UnmarshalText(bs); err != nil {
		return "", fmt.Errorf("load: %w", err)
	}

	if err := m.Load(c.segment, c.addr, dec.Words); err != nil {
		return "", fmt.Errorf("load: %w", err)
	}

	return fmt.Sprintf("loaded %d words at %s:%s", len(dec.Words), c.segment, c.addr), nil
}

// setPCCmd implements `vm set_pc <addr>`.
type setPCCmd struct{ addr vm.Word }

func (c setPCCmd) String() string { return fmt.Sprintf("vm set_pc %s", c.addr) }

func (c setPCCmd) Apply(m *vm.Machine) (string, error) {
	m.SetPC(c.addr)
	return fmt.Sprintf("PC = %s", m.PC()), nil
}

// execCmd implements `vm exec`.
type execCmd struct{}

func (execCmd) String() string { return "vm exec" }

func (execCmd) Apply(m *vm.Machine) (string, error) {
	status, err := m.Step()
	if err != nil {
		return "", fmt.Errorf("exec: %w", err)
	}

	if status.Stopped() {
		return fmt.Sprintf("stopped: %s", status), nil
	}

	return fmt.Sprintf("PC = %s STAT = %s", m.PC(), status), nil
}

// intCmd implements `vm int <dev> <int>`: a directly-issued interrupt, bypassing the
// controller's pending-interrupt bookkeeping. This is the path the IC's forwarded interrupts
// also run through (system.go calls the same HandleInterrupt), but a shell-issued `vm int` never
// triggers an `int_ack` back to the IC — there is no pending entry to clear.
type intCmd struct {
	dev uint8
	id  uint16
}

func (c intCmd) String() string { return fmt.Sprintf("vm int %d %d", c.dev, c.id) }

func (c intCmd) Apply(m *vm.Machine) (string, error) {
	if err := m.HandleInterrupt(c.dev, c.id); err != nil {
		return "", fmt.Errorf("int: %w", err)
	}

	return fmt.Sprintf("handled int=%d PC = %s", c.id, m.PC()), nil
}

// getcCmd implements `vm getc`: services a pending TRAP GETC by popping the next byte from the
// machine's input source, writing it to R0, and clearing STAT, per spec.md §4.4's resumption
// contract. It fails if the machine isn't actually waiting on input.
type getcCmd struct{}

func (getcCmd) String() string { return "vm getc" }

func (getcCmd) Apply(m *vm.Machine) (string, error) {
	if m.Status() != vm.StatusWaitingForInput {
		return "", fmt.Errorf("getc: %w", ErrNotWaitingForInput)
	}

	b, ok := m.InputSource().TryGet()
	if !ok {
		return "", fmt.Errorf("getc: %w", ErrNoInputAvailable)
	}

	m.SetGPR(vm.R0, vm.Word(b))
	m.SetPC(m.PC())

	return fmt.Sprintf("R0 = %#02x", b), nil
}

// dumpCmd implements `vm dump`: a diagnostic snapshot of PC, STAT and R0..R7. Memory is not
// printed.
type dumpCmd struct{}

func (dumpCmd) String() string { return "vm dump" }

func (dumpCmd) Apply(m *vm.Machine) (string, error) {
	return m.String(), nil
}
