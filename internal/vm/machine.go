package vm

// machine.go assembles the machine from its parts: the register file and memory.

import (
	"fmt"

	"lc16vm/internal/log"
)

// Machine is the CPU: a register file, memory, the interrupt handler table, and the blocking
// input source the GETC trap reads from.
type Machine struct {
	Reg [NumRegisters]Word
	Mem *Memory

	intTableBase Word
	intTableSet  bool
	input        *InputSource

	log *log.Logger

	slotCount int
}

// DefaultSlotCount is the memory size used when no other size is requested: 2^12 slots, the
// "simple profile" in spec.md §3.
const DefaultSlotCount = 1 << 12

// An OptionFn configures a Machine during construction.
type OptionFn func(*Machine)

// WithSlotCount overrides the default memory size. count must be a power of two no smaller than
// MinSlotCount; New validates it and returns an error rather than panicking, so a bad count
// (e.g. from a CLI flag) surfaces as an ordinary constructor error.
func WithSlotCount(count int) OptionFn {
	return func(m *Machine) { m.slotCount = count }
}

// WithInputSource overrides the default input source, e.g. to wire a console driver.
func WithInputSource(in *InputSource) OptionFn {
	return func(m *Machine) { m.input = in }
}

// New creates a machine with all-zero registers and uninitialized memory, per spec.md §3's
// lifecycle: "created with all zero registers and UNINIT memory".
func New(opts ...OptionFn) (*Machine, error) {
	m := &Machine{
		input: NewInputSource(),
		log:   log.DefaultLogger(),
	}

	for _, fn := range opts {
		fn(m)
	}

	if m.slotCount == 0 {
		m.slotCount = DefaultSlotCount
	}

	mem, err := NewMemory(m.slotCount)
	if err != nil {
		return nil, err
	}

	m.Mem = mem

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("PC: %s STAT: %s\n%s",
		Word(m.Reg[PC]), Status(m.Reg[STAT]), m.regString())
}

func (m *Machine) regString() string {
	var s string
	for i := R0; i < NumGPR; i++ {
		s += fmt.Sprintf("%s: %s ", GPR(i), m.Reg[i])
	}

	return s
}

// GPR returns a general-purpose register's value.
func (m *Machine) GPR(r GPR) Word {
	return m.Reg[r]
}

// SetGPR writes a general-purpose register and updates STAT from its value, per spec.md §4.1's
// STAT update rule: ZERO if the value is zero, NEGATIVE if bit 15 is set, POSITIVE otherwise.
func (m *Machine) SetGPR(r GPR, val Word) {
	m.Reg[r] = val
	m.Reg[STAT] = Word(statusFor(val))
}

func statusFor(val Word) Status {
	switch {
	case val == 0:
		return StatusZero
	case val&0x8000 != 0:
		return StatusNegative
	default:
		return StatusPositive
	}
}

// PC returns the program counter.
func (m *Machine) PC() Word {
	return m.Reg[PC]
}

// Status returns the current status register value.
func (m *Machine) Status() Status {
	return Status(m.Reg[STAT])
}

// SetPC positions the program counter and clears STAT to ZERO, per spec.md §3.
func (m *Machine) SetPC(addr Word) {
	m.Reg[PC] = addr
	m.Reg[STAT] = Word(StatusZero)
}

// Load tags and writes a contiguous region of memory, capturing the base address if the
// segment is INT_HANDLER_TABLE (spec.md §3: "Interrupt table address: ... set when a memory
// region of segment INT_HANDLER_TABLE is loaded").
func (m *Machine) Load(segment Segment, addr Word, words []Word) error {
	slots := make([]Slot, len(words))
	for i, w := range words {
		slots[i] = Slot{Segment: segment, Word: w}
	}

	if err := m.Mem.Write(addr, slots); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if segment == SegmentIntHandlerTable {
		m.intTableBase = addr
		m.intTableSet = true
	}

	return nil
}

// Dump returns a read-only snapshot of memory.
func (m *Machine) Dump() []Slot {
	return m.Mem.Dump()
}

// InputSource returns the blocking byte mailbox the GETC trap reads from.
func (m *Machine) InputSource() *InputSource {
	return m.input
}
