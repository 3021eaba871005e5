package vm

// harness_test.go provides a small test harness, mirroring the teacher's own
// NewTestHarness/test_test.go convention of building a ready-to-use machine for table-driven
// instruction tests.

import (
	"testing"
)

type harness struct {
	*testing.T
}

func newHarness(t *testing.T) harness {
	return harness{t}
}

// make builds a fresh machine with the smallest usable memory, unless the test needs more.
func (h harness) make(slots int) *Machine {
	h.Helper()

	if slots == 0 {
		slots = MinSlotCount
	}

	m, err := New(WithSlotCount(slots))
	if err != nil {
		h.Fatalf("new machine: %s", err)
	}

	return m
}

// loadProgram loads a sequence of instructions as PROGRAM_CODE starting at addr and points PC
// at it.
func (h harness) loadProgram(m *Machine, addr Word, instrs ...Instruction) {
	h.Helper()

	words := make([]Word, len(instrs))
	for i, ir := range instrs {
		words[i] = Word(ir)
	}

	if err := m.Load(SegmentProgramCode, addr, words); err != nil {
		h.Fatalf("load program: %s", err)
	}

	m.SetPC(addr)
}

// run steps the machine until STAT leaves ZERO/POSITIVE/NEGATIVE or a step limit is reached.
func (h harness) run(m *Machine, limit int) Status {
	h.Helper()

	var status Status

	for i := 0; i < limit; i++ {
		var err error

		status, err = m.Step()
		if err != nil {
			h.Fatalf("step %d: %s", i, err)
		}

		if status.Stopped() {
			return status
		}
	}

	h.Fatalf("did not halt within %d steps", limit)

	return status
}
