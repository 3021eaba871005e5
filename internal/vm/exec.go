package vm

// exec.go implements the fetch/decode/execute cycle: one call to Step runs at most one
// instruction.

import (
	"fmt"

	"lc16vm/internal/log"
)

// Step executes a single instruction and returns the resulting status. If the machine is
// already halted or waiting for input, Step is a no-op that returns the current status, per
// spec.md §3 invariant 5.
func (m *Machine) Step() (Status, error) {
	if cur := Status(m.Reg[STAT]); cur.Stopped() {
		return cur, nil
	}

	pc0 := m.Reg[PC]

	w, err := m.Mem.ReadWord(pc0)
	if err != nil {
		return Status(m.Reg[STAT]), fmt.Errorf("fetch: %w", err)
	}

	m.Reg[PC] = pc0 + 1

	ir := Instruction(w)
	op := decode(ir)

	m.log.Debug("decoded", "OP", op.String(), "PC0", pc0.String())

	if err := op.Execute(m, pc0); err != nil {
		m.log.Error("execute failed", "OP", op.String(), "err", err)
		return Status(m.Reg[STAT]), fmt.Errorf("execute: %w", err)
	}

	m.log.Debug("executed", "OP", op.String(), log.Group("STATE", m))

	return Status(m.Reg[STAT]), nil
}
