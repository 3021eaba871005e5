package vm

// ops.go implements the semantics of each opcode. Each operation is decoded from the fetched
// instruction and then executed against the machine; this single-stage shape is the part of
// the teacher's multi-stage (address/fetch/execute/store) pipeline this spec's simpler
// instructions still need — PC-relative addressing and register writeback, nothing more.

import (
	"fmt"
)

// operation is one decoded instruction, ready to run.
type operation interface {
	fmt.Stringer

	// Execute applies the instruction's effect to the machine. pc0 is the program counter of
	// the instruction being executed, captured before the generic fetch-increment — the base
	// every PC-relative computation in this instruction set uses (spec.md §9's resolved open
	// question).
	Execute(m *Machine, pc0 Word) error
}

// decode dispatches on the instruction's opcode and returns the operation to run.
func decode(ir Instruction) operation {
	switch ir.Opcode() {
	case OpBreak:
		return breakOp{}
	case OpAdd:
		return addOp{ir}
	case OpLoad:
		return loadOp{ir}
	case OpLoadIndirect:
		return loadIndirectOp{ir}
	case OpJump:
		return jumpOp{ir}
	case OpJumpIfSign:
		return branchOp{ir, StatusNegative}
	case OpLoadRegister:
		return loadRegisterOp{ir}
	case OpJumpIfZero:
		return branchOp{ir, StatusZero}
	case OpJumpIfNoSign:
		return branchOp{ir, StatusPositive}
	case OpTrap:
		return trapOp{ir}
	default:
		return reservedOp{}
	}
}

// breakOp halts the machine. Per spec.md §8's invariant, PC is left unchanged.
type breakOp struct{}

func (breakOp) String() string { return "BREAK" }

func (breakOp) Execute(m *Machine, pc0 Word) error {
	m.Reg[PC] = pc0
	m.Reg[STAT] = Word(StatusHalt)

	return nil
}

// addOp computes R[dr] = R[sr1] + (R[sr2] or a sign-extended 5-bit immediate), with two's
// complement wraparound.
type addOp struct{ ir Instruction }

func (op addOp) String() string { return fmt.Sprintf("ADD %s", Instruction(op.ir)) }

func (op addOp) Execute(m *Machine, _ Word) error {
	a := m.Reg[op.ir.SR1()]

	var b Word
	if op.ir.Mode() {
		b = op.ir.Imm5()
	} else {
		b = m.Reg[op.ir.SR2()]
	}

	m.SetGPR(op.ir.DR(), a+b)

	return nil
}

// loadOp loads an eight-bit sign-extended immediate into a register.
type loadOp struct{ ir Instruction }

func (op loadOp) String() string { return fmt.Sprintf("LOAD %s", Instruction(op.ir)) }

func (op loadOp) Execute(m *Machine, _ Word) error {
	m.SetGPR(op.ir.DR(), op.ir.Imm8())
	return nil
}

// loadIndirectOp loads the word at (pc0 + sign-extended offset), ignoring that slot's segment
// tag: reads are never blocked by segmentation.
type loadIndirectOp struct{ ir Instruction }

func (op loadIndirectOp) String() string { return fmt.Sprintf("LOAD_INDIRECT %s", Instruction(op.ir)) }

func (op loadIndirectOp) Execute(m *Machine, pc0 Word) error {
	addr := pc0 + op.ir.Offset9()

	w, err := m.Mem.ReadWord(addr)
	if err != nil {
		return fmt.Errorf("load_indirect: %w", err)
	}

	m.SetGPR(op.ir.DR(), w)

	return nil
}

// jumpOp sets PC to (pc0 + sign-extended offset), unconditionally and without touching STAT.
type jumpOp struct{ ir Instruction }

func (op jumpOp) String() string { return fmt.Sprintf("JUMP %s", Instruction(op.ir)) }

func (op jumpOp) Execute(m *Machine, pc0 Word) error {
	m.Reg[PC] = pc0 + op.ir.Offset9()
	return nil
}

// branchOp jumps to (pc0 + sign-extended offset) if STAT equals the configured condition;
// otherwise it falls through (the generic fetch-increment already left PC at pc0+1).
type branchOp struct {
	ir   Instruction
	when Status
}

func (op branchOp) String() string {
	return fmt.Sprintf("BRANCH(%s) %s", op.when, Instruction(op.ir))
}

func (op branchOp) Execute(m *Machine, pc0 Word) error {
	if Status(m.Reg[STAT]) == op.when {
		m.Reg[PC] = pc0 + op.ir.Offset9()
	}

	return nil
}

// loadRegisterOp copies R[sr] into R[dr].
type loadRegisterOp struct{ ir Instruction }

func (op loadRegisterOp) String() string { return fmt.Sprintf("LOAD_REGISTER %s", Instruction(op.ir)) }

func (op loadRegisterOp) Execute(m *Machine, _ Word) error {
	m.SetGPR(op.ir.DR(), m.Reg[op.ir.SR1()])
	return nil
}

// reservedOp is a defined no-op for opcodes 9..14. PC has already been advanced by the generic
// fetch-increment; nothing further happens.
type reservedOp struct{}

func (reservedOp) String() string { return "RESERVED" }

func (reservedOp) Execute(*Machine, Word) error { return nil }

// trapOp dispatches on the low eight bits of the instruction. HALT and GETC leave PC unchanged
// (rolled back to pc0, per spec.md §8's invariant); any other code is a defined no-op that
// leaves the generic fetch-increment standing.
type trapOp struct{ ir Instruction }

func (op trapOp) String() string { return fmt.Sprintf("TRAP %s", Instruction(op.ir)) }

func (op trapOp) Execute(m *Machine, pc0 Word) error {
	switch op.ir.TrapCode() {
	case TrapHalt:
		m.Reg[PC] = pc0
		m.Reg[STAT] = Word(StatusHalt)
	case TrapGetc:
		m.Reg[PC] = pc0
		m.Reg[STAT] = Word(StatusWaitingForInput)
	default:
		// Unknown trap code: no effect, PC already advanced.
	}

	return nil
}
