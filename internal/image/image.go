// Package image builds small, pre-built machine images from literal words — a demo program and
// a matching interrupt handler table — without an assembler. It replaces the teacher's
// monitor/halt.go approach of assembling trap-handler routines from source; spec.md's TRAP
// semantics are pure STAT transitions, so there is no handler subroutine to assemble, only a
// handful of instruction words to lay out by hand.
package image

import "lc16vm/internal/vm"

// Region is a contiguous, segment-tagged block of words ready to hand to Machine.Load.
type Region struct {
	Segment vm.Segment
	Addr    vm.Word
	Words   []vm.Word
}

// Demo returns the regions for a small demonstration program: it adds two immediates, raises
// interrupt 7 via a TRAP-adjacent convention (left to the caller — the program itself only
// computes and halts), and a handler table entry that an `ic int` can dispatch to.
//
// Layout:
//
//	0x0000  PROGRAM_CODE   LOAD R0, #3 ; LOAD R1, #6 ; ADD R2, R0, R1 ; BREAK
//	0x0100  INT_PROGRAM_CODE  LOAD R3, #1 ; BREAK           (interrupt 7's handler)
//	0x0200  INT_HANDLER_TABLE (7, 0x0100)
//	0x0202  INT_DATA       0                                (table terminator)
func Demo() []Region {
	return []Region{
		{
			Segment: vm.SegmentProgramCode,
			Addr:    0x0000,
			Words: []vm.Word{
				vm.Word(vm.NewInstruction(vm.OpLoad, uint16(vm.R0)<<9|3)),
				vm.Word(vm.NewInstruction(vm.OpLoad, uint16(vm.R1)<<9|6)),
				vm.Word(vm.NewInstruction(vm.OpAdd, uint16(vm.R2)<<9|uint16(vm.R1))),
				vm.Word(vm.NewInstruction(vm.OpBreak, 0)),
			},
		},
		{
			Segment: vm.SegmentIntProgramCode,
			Addr:    0x0100,
			Words: []vm.Word{
				vm.Word(vm.NewInstruction(vm.OpLoad, uint16(vm.R3)<<9|1)),
				vm.Word(vm.NewInstruction(vm.OpBreak, 0)),
			},
		},
		{
			Segment: vm.SegmentIntHandlerTable,
			Addr:    0x0200,
			Words:   []vm.Word{7, 0x0100},
		},
		{
			Segment: vm.SegmentIntData,
			Addr:    0x0202,
			Words:   []vm.Word{0},
		},
	}
}

// Load writes every region of an image into a machine, in order.
func Load(m *vm.Machine, regions []Region) error {
	for _, r := range regions {
		if err := m.Load(r.Segment, r.Addr, r.Words); err != nil {
			return err
		}
	}

	return nil
}
