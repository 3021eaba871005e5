package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	"lc16vm/internal/ic"
	"lc16vm/internal/log"
	"lc16vm/internal/vm"
)

func newTestSystem(t *testing.T) (*System, context.Context, context.CancelFunc) {
	t.Helper()

	m, err := vm.New(vm.WithSlotCount(1024))
	if err != nil {
		t.Fatalf("vm.New: %s", err)
	}

	sys := NewSystem(m, log.DefaultLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	go sys.Run(ctx)

	return sys, ctx, cancel
}

func TestSystemDispatchExecAndSetPC(t *testing.T) {
	t.Parallel()

	sys, _, cancel := newTestSystem(t)
	defer cancel()

	m := sys.Machine()
	if err := m.Load(vm.SegmentProgramCode, 0, []vm.Word{
		vm.Word(vm.NewInstruction(vm.OpLoad, 3)),
		vm.Word(vm.NewInstruction(vm.OpBreak, 0)),
	}); err != nil {
		t.Fatalf("Load: %s", err)
	}

	if _, err := sys.Dispatch(setPCCmd{addr: 0}); err != nil {
		t.Fatalf("set_pc: %s", err)
	}

	if _, err := sys.Dispatch(execCmd{}); err != nil {
		t.Fatalf("exec: %s", err)
	}

	result, err := sys.Dispatch(execCmd{})
	if err != nil {
		t.Fatalf("exec: %s", err)
	}

	if m.Status() != vm.StatusHalt {
		t.Errorf("status = %s, want HALT; result: %s", m.Status(), result)
	}

	if got := m.GPR(vm.R0); got != 3 {
		t.Errorf("R0 = %s, want 3", got)
	}
}

// TestSystemInterruptDispatchViaIC covers the IC-mediated path: an `ic int` raises the
// interrupt, the controller forwards it to the CPU, the CPU runs the handler and acks, and the
// controller clears its pending entry.
func TestSystemInterruptDispatchViaIC(t *testing.T) {
	t.Parallel()

	sys, _, cancel := newTestSystem(t)
	defer cancel()

	m := sys.Machine()

	if err := m.Load(vm.SegmentProgramCode, 100, []vm.Word{
		vm.Word(vm.NewInstruction(vm.OpLoad, 3<<9|1)), // LOAD R3, #1
		vm.Word(vm.NewInstruction(vm.OpBreak, 0)),
	}); err != nil {
		t.Fatalf("load handler: %s", err)
	}

	if err := m.Load(vm.SegmentIntHandlerTable, 200, []vm.Word{7, 100}); err != nil {
		t.Fatalf("load handler table entry: %s", err)
	}

	if err := m.Load(vm.SegmentIntData, 202, []vm.Word{0}); err != nil {
		t.Fatalf("load terminator: %s", err)
	}

	if _, err := sys.Dispatch(setPCCmd{addr: 0}); err != nil {
		t.Fatalf("set_pc: %s", err)
	}

	raised := make(chan struct{})

	go func() {
		sys.Raise(ic.Raise{DeviceID: 1, InterruptID: 7})
		close(raised)
	}()

	select {
	case <-raised:
	case <-time.After(2 * time.Second):
		t.Fatal("Raise did not return")
	}

	deadline := time.After(2 * time.Second)

	for {
		if m.GPR(vm.R3) == 1 {
			break
		}

		select {
		case <-deadline:
			t.Fatalf("handler did not run: R3 = %s", m.GPR(vm.R3))
		case <-time.After(10 * time.Millisecond):
		}
	}

	if _, ok := sys.controller.Pending(7); ok {
		t.Error("interrupt 7 still pending after the handler completed and acked")
	}
}

func TestSystemGetcCommand(t *testing.T) {
	t.Parallel()

	sys, _, cancel := newTestSystem(t)
	defer cancel()

	m := sys.Machine()
	if err := m.Load(vm.SegmentProgramCode, 0, []vm.Word{
		vm.Word(vm.NewInstruction(vm.OpTrap, uint16(vm.TrapGetc))),
	}); err != nil {
		t.Fatalf("load: %s", err)
	}

	if _, err := sys.Dispatch(setPCCmd{addr: 0}); err != nil {
		t.Fatalf("set_pc: %s", err)
	}

	if _, err := sys.Dispatch(execCmd{}); err != nil {
		t.Fatalf("exec: %s", err)
	}

	if m.Status() != vm.StatusWaitingForInput {
		t.Fatalf("status = %s, want WAITING_FOR_INPUT", m.Status())
	}

	if _, err := sys.Dispatch(getcCmd{}); err == nil {
		t.Fatal("getc with no pending byte should fail")
	}

	m.InputSource().Put('A')

	result, err := sys.Dispatch(getcCmd{})
	if err != nil {
		t.Fatalf("getc: %s", err)
	}

	if m.GPR(vm.R0) != 'A' {
		t.Errorf("R0 = %s, want 'A'; result: %s", m.GPR(vm.R0), result)
	}

	if m.Status() != vm.StatusZero {
		t.Errorf("status after getc = %s, want ZERO", m.Status())
	}
}

// TestRunThroughShellGrammar drives the whole stack through the line grammar, covering the
// simple-add end-to-end scenario from spec.md §8.
func TestRunThroughShellGrammar(t *testing.T) {
	t.Parallel()

	m, err := vm.New(vm.WithSlotCount(vm.MinSlotCount))
	if err != nil {
		t.Fatalf("vm.New: %s", err)
	}

	if err := m.Load(vm.SegmentProgramCode, 0, []vm.Word{
		vm.Word(vm.NewInstruction(vm.OpLoad, 3)),
		vm.Word(vm.NewInstruction(vm.OpLoad, 1<<9|6)),
		vm.Word(vm.NewInstruction(vm.OpAdd, 2<<9|1)),
		vm.Word(vm.NewInstruction(vm.OpBreak, 0)),
	}); err != nil {
		t.Fatalf("load: %s", err)
	}

	sys := NewSystem(m, log.DefaultLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go sys.Run(ctx)

	in := strings.NewReader("vm set_pc 0\nvm exec\nvm exec\nvm exec\nvm exec\n")

	var out strings.Builder

	if err := Run(in, &out, log.DefaultLogger(), sys); err != nil {
		t.Fatalf("Run: %s", err)
	}

	if m.GPR(vm.R2) != 9 {
		t.Errorf("R2 = %s, want 9; transcript:\n%s", m.GPR(vm.R2), out.String())
	}

	if m.Status() != vm.StatusHalt {
		t.Errorf("status = %s, want HALT", m.Status())
	}
}
