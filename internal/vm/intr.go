package vm

// intr.go implements interrupt dispatch: scanning the interrupt handler table and running a
// handler to completion. This is distinct from the trap protocol in ops.go — there is no
// handler code for a trap, only a STAT transition.

import (
	"errors"
	"fmt"
)

// Errors returned by interrupt dispatch.
var (
	ErrInterrupt = errors.New("interrupt error")

	// ErrHandlerTableNotConfigured is returned when HandleInterrupt is called before any
	// INT_HANDLER_TABLE segment has been loaded.
	ErrHandlerTableNotConfigured = fmt.Errorf("%w: handler table not configured", ErrInterrupt)

	// ErrMalformedHandlerTable is returned when a matching entry's handler-address slot isn't
	// tagged INT_HANDLER_TABLE.
	ErrMalformedHandlerTable = fmt.Errorf("%w: malformed handler table", ErrInterrupt)

	// ErrInterruptNotFound is returned when the table scan reaches its terminator without
	// matching the requested interrupt id.
	ErrInterruptNotFound = fmt.Errorf("%w: interrupt id not registered", ErrInterrupt)

	// ErrHandlerBlockedOnInput is returned if a handler itself executes TRAP GETC. The
	// protocol (spec.md §4.3) only specifies running to HALT; nested blocking traps inside a
	// handler are outside that contract, so this is reported rather than spun on forever.
	ErrHandlerBlockedOnInput = fmt.Errorf("%w: handler blocked on GETC", ErrInterrupt)
)

// HandleInterrupt diverts control to the handler registered for interruptID, runs it to
// completion, and restores the interrupted context. deviceID has no effect on dispatch; it is
// carried through only for logging (supplementing spec.md from original_source/src/int.rs,
// which keeps the raising device in its trace output).
func (m *Machine) HandleInterrupt(deviceID uint8, interruptID uint16) error {
	if !m.intTableSet {
		return ErrHandlerTableNotConfigured
	}

	handlerAddr, err := m.findHandler(interruptID)
	if err != nil {
		m.log.Error("interrupt dispatch failed", "device", deviceID, "int", interruptID, "err", err)
		return err
	}

	savedPC := m.Reg[PC]

	m.log.Debug("interrupt dispatch", "device", deviceID, "int", interruptID, "handler", handlerAddr.String())

	m.Reg[PC] = handlerAddr
	m.Reg[STAT] = Word(StatusZero)

	for Status(m.Reg[STAT]) != StatusHalt {
		status, err := m.Step()
		if err != nil {
			return fmt.Errorf("handler: %w", err)
		}

		if status == StatusWaitingForInput {
			return ErrHandlerBlockedOnInput
		}
	}

	m.Reg[PC] = savedPC + 1
	m.Reg[STAT] = Word(StatusZero)

	return nil
}

// findHandler scans the flat (interrupt_id, handler_address) table for interruptID, stopping
// at the first slot not tagged INT_HANDLER_TABLE.
func (m *Machine) findHandler(interruptID uint16) (Word, error) {
	idx := m.intTableBase

	for {
		entry, err := m.Mem.Read(idx, 1)
		if err != nil || entry[0].Segment != SegmentIntHandlerTable {
			return 0, ErrInterruptNotFound
		}

		addrSlot, err := m.Mem.Read(idx+1, 1)
		if err != nil {
			return 0, fmt.Errorf("%w: truncated table", ErrMalformedHandlerTable)
		}

		if uint16(entry[0].Word) == interruptID {
			if addrSlot[0].Segment != SegmentIntHandlerTable {
				return 0, ErrMalformedHandlerTable
			}

			return addrSlot[0].Word, nil
		}

		if addrSlot[0].Segment != SegmentIntHandlerTable {
			return 0, ErrInterruptNotFound
		}

		idx += 2
	}
}
