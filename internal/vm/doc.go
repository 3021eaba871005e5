/*
Package vm implements the execution engine of the LC16 simulator: a register-based CPU, its
segmented memory, the interrupt-table dispatch protocol, and the trap protocol for halting and
blocking input.

# CPU

The machine has ten registers, addressed 0 through 9: the first eight (R0..R7) are
general-purpose, the ninth is the program counter (PC), and the tenth is the status register
(STAT). STAT holds one of five small integers recording whether the last general-purpose write
was zero, positive, or negative, or whether the machine is halted or blocked waiting for input.

# Memory

Memory is a fixed array of slots. Every slot carries a segment tag alongside its word. Segments
exist to protect structural regions — interrupt handler tables, program code — from being
silently overwritten by a later, unrelated load: a write to a slot that already carries a
different, non-zero tag fails. The tag has no bearing on how an instruction may use a slot's
word; it is advisory to the CPU, not enforced by it.

# Interrupts and traps

Interrupts and traps are two different protocols. An interrupt is raised externally (through the
interrupt controller, a separate component from the CPU) and diverts control to a handler found
by scanning a flat table of (interrupt id, handler address) pairs; the CPU runs the handler to
completion before resuming the interrupted program. A trap is a single instruction requesting a
synchronous host service — halting the machine, or blocking until a byte of external input
arrives — and has no handler code of its own.
*/
package vm
