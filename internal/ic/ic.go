// Package ic implements the interrupt controller: the component that tracks pending interrupts
// and forwards raise/acknowledge traffic between the shell and the CPU.
package ic

import (
	"context"
	"fmt"

	"lc16vm/internal/log"
)

// Raise is the `int(device_id, interrupt_id)` message: a request to deliver an interrupt.
type Raise struct {
	DeviceID    uint8
	InterruptID uint16
}

// Ack is the `int_ack(interrupt_id)` message: the CPU reporting a handler ran to completion.
type Ack struct {
	InterruptID uint16
}

// Controller tracks interrupts pending delivery. It owns its state exclusively; the only way to
// observe or mutate it is through its channels, run by Run.
type Controller struct {
	log *log.Logger

	pending map[uint16]uint8
}

// New creates a controller with no pending interrupts.
func New(logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Controller{log: logger, pending: make(map[uint16]uint8)}
}

// Pending reports whether an interrupt is currently awaiting acknowledgement, and which device
// raised it.
func (c *Controller) Pending(interruptID uint16) (uint8, bool) {
	dev, ok := c.pending[interruptID]
	return dev, ok
}

// Run drives the controller's single-threaded event loop: interrupts raised on raiseCh are
// recorded and forwarded to the CPU on toCPU; acknowledgements on ackCh clear the mapping. The
// loop exits when ctx is done or when raiseCh or ackCh is closed, whichever comes first.
func (c *Controller) Run(ctx context.Context, raiseCh <-chan Raise, ackCh <-chan Ack, toCPU chan<- Raise) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raise, ok := <-raiseCh:
			if !ok {
				return nil
			}

			c.pending[raise.InterruptID] = raise.DeviceID
			c.log.Debug("interrupt raised", "device", raise.DeviceID, "int", raise.InterruptID)

			select {
			case toCPU <- raise:
			case <-ctx.Done():
				return ctx.Err()
			}

		case ack, ok := <-ackCh:
			if !ok {
				return nil
			}

			if _, found := c.pending[ack.InterruptID]; !found {
				c.log.Warn("acknowledgement for unknown interrupt", "int", ack.InterruptID)
				continue
			}

			delete(c.pending, ack.InterruptID)
			c.log.Debug("interrupt acknowledged", "int", ack.InterruptID)
		}
	}
}

func (r Raise) String() string {
	return fmt.Sprintf("int device=%d int=%d", r.DeviceID, r.InterruptID)
}

func (a Ack) String() string {
	return fmt.Sprintf("int_ack int=%d", a.InterruptID)
}
