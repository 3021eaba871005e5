package shell

// system.go assembles the three communicating components spec.md §5 describes — shell, CPU,
// interrupt controller — each with exclusive ownership of its own state, talking only over
// channels. This collapses to two goroutines (the shell itself runs on the caller's goroutine,
// per spec.md §9's note that thread count is not part of the contract): one running the CPU's
// command loop, one running the interrupt controller.

import (
	"context"
	"fmt"

	"lc16vm/internal/ic"
	"lc16vm/internal/log"
	"lc16vm/internal/vm"
)

type request struct {
	cmd  Command
	resp chan response
}

type response struct {
	result string
	err    error
}

// System wires a machine and an interrupt controller together and exposes the channels the
// shell dispatches onto.
type System struct {
	machine    *vm.Machine
	controller *ic.Controller
	log        *log.Logger

	cmdCh     chan request
	raiseCh   chan ic.Raise
	ackCh     chan ic.Ack
	forwardCh chan ic.Raise
}

// NewSystem creates a system ready to Run.
func NewSystem(m *vm.Machine, logger *log.Logger) *System {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &System{
		machine:    m,
		controller: ic.New(logger),
		log:        logger,
		cmdCh:      make(chan request),
		raiseCh:    make(chan ic.Raise),
		ackCh:      make(chan ic.Ack),
		forwardCh:  make(chan ic.Raise),
	}
}

// Run starts the CPU and interrupt-controller loops and blocks until ctx is cancelled or both
// exit. It is meant to run on its own goroutine alongside a shell.Run loop driven from stdin.
func (s *System) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- s.controller.Run(ctx, s.raiseCh, s.ackCh, s.forwardCh) }()
	go func() { errCh <- s.runCPU(ctx) }()

	var err error
	for i := 0; i < 2; i++ {
		if e := <-errCh; e != nil && err == nil {
			err = e
		}
	}

	return err
}

func (s *System) runCPU(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req, ok := <-s.cmdCh:
			if !ok {
				return nil
			}

			result, err := req.cmd.Apply(s.machine)
			req.resp <- response{result: result, err: err}

		case raise, ok := <-s.forwardCh:
			if !ok {
				return nil
			}

			if err := s.machine.HandleInterrupt(raise.DeviceID, raise.InterruptID); err != nil {
				s.log.Error("forwarded interrupt failed", "raise", raise.String(), "err", err)
				continue
			}

			select {
			case s.ackCh <- ic.Ack{InterruptID: raise.InterruptID}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Dispatch runs a `vm` command on the CPU loop and waits for its result.
func (s *System) Dispatch(cmd Command) (string, error) {
	req := request{cmd: cmd, resp: make(chan response, 1)}
	s.cmdCh <- req

	resp := <-req.resp

	return resp.result, resp.err
}

// Raise sends an `ic int` message to the controller.
func (s *System) Raise(r ic.Raise) { s.raiseCh <- r }

// Ack sends an `ic int_ack` message to the controller.
func (s *System) Ack(a ic.Ack) { s.ackCh <- a }

// Machine returns the underlying machine, e.g. so a console driver can reach its InputSource.
func (s *System) Machine() *vm.Machine { return s.machine }

func (r request) String() string { return fmt.Sprintf("request{%s}", r.cmd) }
