package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"lc16vm/internal/cli"
	"lc16vm/internal/image"
	"lc16vm/internal/log"
	"lc16vm/internal/shell"
	"lc16vm/internal/tty"
	"lc16vm/internal/vm"
)

// Run is the shell's entry point: it owns stdin, wires a machine and interrupt controller
// together, and drives the command loop described in spec.md §6.
func Run() cli.Command {
	return new(runCmd)
}

type runCmd struct {
	debug  bool
	quiet  bool
	demo   bool
	script string
	slots  int
}

func (runCmd) Description() string {
	return "run the shell command loop against a fresh machine"
}

func (runCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
run [ -demo ] [ -script file ] [ -slots n ] [ -debug | -quiet ]

Start the shell, the CPU, and the interrupt controller, and read shell commands
(vm load, vm set_pc, vm exec, vm int, vm getc, vm dump, ic int, ic int_ack)
from -script, or from stdin if -script is omitted.

With -demo, a small add program plus a matching interrupt handler is
loaded before the first command is read, so "vm set_pc 0" and "vm exec" have
something to run immediately.

When -script names a file, real stdin is left free and, if it's a terminal, is
put into raw mode so a "vm getc" command can read single keystrokes. When shell
commands themselves come from stdin (the default), there is no spare input
stream for raw keystrokes, so "vm getc" only succeeds after bytes have reached
the machine's input source some other way.`)

	return err
}

func (r *runCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	fs.BoolVar(&r.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&r.quiet, "quiet", false, "enable quiet output, errors only")
	fs.BoolVar(&r.demo, "demo", false, "preload the demonstration program and interrupt handler")
	fs.StringVar(&r.script, "script", "", "read shell commands from this file instead of stdin")
	fs.IntVar(&r.slots, "slots", 1<<12, "memory size in words, must be a power of two")

	return fs
}

func (r *runCmd) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	switch {
	case r.quiet:
		log.LogLevel.Set(log.Error)
	case r.debug:
		log.LogLevel.Set(log.Debug)
	}

	machine, err := vm.New(vm.WithLogger(logger), vm.WithSlotCount(r.slots))
	if err != nil {
		logger.Error("failed to initialize machine", "err", err)
		return 1
	}

	if r.demo {
		if err := image.Load(machine, image.Demo()); err != nil {
			logger.Error("failed to load demo image", "err", err)
			return 1
		}

		logger.Info("loaded demo image")
	}

	sys := shell.NewSystem(machine, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sysErrCh := make(chan error, 1)
	go func() { sysErrCh <- sys.Run(ctx) }()

	commands, restore, err := r.openCommandSource(ctx, machine, logger)
	if err != nil {
		logger.Error("failed to open command source", "err", err)
		return 1
	}
	defer restore()

	if err := shell.Run(commands, out, logger, sys); err != nil && !errors.Is(err, io.EOF) {
		logger.Error("shell stopped", "err", err)
	}

	cancel()

	if err := <-sysErrCh; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("system stopped", "err", err)
	}

	return 0
}

// openCommandSource picks where shell command lines come from, and, when a script file frees
// up real stdin, wires a raw console into the machine's input source for "vm getc". The
// returned restore func must be called once the shell loop has finished.
func (r *runCmd) openCommandSource(
	ctx context.Context, machine *vm.Machine, logger *log.Logger,
) (io.Reader, func(), error) {
	if r.script == "" {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(r.script)
	if err != nil {
		return nil, nil, err
	}

	console, err := tty.NewConsole(os.Stdin)
	if err != nil {
		logger.Debug("stdin is not a console, vm getc will only see bytes loaded another way",
			"err", err)

		return file, func() { file.Close() }, nil
	}

	go func() {
		if ferr := console.Feed(ctx, machine.InputSource()); ferr != nil {
			logger.Debug("console feed stopped", "err", ferr)
		}
	}()

	return file, func() { console.Restore(); file.Close() }, nil
}
