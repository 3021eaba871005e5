// Package shell implements the line-oriented command grammar described in spec.md §6: parsing
// whitespace-separated tokens into commands and routing them to the CPU or the interrupt
// controller.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lc16vm/internal/ic"
	"lc16vm/internal/log"
	"lc16vm/internal/vm"
)

// Errors returned while parsing or applying a shell line.
var (
	ErrParse              = errors.New("parse error")
	ErrUnknownCommand     = fmt.Errorf("%w: unknown command", ErrParse)
	ErrNotWaitingForInput = errors.New("machine is not waiting for input")
	ErrNoInputAvailable   = errors.New("no input byte available")
)

// Parse tokenizes a shell line and returns either a vm Command or an ic message, depending on
// the target prefix ("vm" or "ic"). At most one of cmd, raise and ack is non-nil; all three are
// nil when err is non-nil or the line is blank (a blank line also returns a nil err).
func Parse(line string) (cmd Command, raise *ic.Raise, ack *ic.Ack, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil, nil, nil
	}

	target, verb, args := fields[0], "", fields[1:]
	if len(args) > 0 {
		verb, args = args[0], args[1:]
	}

	switch target {
	case "vm":
		cmd, err = parseVM(verb, args)
		return cmd, nil, nil, err
	case "ic":
		raise, ack, err = parseIC(verb, args)
		return nil, raise, ack, err
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
}

func parseVM(verb string, args []string) (Command, error) {
	switch verb {
	case "load":
		if len(args) != 3 {
			return nil, fmt.Errorf("%w: vm load <file> <segment> <addr>", ErrParse)
		}

		segment, err := parseU8(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: segment: %s", ErrParse, err)
		}

		addr, err := parseU16(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: addr: %s", ErrParse, err)
		}

		return loadCmd{file: args[0], segment: vm.Segment(segment), addr: vm.Word(addr)}, nil

	case "set_pc":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: vm set_pc <addr>", ErrParse)
		}

		addr, err := parseU16(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: addr: %s", ErrParse, err)
		}

		return setPCCmd{addr: vm.Word(addr)}, nil

	case "exec":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: vm exec takes no arguments", ErrParse)
		}

		return execCmd{}, nil

	case "int":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: vm int <dev> <int>", ErrParse)
		}

		dev, err := parseU8(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: dev: %s", ErrParse, err)
		}

		id, err := parseU16(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: int: %s", ErrParse, err)
		}

		return intCmd{dev: dev, id: id}, nil

	case "getc":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: vm getc takes no arguments", ErrParse)
		}

		return getcCmd{}, nil

	case "dump":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: vm dump takes no arguments", ErrParse)
		}

		return dumpCmd{}, nil

	default:
		return nil, fmt.Errorf("%w: vm %s", ErrUnknownCommand, verb)
	}
}

func parseIC(verb string, args []string) (*ic.Raise, *ic.Ack, error) {
	switch verb {
	case "int":
		if len(args) != 2 {
			return nil, nil, fmt.Errorf("%w: ic int <dev> <int>", ErrParse)
		}

		dev, err := parseU8(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: dev: %s", ErrParse, err)
		}

		id, err := parseU16(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: int: %s", ErrParse, err)
		}

		return &ic.Raise{DeviceID: dev, InterruptID: id}, nil, nil

	case "int_ack":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("%w: ic int_ack <int>", ErrParse)
		}

		id, err := parseU16(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: int: %s", ErrParse, err)
		}

		return nil, &ic.Ack{InterruptID: id}, nil

	default:
		return nil, nil, fmt.Errorf("%w: ic %s", ErrUnknownCommand, verb)
	}
}

func parseU8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	return uint8(n), err
}

func parseU16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	return uint16(n), err
}

// Run reads lines from in until EOF, parsing and dispatching each. Parse errors and unknown
// commands are reported to out and do not stop the loop, per spec.md §7; the loop itself returns
// a non-nil error only for a genuine I/O failure reading in.
func Run(in io.Reader, out io.Writer, logger *log.Logger, sys *System) error {
	lines := bufio.NewScanner(in)

	for lines.Scan() {
		line := lines.Text()

		cmd, raise, ack, err := Parse(line)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			logger.Warn("shell parse error", "line", line, "err", err)

			continue
		}

		switch {
		case cmd != nil:
			result, err := sys.Dispatch(cmd)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				continue
			}

			fmt.Fprintln(out, result)

		case raise != nil:
			sys.Raise(*raise)
			fmt.Fprintf(out, "%s\n", raise)

		case ack != nil:
			sys.Ack(*ack)
			fmt.Fprintf(out, "%s\n", ack)
		}
	}

	return lines.Err()
}
