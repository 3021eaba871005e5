package shell

import (
	"errors"
	"testing"

	"lc16vm/internal/vm"
)

func TestParseVMCommands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		want Command
	}{
		{"vm load prog.bin 5 100", loadCmd{file: "prog.bin", segment: vm.SegmentProgramCode, addr: 100}},
		{"vm set_pc 42", setPCCmd{addr: 42}},
		{"vm exec", execCmd{}},
		{"vm int 1 7", intCmd{dev: 1, id: 7}},
		{"vm getc", getcCmd{}},
		{"vm dump", dumpCmd{}},
	}

	for _, c := range cases {
		cmd, raise, ack, err := Parse(c.line)
		if err != nil {
			t.Fatalf("Parse(%q): %s", c.line, err)
		}

		if raise != nil || ack != nil {
			t.Fatalf("Parse(%q) returned an ic message for a vm command", c.line)
		}

		if cmd != c.want {
			t.Errorf("Parse(%q) = %#v, want %#v", c.line, cmd, c.want)
		}
	}
}

func TestParseICCommands(t *testing.T) {
	t.Parallel()

	cmd, raise, ack, err := Parse("ic int 1 7")
	if err != nil || cmd != nil || ack != nil {
		t.Fatalf("Parse(ic int): cmd=%v raise=%v ack=%v err=%v", cmd, raise, ack, err)
	}

	if raise == nil || raise.DeviceID != 1 || raise.InterruptID != 7 {
		t.Errorf("Parse(ic int) raise = %+v, want {1 7}", raise)
	}

	cmd, raise, ack, err = Parse("ic int_ack 7")
	if err != nil || cmd != nil || raise != nil {
		t.Fatalf("Parse(ic int_ack): cmd=%v raise=%v ack=%v err=%v", cmd, raise, ack, err)
	}

	if ack == nil || ack.InterruptID != 7 {
		t.Errorf("Parse(ic int_ack) ack = %+v, want {7}", ack)
	}
}

func TestParseEmptyLine(t *testing.T) {
	t.Parallel()

	cmd, raise, ack, err := Parse("   ")
	if cmd != nil || raise != nil || ack != nil || err != nil {
		t.Errorf("Parse(blank) = %v, %v, %v, %v, want all nil", cmd, raise, ack, err)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []string{
		"gpu exec",
		"vm nonsense",
		"vm set_pc",
		"vm set_pc not-a-number",
		"vm load",
		"vm exec extra",
		"ic nonsense",
		"ic int 1",
		"ic int_ack",
	}

	for _, line := range cases {
		_, _, _, err := Parse(line)
		if !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) = %v, want ErrParse", line, err)
		}
	}
}
