package vm

import "testing"

func TestSext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    Word
		n    uint8
		want Word
	}{
		{0x001f, 5, 0xffff},  // -1 in 5 bits
		{0x000f, 5, 0x000f},  // 15, sign bit clear
		{0x00ff, 8, 0xffff},  // -1 in 8 bits
		{0x0080, 8, 0xff80},  // -128 in 8 bits
		{0x01ff, 9, 0xffff},  // -1 in 9 bits
		{0x0000, 5, 0x0000},
	}

	for _, c := range cases {
		if got := sext(c.v, c.n); got != c.want {
			t.Errorf("sext(%#04x, %d) = %#04x, want %#04x", uint16(c.v), c.n, uint16(got), uint16(c.want))
		}
	}
}

func TestStatusStopped(t *testing.T) {
	t.Parallel()

	stopped := map[Status]bool{
		StatusZero:            false,
		StatusPositive:        false,
		StatusNegative:        false,
		StatusHalt:            true,
		StatusWaitingForInput: true,
	}

	for s, want := range stopped {
		if got := s.Stopped(); got != want {
			t.Errorf("%s.Stopped() = %v, want %v", s, got, want)
		}
	}
}

func TestGPRString(t *testing.T) {
	t.Parallel()

	if got := R3.String(); got != "R3" {
		t.Errorf("R3.String() = %q, want %q", got, "R3")
	}
}
