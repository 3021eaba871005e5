// TestNewConsole passes a nil file, so it only exercises the ErrNoTTY path, whatever the test
// binary's standard input is. The raw-mode path has no automated test; the termtest tool
// (internal/termtest) exercises it by hand.
package tty_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lc16vm/internal/tty"
	"lc16vm/internal/vm"
)

func TestFeedBuffered(t *testing.T) {
	t.Parallel()

	src := vm.NewInputSource()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- tty.FeedBuffered(ctx, strings.NewReader("Ab"), src)
	}()

	b, ok := src.TryGet()
	for !ok {
		time.Sleep(time.Millisecond)
		b, ok = src.TryGet()
	}

	if b != 'A' {
		t.Errorf("first byte = %q, want %q", b, 'A')
	}

	b, ok = src.TryGet()
	for !ok {
		time.Sleep(time.Millisecond)
		b, ok = src.TryGet()
	}

	if b != 'b' {
		t.Errorf("second byte = %q, want %q", b, 'b')
	}

	select {
	case err := <-done:
		if err == nil {
			t.Error("FeedBuffered returned nil, want an EOF-derived error")
		}
	case <-time.After(time.Second):
		t.Error("FeedBuffered did not return after its input was exhausted")
	}
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	_, err := tty.NewConsole(nil)
	if err == nil {
		t.Skip("stdin appears to be a TTY; this test only exercises the ErrNoTTY path")
	}

	if !errors.Is(err, tty.ErrNoTTY) {
		t.Errorf("NewConsole(nil) = %v, want ErrNoTTY", err)
	}
}
