// Termtest is a testing tool for Unix terminal I/O. Lacking simple PTY support, running this
// tool manually is easier than writing automated tests.
package main

import (
	"context"
	"os"
	"time"

	"lc16vm/internal/log"
	"lc16vm/internal/tty"
	"lc16vm/internal/vm"
)

var logger = log.DefaultLogger()

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src := vm.NewInputSource()

	console, err := tty.NewConsole(os.Stdin)
	if err != nil {
		logger.Error("not a tty, falling back to buffered input", "err", err)

		if ferr := tty.FeedBuffered(ctx, os.Stdin, src); ferr != nil {
			logger.Error(ferr.Error())
			os.Exit(1)
		}

		return
	}

	defer console.Restore()

	logger.Info("Reading keystrokes. Type keys.")

	go func() {
		if ferr := console.Feed(ctx, src); ferr != nil {
			logger.Debug("feed stopped", "err", ferr)
		}
	}()

	poll := time.NewTicker(100 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			if b, ok := src.TryGet(); ok {
				logger.Info("key", "byte", b)
			}
		case <-ctx.Done():
			logger.Info("Done")
			return
		}
	}
}
