// Command lc16vm is the command-line interface to the machine: a shell, a CPU executor, and an
// interrupt controller, wired together and driven from stdin.
package main

import (
	"context"
	"os"

	"lc16vm/internal/cli"
	"lc16vm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Run(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
