package main

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/qntx-hooks/cmd/hookgen/commands"
	"github.com/teranos/qntx-hooks/logger"
)

// flagsEnv holds flags prepended to every invocation, e.g. HOOKGEN_FLAGS="-v --json".
const flagsEnv = "HOOKGEN_FLAGS"

func main() {
	args := os.Args[1:]
	if extra := os.Getenv(flagsEnv); extra != "" {
		split, err := shellquote.Split(extra)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid %s: %v\n", flagsEnv, err)
			os.Exit(2)
		}
		args = append(split, args...)
	}

	commands.RootCmd.SetArgs(args)
	err := commands.RootCmd.Execute()
	commands.PrintError(os.Stderr, err)
	logger.Cleanup()
	os.Exit(commands.ExitCode(err))
}
