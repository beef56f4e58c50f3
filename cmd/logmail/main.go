package main

import (
	"os"

	"github.com/telekom/logmail/pkg/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := cmd.NewRootCommand(cmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
