package main

import (
	"fmt"
	"os"

	"github.com/graph-guard/cmset/pkg/cli"
)

func main() {
	w := os.Stdout
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandRun:
		if !run(w, c) {
			os.Exit(1)
		}
	case cli.CommandVersion:
		fmt.Fprintln(w, cli.Version)
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
}
