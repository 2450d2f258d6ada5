package main

import (
	"os"

	"github.com/brimdata/span/cli/clierrors"
	"github.com/brimdata/span/cmd/spangen/describe"
	"github.com/brimdata/span/cmd/spangen/root"
	"github.com/brimdata/span/cmd/spangen/shapes"
)

func main() {
	root.Spangen.AddCommand(describe.Cmd, shapes.Cmd)
	if err := root.Spangen.Execute(); err != nil {
		clierrors.Print(os.Stderr, err)
		os.Exit(1)
	}
}
