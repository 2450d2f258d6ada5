package shapes

import (
	"github.com/brimdata/span/cli/genflags"
	"github.com/brimdata/span/derive"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "shapes [flags] [dir]",
	Short: "print the shapes spangen derives from Go source",
	Long: `
The shapes command inspects the Go package in dir (default: the current
directory) as spangen would and prints the shapes of the selected types as a
YAML shape description.  The output is accepted by "spangen describe".
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var genFlags genflags.Flags

func init() {
	genFlags.SetSelectFlags(Cmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := genFlags.Options()
	if err != nil {
		return err
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	pkg, err := derive.InspectDir(dir, opts)
	if err != nil {
		return err
	}
	if err := derive.Check(pkg); err != nil {
		return err
	}
	b, err := derive.Describe(pkg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
