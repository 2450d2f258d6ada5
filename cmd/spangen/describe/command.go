package describe

import (
	"os"
	"path/filepath"

	"github.com/brimdata/span/cli/genflags"
	"github.com/brimdata/span/cmd/spangen/root"
	"github.com/brimdata/span/derive"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var Cmd = &cobra.Command{
	Use:   "describe [flags] file.yaml ...",
	Short: "derive methods from shape descriptions",
	Long: `
The describe command writes Pos and End methods for the types listed in
YAML shape descriptions rather than found in Go source.  A description
names the package and, for each type, its type parameters and the
ordered names of its fields, or its variants each with their own fields:

  package: calc
  types:
    - name: Pair
      params: [{name: T, constraint: span.Node}]
      fields: [Left, Right]
    - name: Expr
      variants:
        - {name: Num, fields: [Lit]}
        - {name: Paren, fields: [Open, X, Close]}

A type may carry "only: pos" or "only: end" to derive a single method.
The output for each description is written to span_gen.go in the
description's directory.  The "spangen shapes" command prints the
description of an existing package.
`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var genFlags genflags.Flags

func init() {
	genFlags.SetOutputFlags(Cmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := genFlags.Options()
	if err != nil {
		return err
	}
	logger, err := root.OpenLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	var errs error
	for _, path := range args {
		errs = multierr.Append(errs, generate(path, opts, logger.With(zap.String("description", path))))
	}
	return errs
}

func generate(path string, opts derive.Options, logger *zap.Logger) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	pkg, err := derive.ParseDescription(path, b)
	if err != nil {
		return err
	}
	logger.Debug("Parsed description", zap.String("package", pkg.Name), zap.Int("types", len(pkg.Types)))
	src, err := derive.Generate(pkg, opts)
	if err != nil {
		return err
	}
	return genFlags.Emit(genFlags.Path(filepath.Dir(path)), src, logger)
}
