package root

import (
	"os"
	"runtime"

	"github.com/brimdata/span/cli/genflags"
	"github.com/brimdata/span/cli/logflags"
	"github.com/brimdata/span/derive"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var Spangen = &cobra.Command{
	Use:   "spangen [flags] [dir ...]",
	Short: "derive Pos and End methods for syntax-tree types",
	Long: `
The spangen command writes Pos and End methods for the syntax-tree types
of the Go packages in the given directories (default: the current
directory, which is the package directory when run by go generate).

A struct type marked with a //span:derive line in its doc comment gets a
Pos method returning the Pos of its first field and an End method returning
the End of its last field.  Blank fields and fields tagged span:"-" are
skipped.  An interface type marked the same way is a union: every struct
in the package declaring one of the interface's unexported marker methods
gets the methods.  Follow the directive with "pos" or "end" to derive
only that method.  Methods a type already declares are not generated.

Use --type instead of directives to name the types explicitly.

The methods of each package are written to span_gen.go in its directory.
A span_gen.go left over in a package with nothing to derive is removed.
With --check, nothing is written and spangen fails with a diff for each
file that is out of date.

A typical use is a line like this in the package:

  //go:generate go run github.com/brimdata/span/cmd/spangen
`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var (
	logFlags logflags.Flags
	genFlags genflags.Flags
)

func init() {
	logFlags.SetFlags(Spangen.PersistentFlags())
	genFlags.SetSelectFlags(Spangen.Flags())
	genFlags.SetOutputFlags(Spangen.Flags())
}

// OpenLogger opens the logger configured by the persistent log flags,
// which every subcommand shares.
func OpenLogger() (*zap.Logger, error) {
	return logFlags.Open()
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := genFlags.Options()
	if err != nil {
		return err
	}
	logger, err := OpenLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if gofile := os.Getenv("GOFILE"); gofile != "" {
		logger.Debug("Running under go generate", zap.String("file", gofile), zap.String("package", os.Getenv("GOPACKAGE")))
	}
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	errs := make([]error, len(dirs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, dir := range dirs {
		k, dir := k, dir
		g.Go(func() error {
			errs[k] = generate(dir, opts, logger.With(zap.String("dir", dir)))
			return nil
		})
	}
	g.Wait()
	return multierr.Combine(errs...)
}

func generate(dir string, opts derive.Options, logger *zap.Logger) error {
	pkg, err := derive.InspectDir(dir, opts)
	if err != nil {
		return err
	}
	if len(pkg.Types) == 0 {
		logger.Warn("No types to derive", zap.String("package", pkg.Name))
		return genFlags.Remove(genFlags.Path(dir), logger)
	}
	for _, t := range pkg.Types {
		logger.Debug("Deriving", zap.String("type", t.Name), zap.Stringer("kind", t.Kind), zap.Int("variants", len(t.Variants)))
	}
	src, err := derive.Generate(pkg, opts)
	if err != nil {
		return err
	}
	return genFlags.Emit(genFlags.Path(dir), src, logger)
}
