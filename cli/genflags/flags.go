package genflags

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brimdata/span/derive"
	"github.com/brimdata/span/pkg/fs"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const DefaultOutput = "span_gen.go"

type Flags struct {
	Types   []string
	Only    string
	Pointer bool
	Output  string
	Check   bool
}

// SetSelectFlags sets the flags choosing the types and methods derived
// from Go source.
func (f *Flags) SetSelectFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.Types, "type", nil, "comma-separated list of type names (default: types marked "+derive.Directive+")")
	fs.StringVar(&f.Only, "only", "", "derive only one method for the types named by --type (values: pos, end)")
}

// SetOutputFlags sets the flags controlling the generated file.
func (f *Flags) SetOutputFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.Pointer, "pointer", false, "declare methods with pointer receivers")
	fs.StringVarP(&f.Output, "output", "o", DefaultOutput, "generated file name, relative to the package directory")
	fs.BoolVar(&f.Check, "check", false, "fail with a diff if a generated file is out of date instead of writing it")
}

func (f *Flags) Options() (derive.Options, error) {
	methods, ok := derive.ParseMethods(f.Only)
	if !ok {
		return derive.Options{}, fmt.Errorf("--only: unknown method %q (values: pos, end)", f.Only)
	}
	if methods != derive.Both && len(f.Types) == 0 {
		return derive.Options{}, fmt.Errorf("--only requires --type (use %s %s to limit marked types)", derive.Directive, f.Only)
	}
	return derive.Options{Types: f.Types, Methods: methods, Pointer: f.Pointer}, nil
}

// Path returns the path of the generated file for the package in dir.
func (f *Flags) Path(dir string) string {
	if filepath.IsAbs(f.Output) {
		return f.Output
	}
	return filepath.Join(dir, f.Output)
}

// StaleError is returned in check mode for a generated file whose content
// differs from what would be written.
type StaleError struct {
	Path string
	Diff string
}

func (s *StaleError) Error() string {
	return fmt.Sprintf("%s is out of date:\n%s", s.Path, s.Diff)
}

// Emit writes src to path or, in check mode, compares src to the content
// of path.
func (f *Flags) Emit(path string, src []byte, logger *zap.Logger) error {
	if !f.Check {
		if err := fs.WriteFile(path, src, 0644); err != nil {
			return err
		}
		logger.Info("Wrote generated file", zap.String("path", path), zap.Int("bytes", len(src)))
		return nil
	}
	old, err := fs.ReadFileIfExists(path)
	if err != nil {
		return err
	}
	if bytes.Equal(old, src) {
		logger.Debug("Generated file is up to date", zap.String("path", path))
		return nil
	}
	return stale(path, old, src)
}

// Remove deletes the generated file at path, which a package with nothing
// left to derive no longer needs, or in check mode reports it as out of
// date.  A file at path not written by spangen is left alone.
func (f *Flags) Remove(path string, logger *zap.Logger) error {
	old, err := fs.ReadFileIfExists(path)
	if err != nil || old == nil {
		return err
	}
	if !bytes.HasPrefix(old, []byte(derive.Header)) {
		logger.Warn("Keeping file not generated by spangen", zap.String("path", path))
		return nil
	}
	if f.Check {
		return stale(path, old, nil)
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	logger.Info("Removed generated file", zap.String("path", path))
	return nil
}

func stale(path string, old, src []byte) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		FromFile: path,
		B:        difflib.SplitLines(string(src)),
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return err
	}
	return &StaleError{Path: path, Diff: diff}
}
