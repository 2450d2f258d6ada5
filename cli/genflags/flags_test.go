package genflags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/span/derive"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	var f Flags
	fs := pflag.NewFlagSet("spangen", pflag.ContinueOnError)
	f.SetSelectFlags(fs)
	f.SetOutputFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f
}

func TestOptions(t *testing.T) {
	opts, err := parse(t).Options()
	require.NoError(t, err)
	assert.Equal(t, derive.Options{Methods: derive.Both}, opts)

	opts, err = parse(t, "--type", "Let,Expr", "--only", "end", "--pointer").Options()
	require.NoError(t, err)
	assert.Equal(t, derive.Options{Types: []string{"Let", "Expr"}, Methods: derive.End, Pointer: true}, opts)

	_, err = parse(t, "--only", "end").Options()
	assert.ErrorContains(t, err, "--only requires --type")
	_, err = parse(t, "--type", "Let", "--only", "last").Options()
	assert.EqualError(t, err, `--only: unknown method "last" (values: pos, end)`)
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("ast", DefaultOutput), parse(t).Path("ast"))
	assert.Equal(t, filepath.Join("ast", "pos.go"), parse(t, "-o", "pos.go").Path("ast"))
	abs := filepath.Join(t.TempDir(), "pos.go")
	assert.Equal(t, abs, parse(t, "--output", abs).Path("ast"))
}

func TestEmit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutput)
	logger := zap.NewNop()

	check := parse(t, "--check")
	err := check.Emit(path, []byte("package p\n"), logger)
	var stale *StaleError
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, path, stale.Path)
	assert.Contains(t, stale.Diff, "+package p")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "check mode wrote a file")

	require.NoError(t, parse(t).Emit(path, []byte("package p\n"), logger))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package p\n", string(b))
	assert.NoError(t, check.Emit(path, []byte("package p\n"), logger))

	err = check.Emit(path, []byte("package q\n"), logger)
	require.True(t, errors.As(err, &stale))
	assert.Contains(t, stale.Diff, "-package p")
	assert.Contains(t, stale.Diff, "+package q")
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOutput)
	logger := zap.NewNop()
	generated := derive.Header + "\n\npackage p\n"

	assert.NoError(t, parse(t).Remove(path, logger), "missing file")

	require.NoError(t, os.WriteFile(path, []byte(generated), 0644))
	err := parse(t, "--check").Remove(path, logger)
	var stale *StaleError
	require.True(t, errors.As(err, &stale))
	assert.Contains(t, stale.Diff, "-package p")
	_, err = os.Stat(path)
	require.NoError(t, err, "check mode removed a file")

	require.NoError(t, parse(t).Remove(path, logger))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(path, []byte("package p\n"), 0644))
	require.NoError(t, parse(t).Remove(path, logger))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package p\n", string(b))
}
