package derive_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/span/derive"
	"github.com/brimdata/span/ztest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZTest(t *testing.T) { ztest.Run(t, "testdata/ztest") }

const calcSource = `package calc

import "github.com/brimdata/span"

//span:derive
type Expr interface {
	span.Node
	exprNode()
}

type Unit struct{}

type Binary[T span.Node] struct {
	LHS T
	Op  span.Index[string]
	RHS T
}

func (Unit) exprNode()       {}
func (Binary[T]) exprNode() {}

//span:derive
type Empty struct {
	Kind string ` + "`span:\"-\"`" + `
}
`

func TestErrorKinds(t *testing.T) {
	_, err := generateSource(t, calcSource)
	require.Error(t, err)
	assert.True(t, errors.Is(err, derive.ErrEmptyShape))
	assert.False(t, errors.Is(err, derive.ErrUnsupportedShape))

	var list derive.ErrorList
	require.True(t, errors.As(err, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Unit", list[0].Type)
	assert.Equal(t, 11, list[0].Pos.Line)
	assert.Equal(t, "calc.go:11:6: type Expr: variant Unit: at least one field expected", list[0].Error())
	assert.Equal(t, "Empty", list[1].Type)
	assert.Equal(t, "type Unit struct{}\n     ~~~~", list[0].Source())
}

func TestErrorSourceKeepsTabs(t *testing.T) {
	src := "package p\n\ntype (\n\t//span:derive\n\tNone struct{}\n)\n"
	_, err := generateSource(t, src)
	var list derive.ErrorList
	require.True(t, errors.As(err, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "\tNone struct{}\n\t~~~~", list[0].Source())
}

func TestUnsupportedIs(t *testing.T) {
	_, err := generateSource(t, "package p\n\n//span:derive\ntype Names []string\n")
	assert.True(t, errors.Is(err, derive.ErrUnsupportedShape))
}

func TestNoPartialOutput(t *testing.T) {
	src := "package p\n\n//span:derive\ntype Good struct{ A, B int }\n\n//span:derive\ntype Bad struct{}\n"
	out, err := generateSource(t, src)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestCheck(t *testing.T) {
	pkg, err := derive.InspectSource("calc.go", []byte(calcSource), derive.Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, derive.Check(pkg), derive.ErrEmptyShape)
	expr := pkg.Lookup("Expr")
	require.NotNil(t, expr)
	assert.Equal(t, derive.Union, expr.Kind)
	require.Len(t, expr.Variants, 2)
	binary := expr.Variants[1]
	assert.Equal(t, "Binary[T]", binary.Receiver())
	assert.Equal(t, []derive.Param{{Name: "T", Constraint: "span.Node"}}, binary.Params)
	assert.Equal(t, "LHS", binary.First().Name)
	assert.Equal(t, "RHS", binary.Last().Name)
	assert.Equal(t, "span.Index[string]", binary.Slots[1].Type)
	assert.Nil(t, pkg.Lookup("Binary"))
}

func TestDescribeRoundTrip(t *testing.T) {
	src := `package calc

import "github.com/brimdata/span"

//span:derive
type Expr interface {
	exprNode()
}

type Num struct {
	Lit span.Span[string]
}

type Call[A span.Node] struct {
	Fn   Expr
	Args span.Appended[span.Index[byte], A]
}

func (Num) exprNode()     {}
func (Call[A]) exprNode() {}

//span:derive end
type Let struct {
	Keyword span.Index[string]
	Value   Expr
}
`
	pkg, err := derive.InspectSource("calc.go", []byte(src), derive.Options{})
	require.NoError(t, err)
	fromSource, err := derive.Generate(pkg, derive.Options{})
	require.NoError(t, err)

	desc, err := derive.Describe(pkg)
	require.NoError(t, err)
	expected := `package: calc
types:
  - name: Expr
    variants:
      - name: Num
        fields: [Lit]
      - name: Call
        params:
          - name: A
            constraint: span.Node
        fields: [Fn, Args]
  - name: Let
    only: end
    fields: [Keyword, Value]
`
	assert.Equal(t, expected, string(desc))

	pkg, err = derive.ParseDescription("calc.yaml", desc)
	require.NoError(t, err)
	fromDesc, err := derive.Generate(pkg, derive.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(fromSource), string(fromDesc))
}

func TestParseDescriptionErrors(t *testing.T) {
	cases := []struct {
		desc string
		err  string
	}{
		{"types: []\n", "d.yaml: package name missing"},
		{"package: 9p\n", `d.yaml: bad package name "9p"`},
		{"package: p\ntypes:\n  - name: A\n    fieldz: [B]\n", "d.yaml: line 4: field fieldz not found in type description"},
		{"package: p\ntypes:\n  - name: A\n    only: both\n    fields: [B]\n", `d.yaml:3:5: type A: bad only value "both"`},
		{"package: p\ntypes:\n  - name: A\n    fields: [B.C]\n", `d.yaml:3:5: type A: bad field name "B.C"`},
		{"package: p\ntypes:\n  - name: a-b\n", `d.yaml:3:5: bad type name "a-b"`},
	}
	for _, c := range cases {
		_, err := derive.ParseDescription("d.yaml", []byte(c.desc))
		assert.EqualError(t, err, c.err, "description: %q", c.desc)
	}
}

func TestParseMethods(t *testing.T) {
	for s, expected := range map[string]derive.Methods{
		"":      derive.Both,
		"pos":   derive.Pos,
		" end ": derive.End,
		"START": derive.Pos,
	} {
		m, ok := derive.ParseMethods(s)
		assert.True(t, ok, s)
		assert.Equal(t, expected, m, s)
	}
	_, ok := derive.ParseMethods("both")
	assert.False(t, ok)
}

func TestInspectDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	write("ast.go", "package ast\n\n//span:derive\ntype Pair struct{ A, B Loc }\n")
	write("loc.go", "package ast\n\ntype Loc struct{ First, Last int }\n\nfunc (l Loc) Pos() int { return l.First }\nfunc (l Loc) End() int { return l.Last }\n")
	// Neither of these may contribute types or a second package name.
	write("ast_test.go", "package ast_test\n\n//span:derive\ntype Test struct{}\n")
	write("gen.go", "//go:build ignore\n\npackage main\n\n//span:derive\ntype Main struct{}\n")
	write("span_gen.go", derive.Header+"\n\npackage ast\n\n//span:derive\ntype Stale struct{}\n")
	write("notes.txt", "//span:derive\n")

	pkg, err := derive.InspectDir(dir, derive.Options{})
	require.NoError(t, err)
	assert.Equal(t, "ast", pkg.Name)
	require.Len(t, pkg.Types, 1)
	assert.Equal(t, "Pair", pkg.Types[0].Name)
	assert.Equal(t, filepath.Join(dir, "ast.go"), pkg.Types[0].Pos.Filename)

	_, err = derive.InspectDir(t.TempDir(), derive.Options{})
	assert.ErrorContains(t, err, "no Go source files")
}

func generateSource(t *testing.T, src string) ([]byte, error) {
	t.Helper()
	pkg, err := derive.InspectSource("calc.go", []byte(src), derive.Options{})
	require.NoError(t, err)
	return derive.Generate(pkg, derive.Options{})
}
