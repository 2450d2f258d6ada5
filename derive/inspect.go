package derive

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Directive marks a type for derivation when it appears as a line of the
// type's doc comment.  It may be followed by "pos" or "end" to derive only
// that method.
const Directive = "//span:derive"

var ErrDirective = errors.New("bad span:derive directive")

// InspectDir parses the Go files in dir that match the current build
// context, ignoring tests and generated files, and inspects the package
// they declare.
func InspectDir(dir string, opts Options) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	in := newInspector(token.NewFileSet())
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, name); err != nil || !ok {
			continue
		}
		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := in.parse(path, src)
		if err != nil {
			return nil, err
		}
		if ast.IsGenerated(f) {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no Go source files", dir)
	}
	return in.inspect(files, opts)
}

// InspectSource inspects a single Go source file.
func InspectSource(filename string, src []byte, opts Options) (*Package, error) {
	in := newInspector(token.NewFileSet())
	f, err := in.parse(filename, src)
	if err != nil {
		return nil, err
	}
	return in.inspect([]*ast.File{f}, opts)
}

// Inspect inspects already parsed files of a single package.
func Inspect(fset *token.FileSet, files []*ast.File, opts Options) (*Package, error) {
	return newInspector(fset).inspect(files, opts)
}

type decl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

type inspector struct {
	fset    *token.FileSet
	sources map[string][]byte
	decls   []decl
	byName  map[string]decl
	// methods maps a receiver base type name to the names of its
	// methods and whether each is niladic.
	methods map[string]map[string]bool
}

func newInspector(fset *token.FileSet) *inspector {
	return &inspector{
		fset:    fset,
		sources: make(map[string][]byte),
		byName:  make(map[string]decl),
		methods: make(map[string]map[string]bool),
	}
}

func (in *inspector) parse(filename string, src []byte) (*ast.File, error) {
	f, err := parser.ParseFile(in.fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	in.sources[filename] = src
	return f, nil
}

func (in *inspector) inspect(files []*ast.File, opts Options) (*Package, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to inspect")
	}
	name := files[0].Name.Name
	for _, f := range files {
		if f.Name.Name != name {
			return nil, fmt.Errorf("%s: found packages %s and %s", in.fset.Position(f.Package), name, f.Name.Name)
		}
		in.collect(f)
	}
	pkg := &Package{Name: name}
	var errs ErrorList
	selected := make(map[string]Methods)
	if len(opts.Types) > 0 {
		methods := opts.Methods
		if methods == 0 {
			methods = Both
		}
		for _, name := range opts.Types {
			if _, ok := in.byName[name]; !ok {
				return nil, in.notFound(name, pkg.Name)
			}
			selected[name] = methods
		}
	} else {
		for _, d := range in.decls {
			methods, ok, err := in.directive(d)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if ok {
				selected[d.spec.Name.Name] = methods
			}
		}
	}
	for _, d := range in.decls {
		methods, ok := selected[d.spec.Name.Name]
		if !ok {
			continue
		}
		t := in.shape(d.spec, true)
		t.Methods = methods
		pkg.Types = append(pkg.Types, t)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// notFound returns the error for a --type name missing from the package,
// suggesting the closest declared type name.
func (in *inspector) notFound(name, pkg string) error {
	best, dist := "", len(name)/2+1
	for _, d := range in.decls {
		candidate := d.spec.Name.Name
		if k := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate)); k < dist {
			best, dist = candidate, k
		}
	}
	if best != "" {
		return fmt.Errorf("type %s not found in package %s (did you mean %s?)", name, pkg, best)
	}
	return fmt.Errorf("type %s not found in package %s", name, pkg)
}

func (in *inspector) collect(f *ast.File) {
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, s := range d.Specs {
				spec := s.(*ast.TypeSpec)
				doc := spec.Doc
				if doc == nil && !d.Lparen.IsValid() {
					doc = d.Doc
				}
				td := decl{spec, doc}
				in.decls = append(in.decls, td)
				in.byName[spec.Name.Name] = td
			}
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				continue
			}
			recv := baseName(d.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			if in.methods[recv] == nil {
				in.methods[recv] = make(map[string]bool)
			}
			in.methods[recv][d.Name.Name] = niladic(d.Type)
		}
	}
}

func (in *inspector) directive(d decl) (Methods, bool, *Error) {
	if d.doc == nil {
		return 0, false, nil
	}
	for _, c := range d.doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		methods, ok := ParseMethods(rest)
		if !ok {
			t := in.newType(d.spec)
			return 0, false, &Error{
				Kind: ErrDirective,
				Type: t.Name,
				Msg:  fmt.Sprintf("type %s: %s: unknown argument %q", t.Name, ErrDirective, strings.TrimSpace(rest)),
				Pos:  t.Pos,
				line: t.line,
			}
		}
		return methods, true, nil
	}
	return 0, false, nil
}

func (in *inspector) newType(spec *ast.TypeSpec) *Type {
	pos := in.fset.Position(spec.Name.Pos())
	t := &Type{
		Name: spec.Name.Name,
		Pos:  pos,
		line: in.line(pos),
	}
	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				t.Params = append(t.Params, Param{Name: name.Name, Constraint: constraint})
			}
		}
	}
	if m := in.methods[t.Name]; m != nil {
		if _, ok := m["Pos"]; ok {
			t.Declared |= Pos
		}
		if _, ok := m["End"]; ok {
			t.Declared |= End
		}
	}
	return t
}

// shape returns the shape of the type declared by spec.  Interfaces are
// unions only at the top level.
func (in *inspector) shape(spec *ast.TypeSpec, top bool) *Type {
	t := in.newType(spec)
	if spec.Assign.IsValid() {
		t.Kind = Invalid
		t.Reason = "alias declarations are not supported"
		return t
	}
	switch typ := spec.Type.(type) {
	case *ast.StructType:
		t.Kind = Struct
		t.Slots = slots(typ)
	case *ast.InterfaceType:
		t.Kind = Union
		if top {
			in.variants(t, typ)
		}
	default:
		t.Kind = Invalid
		t.Reason = fmt.Sprintf("%s is not a struct or interface type", types.ExprString(spec.Type))
	}
	return t
}

// variants fills in the variants of the union t: the types of the package
// declaring one of the interface's unexported niladic methods.
func (in *inspector) variants(t *Type, iface *ast.InterfaceType) {
	var markers []string
	for _, m := range iface.Methods.List {
		fn, ok := m.Type.(*ast.FuncType)
		if !ok || !niladic(fn) {
			continue
		}
		for _, name := range m.Names {
			if !name.IsExported() {
				markers = append(markers, name.Name)
			}
		}
	}
	if len(markers) == 0 {
		t.Reason = "interface has no unexported marker method"
		return
	}
	for _, d := range in.decls {
		if d.spec.Name.Name == t.Name || !in.declares(d.spec.Name.Name, markers) {
			continue
		}
		t.Variants = append(t.Variants, in.shape(d.spec, false))
	}
	if len(t.Variants) == 0 {
		t.Reason = fmt.Sprintf("no type declares the marker method %s", markers[0])
	}
}

func (in *inspector) declares(typ string, markers []string) bool {
	for _, name := range markers {
		if niladic, ok := in.methods[typ][name]; ok && niladic {
			return true
		}
	}
	return false
}

func (in *inspector) line(pos token.Position) string {
	src := in.sources[pos.Filename]
	if src == nil || pos.Offset > len(src) {
		return ""
	}
	start := bytes.LastIndexByte(src[:pos.Offset], '\n') + 1
	end := len(src)
	if k := bytes.IndexByte(src[pos.Offset:], '\n'); k >= 0 {
		end = pos.Offset + k
	}
	return string(src[start:end])
}

func slots(st *ast.StructType) []Slot {
	var out []Slot
	for _, field := range st.Fields.List {
		if skipped(field.Tag) {
			continue
		}
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			if name := baseName(field.Type); name != "" {
				out = append(out, Slot{Name: name, Type: typ})
			}
			continue
		}
		for _, name := range field.Names {
			if name.Name != "_" {
				out = append(out, Slot{Name: name.Name, Type: typ})
			}
		}
	}
	return out
}

// skipped reports whether a field tag carries span:"-".
func skipped(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	s, err := strconv.Unquote(tag.Value)
	if err != nil {
		return false
	}
	return reflect.StructTag(s).Get("span") == "-"
}

// baseName returns the name of the type named by an embedded field or a
// receiver, e.g., T for *pkg.T[X].
func baseName(e ast.Expr) string {
	for {
		switch x := e.(type) {
		case *ast.Ident:
			return x.Name
		case *ast.StarExpr:
			e = x.X
		case *ast.ParenExpr:
			e = x.X
		case *ast.IndexExpr:
			e = x.X
		case *ast.IndexListExpr:
			e = x.X
		case *ast.SelectorExpr:
			return x.Sel.Name
		default:
			return ""
		}
	}
}

func niladic(fn *ast.FuncType) bool {
	return fn.Params.NumFields() == 0 && fn.Results.NumFields() == 0
}
