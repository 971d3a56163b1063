package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/sema"
	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/token"
	"github.com/maciek-pioro/compiler/internal/types"
)

const program = "program {\n  int x;\n  bool x;\n  x = 1;\n}\n"

func duplicateBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("src/dup.mini", []byte(program))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaDuplicateDeclaration, source.Pos{File: id, Line: 3, Col: 8}, "variable 'x' is already declared").
		WithNote(source.AtLine(id, 2), "previous declaration")
	bag.Add(d)
	return bag, fs
}

func TestPrettyShowsLocationSnippetAndCaret(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	be.Err(t, err, nil)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	be.Equal(t, lines[0], "src/dup.mini:3:8: error SEM3003: variable 'x' is already declared")
	be.Equal(t, lines[1], " 2 |   int x;")
	be.Equal(t, lines[2], " 3 |   bool x;")
	be.Equal(t, lines[3], "   |        ^")
	be.Equal(t, lines[4], "  = note: previous declaration")
	be.Equal(t, lines[5], "    at src/dup.mini:2")
}

func TestPrettyWithoutNotesOrColor(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	be.Err(t, Pretty(&buf, bag, fs, PrettyOpts{}), nil)
	be.True(t, !strings.Contains(buf.String(), "note"))
	be.True(t, !strings.Contains(buf.String(), "\x1b["))
}

func TestPrettyColorEmitsEscapes(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	be.Err(t, Pretty(&buf, bag, fs, PrettyOpts{Color: true}), nil)
	be.True(t, strings.Contains(buf.String(), "\x1b["))
}

func TestPrettyLineOnlyPositionHasNoCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.mini", []byte(program))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUndeclaredIdentifier, source.AtLine(id, 4), "undeclared identifier 'y'"))

	var buf bytes.Buffer
	be.Err(t, Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}), nil)
	out := buf.String()
	be.True(t, strings.HasPrefix(out, "a.mini:4: error SEM3004"))
	be.True(t, !strings.Contains(out, "^"))
}

func TestJSONOutput(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	be.Err(t, JSON(&buf, bag, fs, JSONOpts{IncludeNotes: true, PathMode: PathModeBasename}), nil)

	var out DiagnosticsOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, out.Count, 1)
	d := out.Diagnostics[0]
	be.Equal(t, d.Code, "SEM3003")
	be.Equal(t, d.Severity, "ERROR")
	be.Equal(t, d.Location, LocationJSON{File: "dup.mini", Line: 3, Column: 8})
	be.Equal(t, len(d.Notes), 1)
	be.Equal(t, d.Notes[0].Location.Line, uint32(2))
}

func TestJSONMaxTruncatesButCountsAll(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.mini", []byte(program))
	bag := diag.NewBag(10)
	for line := uint32(1); line <= 3; line++ {
		bag.Add(diag.NewError(diag.SemaError, source.AtLine(id, line), "boom"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	be.Equal(t, out.Count, 3)
	be.Equal(t, len(out.Diagnostics), 2)
	be.Equal(t, out.Diagnostics[0].Notes, []NoteJSON(nil))
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.mini", []byte("x = 1;"))
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.Assign, Text: "=", Span: source.Span{File: id, Start: 2, End: 3}},
		{Kind: token.IntLit, Text: "1", Span: source.Span{File: id, Start: 4, End: 5}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 6, End: 6}},
	}

	var buf bytes.Buffer
	be.Err(t, FormatTokensPretty(&buf, toks, fs), nil)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	be.Equal(t, len(lines), 4)
	be.True(t, strings.Contains(lines[0], `identifier`))
	be.True(t, strings.Contains(lines[0], `"x" at 1:1-1:2`))

	buf.Reset()
	be.Err(t, FormatTokensJSON(&buf, toks, fs), nil)
	var out []TokenOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, len(out), 4)
	be.Equal(t, out[2], TokenOutput{Kind: "integer literal", Text: "1", Line: 1, Column: 5})
}

func buildTree(t *testing.T) *ast.Tree {
	t.Helper()
	tree := ast.NewTree(0, ast.Hints{})
	x := tree.NewVariable("x", types.Double, 2)
	decls := tree.NewDeclarationList([]ast.NodeID{x}, 2)
	sum := tree.NewMath(ast.OpAdd, tree.NewLiteral(types.Integer, "1", 3), tree.NewLiteral(types.Double, "2.5", 3), 3)
	assign := tree.NewAssign("x", sum, 3)
	body := tree.NewInstructionList([]ast.NodeID{assign, tree.NewWrite(tree.NewIdentifier("x", 4), false, 4)}, 3)
	tree.NewProgram(decls, body, 1)
	be.Err(t, tree.Err(), nil)
	return tree
}

func TestFormatTreePretty(t *testing.T) {
	tree := buildTree(t)
	typing := sema.Resolve(tree, sema.Link(tree))

	var buf bytes.Buffer
	be.Err(t, FormatTreePretty(&buf, tree, typing), nil)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	be.True(t, strings.HasPrefix(lines[0], "Program#"))
	be.True(t, strings.HasPrefix(lines[1], "├─ DeclarationList#"))
	be.True(t, strings.Contains(lines[2], "└─ Variable#"))
	be.True(t, strings.Contains(lines[2], "x: double (var_"))
	be.True(t, strings.Contains(out, `MathOperator#`))
	be.True(t, strings.Contains(out, `"+" : double (line 3)`))
	be.True(t, strings.Contains(out, "Literal#"))
	be.True(t, strings.Contains(out, "2.5 : double"))
	be.True(t, strings.Contains(out, "Wrapper#"))
	be.True(t, strings.Contains(out, "│  "))
}

func TestFormatTreeWithoutTyping(t *testing.T) {
	tree := buildTree(t)
	var buf bytes.Buffer
	be.Err(t, FormatTreePretty(&buf, tree, nil), nil)
	be.True(t, !strings.Contains(buf.String(), " : "))

	buf.Reset()
	be.Err(t, FormatTreePretty(&buf, nil, nil), nil)
	be.Equal(t, buf.String(), "<empty>\n")
}

func TestFormatTreeJSON(t *testing.T) {
	tree := buildTree(t)
	typing := sema.Resolve(tree, sema.Link(tree))

	var buf bytes.Buffer
	be.Err(t, FormatTreeJSON(&buf, tree, typing), nil)
	var root ASTNodeOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &root), nil)
	be.Equal(t, root.Kind, "Program")
	be.Equal(t, len(root.Children), 2)
	body := root.Children[1]
	be.Equal(t, body.Kind, "InstructionList")
	assign := body.Children[0]
	be.Equal(t, assign.Kind, "Assign")
	be.Equal(t, assign.Text, "x")
	be.Equal(t, assign.Type, "double")
}
