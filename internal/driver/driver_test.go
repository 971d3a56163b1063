package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/casebook"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/observ"
	"github.com/maciek-pioro/compiler/internal/testkit"
	"github.com/maciek-pioro/compiler/internal/trace"
	"github.com/maciek-pioro/compiler/internal/types"
)

func TestCasebook(t *testing.T) {
	cases, err := casebook.LoadDir("testdata")
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)
	for _, c := range cases {
		t.Run(c.File+"/"+c.Name, func(t *testing.T) {
			out := CompileSource(context.Background(), c.Name+".mini", []byte(c.Source), Options{})
			for _, failure := range c.Verify(out.IR, out.Diagnostics) {
				t.Error(failure)
			}
			want, _ := c.ExpectedErrors()
			be.Equal(t, out.OK, len(want) == 0)
			if out.OK {
				be.Err(t, testkit.CheckTreeInvariants(out.Tree, out.Sema.Links), nil)
			}
		})
	}
}

func TestCompileTreeRejectsWithoutIR(t *testing.T) {
	tree := ast.NewTree(0, ast.Hints{})
	b := tree.NewVariable("b", types.Boolean, 1)
	d := tree.NewVariable("d", types.Double, 1)
	assign := tree.NewAssign("d", tree.NewIdentifier("b", 2), 2)
	tree.NewProgram(
		tree.NewDeclarationList([]ast.NodeID{b, d}, 1),
		tree.NewInstructionList([]ast.NodeID{assign}, 1), 1)

	out := CompileTree(context.Background(), tree, Options{})
	be.True(t, !out.OK)
	be.Equal(t, out.IR, "")
	be.Equal(t, len(out.Diagnostics), 1)
	be.Equal(t, out.Diagnostics[0].Code, diag.SemaIllegalConversion)
	be.Equal(t, out.Diagnostics[0].Message, "cannot convert bool to double")
	be.Equal(t, out.Diagnostics[0].Line(), uint32(2))
}

func TestCompileTreeReportsConstructionErrors(t *testing.T) {
	tree := ast.NewTree(0, ast.Hints{})
	lit := tree.NewLiteral(types.Integer, "1", 1)
	tree.NewWrite(lit, false, 1)
	tree.NewWrite(lit, false, 1) // second owner
	tree.NewProgram(tree.NewDeclarationList(nil, 1), tree.NewInstructionList(nil, 1), 1)

	out := CompileTree(context.Background(), tree, Options{})
	be.True(t, !out.OK)
	be.Equal(t, out.Diagnostics[0].Code, diag.SemaMalformedTree)
}

func TestRepeatedCompilationsAreIdentical(t *testing.T) {
	src := []byte("program { int a; a = 1; while (a < 5) a = a * 2; write a; write \"done\"; }")
	first := CompileSource(context.Background(), "a.mini", src, Options{})
	second := CompileSource(context.Background(), "a.mini", src, Options{})
	be.True(t, first.OK)
	be.Equal(t, first.IR, second.IR)
}

func TestPhasesAreObservedTimedAndTraced(t *testing.T) {
	var events []PhaseEvent
	timer := observ.NewTimer()
	ring := trace.NewRingTracer(64, trace.LevelPass)
	ctx := trace.WithTracer(context.Background(), ring)

	out := CompileSource(ctx, "p.mini", []byte("program { write 1; }"), Options{
		Timer:        timer,
		Observer:     func(ev PhaseEvent) { events = append(events, ev) },
		TargetTriple: "x86_64-pc-linux-gnu",
	})
	be.True(t, out.OK)
	be.True(t, strings.HasPrefix(out.IR, "; ModuleID = 'p.mini'\ntarget triple = \"x86_64-pc-linux-gnu\""))

	var ended []string
	for _, ev := range events {
		if ev.Status == PhaseEnd {
			ended = append(ended, ev.Name)
			be.True(t, ev.OK)
		}
	}
	be.Equal(t, ended, []string{PhaseParse, PhaseSema, PhaseHoist, PhaseEmit})
	be.Equal(t, len(timer.Report().Phases), 4)

	names := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		names[ev.Name] = true
	}
	for _, want := range []string{"compile:p.mini", "parse", "sema", "link", "resolve", "validate", "emit"} {
		be.True(t, names[want])
	}
}

func TestSyntaxErrorStopsBeforeSema(t *testing.T) {
	var seen []string
	out := CompileSource(context.Background(), "bad.mini", []byte("program { write 1 }"), Options{
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseStart {
				seen = append(seen, ev.Name)
			}
		},
	})
	be.True(t, !out.OK)
	be.Equal(t, seen, []string{PhaseParse})
	be.Equal(t, out.Diagnostics[0].Code, diag.SynExpectSemicolon)
}

func TestCompileFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.mini")
	be.Err(t, os.WriteFile(path, []byte("program { double d; d = 1; write d; }"), 0o600), nil)
	out, err := Compile(context.Background(), path, Options{})
	be.Err(t, err, nil)
	be.True(t, out.OK)
	be.True(t, strings.Contains(out.IR, "sitofp i32"))

	_, err = Compile(context.Background(), filepath.Join(t.TempDir(), "missing.mini"), Options{})
	be.True(t, err != nil)

	parsed, err := Parse(path, 10)
	be.Err(t, err, nil)
	be.True(t, parsed.OK && parsed.Typing != nil)

	toks, err := Tokenize(path, 10)
	be.Err(t, err, nil)
	be.True(t, len(toks.Tokens) > 10)
}
