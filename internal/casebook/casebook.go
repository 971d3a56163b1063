// Package casebook reads compiler test cases written as Markdown.
//
// A case starts at a heading "Test: <name>" and holds one ```minic fence
// with the program plus any number of assertion fences:
//
//	```ir-contains      every non-empty line must occur in the IR
//	```ir-not-contains  no non-empty line may occur in the IR
//	```compile-error    one "CODE LINE" row per expected diagnostic
//
// A case without compile-error rows must compile cleanly.
package casebook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/maciek-pioro/compiler/internal/diag"
)

type FenceKind string

const (
	FenceSource        FenceKind = "minic"
	FenceIRContains    FenceKind = "ir-contains"
	FenceIRNotContains FenceKind = "ir-not-contains"
	FenceCompileError  FenceKind = "compile-error"
)

type Assertion struct {
	Kind    FenceKind
	Content string
	Line    int // line of the fence in the Markdown file
}

// Expected is one row of a compile-error fence.
type Expected struct {
	Code diag.Code
	Line uint32
}

type Case struct {
	Name       string
	File       string
	Line       int
	Source     string
	Assertions []Assertion
}

// Extract returns the cases found in a Markdown document.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if current.Source == "" {
			return fmt.Errorf("line %d: test %q has no minic fence", current.Line, current.Name)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("line %d: test %q has no assertion fences", current.Line, current.Name)
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			title := headingText(n, markdown)
			if !strings.HasPrefix(title, "Test: ") {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, "Test: ")),
				Line: lineOf(n, markdown),
			}
		case *mdast.FencedCodeBlock:
			lang := FenceKind(n.Language(markdown))
			line := lineOf(n, markdown)
			if lang == "" {
				return mdast.WalkContinue, nil
			}
			if current == nil {
				return mdast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
			}
			body := fenceBody(n, markdown)
			switch lang {
			case FenceSource:
				if current.Source != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: second minic fence in test %q", line, current.Name)
				}
				current.Source = body
			case FenceIRContains, FenceIRNotContains, FenceCompileError:
				current.Assertions = append(current.Assertions, Assertion{Kind: lang, Content: body, Line: line})
			default:
				return mdast.WalkStop, fmt.Errorf("line %d: unknown fence %q in test %q", line, lang, current.Name)
			}
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

// LoadDir reads every *.md file in dir, sorted by name.
func LoadDir(dir string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var all []Case
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		cases, err := Extract(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := range cases {
			cases[i].File = filepath.Base(path)
		}
		all = append(all, cases...)
	}
	return all, nil
}

// ExpectedErrors parses every compile-error fence of the case.
func (c Case) ExpectedErrors() ([]Expected, error) {
	var out []Expected
	for _, a := range c.Assertions {
		if a.Kind != FenceCompileError {
			continue
		}
		for _, row := range lines(a.Content) {
			fields := strings.Fields(row)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: compile-error row %q is not \"CODE LINE\"", a.Line, row)
			}
			code, ok := diag.ParseID(fields[0])
			if !ok {
				return nil, fmt.Errorf("line %d: unknown diagnostic code %q", a.Line, fields[0])
			}
			n, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad line number %q", a.Line, fields[1])
			}
			out = append(out, Expected{Code: code, Line: uint32(n)})
		}
	}
	return out, nil
}

// Verify compares a compilation result with the case and returns one
// message per failed expectation.
func (c Case) Verify(ir string, diags []diag.Diagnostic) []string {
	var failures []string
	want, err := c.ExpectedErrors()
	if err != nil {
		return []string{err.Error()}
	}

	var got []Expected
	for _, d := range diags {
		if d.Severity == diag.SevError {
			got = append(got, Expected{Code: d.Code, Line: d.Line()})
		}
	}
	if len(want) != len(got) {
		failures = append(failures, fmt.Sprintf("expected %d errors %v, got %d %v", len(want), want, len(got), diags))
	} else {
		for i := range want {
			if want[i] != got[i] {
				failures = append(failures, fmt.Sprintf("error %d: want %s on line %d, got %s on line %d",
					i, want[i].Code.ID(), want[i].Line, got[i].Code.ID(), got[i].Line))
			}
		}
	}

	for _, a := range c.Assertions {
		for _, row := range lines(a.Content) {
			switch a.Kind {
			case FenceIRContains:
				if !strings.Contains(ir, row) {
					failures = append(failures, fmt.Sprintf("IR lacks %q", row))
				}
			case FenceIRNotContains:
				if strings.Contains(ir, row) {
					failures = append(failures, fmt.Sprintf("IR unexpectedly has %q", row))
				}
			}
		}
	}
	return failures
}

func lines(content string) []string {
	var out []string
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func headingText(node mdast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) { //nolint:errcheck
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

func fenceBody(block *mdast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		seg := block.Lines().At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func lineOf(node mdast.Node, src []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	return bytes.Count(src[:node.Lines().At(0).Start], []byte("\n")) + 1
}
