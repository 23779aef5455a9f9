package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/erminia/erminia/parser"
)

const puzzleSource = `def p (1) {
  object BAR { shape: [(0,0)], color: 4 };
  let size: int = 3;
  example e {
    let x = 1;
  }
}
`

const brokenSource = "def p (1) {\n  object 5 { };\n}\n"

func TestUpdateFile(t *testing.T) {
	c := New("/tmp/erminia_test")
	path := "/tmp/erminia_test/p.erm"

	info := c.UpdateFile(path, []byte(puzzleSource))
	if info.Err() != nil {
		t.Fatalf("unexpected error: %v", info.Err())
	}
	if info.AST == nil || info.AST.ID != "p" {
		t.Fatalf("AST = %+v, want program p", info.AST)
	}
	if got := c.GetFile(path); got != info {
		t.Error("GetFile did not return the stored file")
	}

	wantObjects := []string{"BAR"}
	if len(info.Objects) != 1 || info.Objects[0] != wantObjects[0] {
		t.Errorf("Objects = %v, want %v", info.Objects, wantObjects)
	}
	if len(info.Variables) != 2 || info.Variables[0] != "size" || info.Variables[1] != "x" {
		t.Errorf("Variables = %v, want [size x]", info.Variables)
	}
}

func TestUpdateFileKeepsNamesOnError(t *testing.T) {
	c := New("/tmp/erminia_test")
	path := "/tmp/erminia_test/p.erm"

	c.UpdateFile(path, []byte(puzzleSource))
	info := c.UpdateFile(path, []byte(brokenSource))

	if !errors.Is(info.ParseErr, parser.ErrExpectedIdentifier) {
		t.Fatalf("ParseErr = %v, want ExpectedIdentifierError", info.ParseErr)
	}
	if info.AST != nil {
		t.Error("AST should be nil after a failed parse")
	}
	if len(info.Objects) != 1 || info.Objects[0] != "BAR" {
		t.Errorf("Objects = %v, want names of the previous parse", info.Objects)
	}
}

func TestDiagnostics(t *testing.T) {
	c := New("/tmp/erminia_test")
	path := "/tmp/erminia_test/broken.erm"
	c.UpdateFile(path, []byte(brokenSource))

	diags := c.Diagnostics(path)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Span.Start.Line != 2 || d.Span.Start.Column != 10 {
		t.Errorf("start = %v, want 2:10", d.Span.Start)
	}
	if d.Span.End.Line != 2 || d.Span.End.Column != 11 {
		t.Errorf("end = %v, want 2:11", d.Span.End)
	}
	want := "ExpectedIdentifierError(location: 2:10, expected: Ident, actual: Int)"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}

	c.UpdateFile(path, []byte(puzzleSource))
	if diags := c.Diagnostics(path); len(diags) != 0 {
		t.Errorf("diagnostics after fix = %v, want none", diags)
	}
	if diags := c.Diagnostics("/nope.erm"); diags != nil {
		t.Errorf("diagnostics of unknown file = %v", diags)
	}
}

func TestSymbols(t *testing.T) {
	c := New("/tmp/erminia_test")
	path := "/tmp/erminia_test/p.erm"
	c.UpdateFile(path, []byte(puzzleSource))

	symbols := c.Symbols(path)
	if len(symbols) != 1 {
		t.Fatalf("got %d root symbols, want 1", len(symbols))
	}
	root := symbols[0]
	if root.Name != "p" || root.Kind != SymbolProgram {
		t.Errorf("root = %s/%v, want p/program", root.Name, root.Kind)
	}

	want := []struct {
		name   string
		kind   SymbolKind
		detail string
	}{
		{"BAR", SymbolObject, "object"},
		{"size", SymbolVariable, "int"},
		{"e", SymbolSection, "example"},
	}
	if len(root.Children) != len(want) {
		t.Fatalf("got %d children, want %d", len(root.Children), len(want))
	}
	for i, w := range want {
		got := root.Children[i]
		if got.Name != w.name || got.Kind != w.kind || got.Detail != w.detail {
			t.Errorf("child %d = %s/%v/%s, want %s/%v/%s", i, got.Name, got.Kind, got.Detail, w.name, w.kind, w.detail)
		}
	}

	section := root.Children[2]
	if len(section.Children) != 1 || section.Children[0].Name != "x" || section.Children[0].Detail != "object" {
		t.Errorf("section children = %+v, want x: object", section.Children)
	}
}

func TestCompletionsAtPoint(t *testing.T) {
	c := New("/tmp/erminia_test")
	path := "/tmp/erminia_test/p.erm"
	c.UpdateFile(path, []byte(puzzleSource))

	// after "let size: "
	items := c.CompletionsAtPoint(path, 3, 13)
	if len(items) != 4 {
		t.Fatalf("got %d type completions, want 4: %+v", len(items), items)
	}
	for _, item := range items {
		if item.Kind != CompletionKindType {
			t.Errorf("item %s has kind %v, want type", item.Label, item.Kind)
		}
	}

	items = c.CompletionsAtPoint(path, 5, 5)
	labels := make(map[string]CompletionKind)
	for _, item := range items {
		labels[item.Label] = item.Kind
	}
	for label, kind := range map[string]CompletionKind{
		"object": CompletionKindKeyword,
		"let":    CompletionKindKeyword,
		"BAR":    CompletionKindObject,
		"size":   CompletionKindVariable,
	} {
		if got, ok := labels[label]; !ok || got != kind {
			t.Errorf("completion %s = %v (present %v), want %v", label, got, ok, kind)
		}
	}
}

func TestInTypeAnnotation(t *testing.T) {
	tests := []struct {
		prefix string
		want   bool
	}{
		{"  let x: ", true},
		{"  let x:", true},
		{"  let x: in", true},
		{"  let x = ", false},
		{"  shape: ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := inTypeAnnotation(tt.prefix); got != tt.want {
			t.Errorf("inTypeAnnotation(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "a.erm"), puzzleSource)
	writeSource(t, filepath.Join(dir, "sub", "b.erm"), "def b (2) { object DOT { shape: [(0,0)], color: 1 }; }")
	writeSource(t, filepath.Join(dir, ".hidden", "c.erm"), puzzleSource)
	writeSource(t, filepath.Join(dir, "notes.txt"), "not a source")

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}

	paths := c.Paths()
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want a.erm and sub/b.erm", paths)
	}
	objects := c.AllObjects()
	if len(objects) != 2 || objects[0] != "BAR" || objects[1] != "DOT" {
		t.Errorf("AllObjects = %v, want [BAR DOT]", objects)
	}

	c.RemoveFile(paths[0])
	if c.GetFile(paths[0]) != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.erm")
	writeSource(t, path, puzzleSource)

	var changes []string
	c := New(dir)
	w := NewFileWatcher(c, time.Hour, func(p string, info *FileInfo) {
		if info == nil {
			changes = append(changes, "removed "+filepath.Base(p))
			return
		}
		changes = append(changes, "parsed "+filepath.Base(p))
	})

	w.Scan()
	w.Scan()
	if len(changes) != 1 || changes[0] != "parsed a.erm" {
		t.Fatalf("changes = %v, want one parse", changes)
	}

	future := time.Now().Add(time.Minute)
	writeSource(t, path, brokenSource)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	w.Scan()
	if len(changes) != 2 {
		t.Fatalf("changes = %v, want a reparse", changes)
	}
	if c.GetFile(path).ParseErr == nil {
		t.Error("expected the rewritten file to fail parsing")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.Scan()
	if len(changes) != 3 || changes[2] != "removed a.erm" {
		t.Errorf("changes = %v, want a removal", changes)
	}
	if c.GetFile(path) != nil {
		t.Error("removed file is still known")
	}
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
