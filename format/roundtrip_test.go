package format

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/parser"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing .erm test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func findTestcases(t *testing.T) string {
	t.Helper()
	if testcasesDir != "" {
		return testcasesDir
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for d := wd; d != "/"; d = filepath.Dir(d) {
		candidate := filepath.Join(d, "testcases")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	t.Skip("testcases directory not found; use -testcases flag to specify")
	return ""
}

func countNodes(n ast.Node) int {
	count := 0
	ast.Inspect(n, func(ast.Node) bool {
		count++
		return true
	})
	return count
}

func countDocNodes(n *astNode) int {
	count := 1
	for _, c := range n.Children {
		count += countDocNodes(c)
	}
	return count
}

// TestRoundTrip_Testcases parses every .erm file under testcases/ and checks
// that each encoder describes the whole tree.
func TestRoundTrip_Testcases(t *testing.T) {
	dir := findTestcases(t)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".erm") {
			if testFilter == "" || strings.Contains(filepath.Base(path), testFilter) {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases: %v", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		t.Skip("no .erm files found")
	}

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".erm")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			prog, err := parser.Parse(string(src), parser.WithFile(path))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := countNodes(prog)

			var text bytes.Buffer
			if err := NewTextEncoder(&text).Encode(prog); err != nil {
				t.Fatalf("text: %v", err)
			}
			if lines := strings.Count(text.String(), "\n"); lines != want {
				t.Errorf("text output has %d lines, want %d", lines, want)
			}

			var jsonOut bytes.Buffer
			if err := NewASTJSONEncoder(&jsonOut, WithPositions()).Encode(prog); err != nil {
				t.Fatalf("json: %v", err)
			}
			var fromJSON astNode
			if err := json.Unmarshal(jsonOut.Bytes(), &fromJSON); err != nil {
				t.Fatalf("json output does not decode: %v", err)
			}
			if got := countDocNodes(&fromJSON); got != want {
				t.Errorf("json document has %d nodes, want %d", got, want)
			}

			var yamlOut bytes.Buffer
			if err := NewASTYAMLEncoder(&yamlOut).Encode(prog); err != nil {
				t.Fatalf("yaml: %v", err)
			}
			var fromYAML astNode
			if err := yaml.Unmarshal(yamlOut.Bytes(), &fromYAML); err != nil {
				t.Fatalf("yaml output does not decode: %v", err)
			}
			if got := countDocNodes(&fromYAML); got != want {
				t.Errorf("yaml document has %d nodes, want %d", got, want)
			}
		})
	}
}
