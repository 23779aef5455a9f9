package codebase

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/erminia/parser"
	"github.com/dhamidi/erminia/erminia/token"
	"github.com/dhamidi/erminia/erminia/types"
)

// Ext is the file extension of erminia sources.
const Ext = ".erm"

// Codebase holds the latest parse of every known source file. It is safe
// for concurrent use.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	log     commonlog.Logger
}

type FileInfo struct {
	Path     string
	Content  []byte
	AST      *ast.Program
	ParseErr error
	CheckErr error
	// Objects and Variables survive a failed parse so completion keeps
	// working while a file is being edited.
	Objects   []string
	Variables []string
}

// Err returns the first problem found in the file.
func (f *FileInfo) Err() error {
	if f.ParseErr != nil {
		return f.ParseErr
	}
	return f.CheckErr
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		log:     commonlog.GetLogger("erminia.codebase"),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every source file below the root directory.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			if err := c.ScanFile(path); err != nil {
				c.log.Warningf("scan %s: %v", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile reparses content as the new text of path.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) *FileInfo {
	info := &FileInfo{Path: path, Content: content}

	node, err := parser.ParseProgram(bytes.NewReader(content), parser.WithFile(filepath.Base(path))).Finish()
	if err != nil {
		info.ParseErr = err
		if prev := c.files[path]; prev != nil {
			info.Objects = prev.Objects
			info.Variables = prev.Variables
		}
		c.log.Debugf("%s: %v", path, err)
	} else {
		prog := node.(*ast.Program)
		info.AST = prog
		info.CheckErr = ast.Check(prog)
		info.Objects, info.Variables = declaredNames(prog)
	}

	c.files[path] = info
	return info
}

func declaredNames(prog *ast.Program) (objects, variables []string) {
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ObjectDecl:
			objects = append(objects, n.ID)
			return false
		case *ast.VarDef:
			variables = append(variables, n.ID)
			return false
		}
		return true
	})
	return objects, variables
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// AllObjects returns the names of objects declared in any known file.
func (c *Codebase) AllObjects() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, f := range c.files {
		for _, name := range f.Objects {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Diagnostic is a problem located in a source file.
type Diagnostic struct {
	Span    token.Span
	Message string
}

// Diagnostics returns the problems of path. Parse errors cover the token
// they were reported at.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	if f.ParseErr != nil {
		start, ok := parser.Location(f.ParseErr)
		if !ok {
			start = token.StartPosition()
		}
		return []Diagnostic{{
			Span:    token.Span{Start: start, End: tokenEnd(string(f.Content), start)},
			Message: f.ParseErr.Error(),
		}}
	}
	if f.CheckErr != nil {
		return []Diagnostic{{Span: f.AST.Span(), Message: f.CheckErr.Error()}}
	}
	return nil
}

// tokenEnd returns the end of the token starting at pos, or one byte past
// pos when no token can be formed there.
func tokenEnd(text string, pos token.Position) token.Position {
	if pos.Offset < len(text) {
		if _, end, err := lexer.Classify(text, pos); err == nil && end.Offset > pos.Offset && end.Line == pos.Line {
			return end
		}
	}
	end := pos
	end.Offset++
	end.Column++
	return end
}

type SymbolKind int

const (
	SymbolProgram SymbolKind = iota
	SymbolSection
	SymbolObject
	SymbolVariable
)

type Symbol struct {
	Name     string
	Detail   string
	Kind     SymbolKind
	Span     token.Span
	Children []Symbol
}

// Symbols returns the outline of path's last successful parse.
func (c *Codebase) Symbols(path string) []Symbol {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return nil
	}
	prog := f.AST
	return []Symbol{{
		Name:     prog.ID,
		Detail:   "def",
		Kind:     SymbolProgram,
		Span:     prog.Span(),
		Children: symbolsOf(prog.Statements),
	}}
}

func symbolsOf(stmts []ast.Stmt) []Symbol {
	var symbols []Symbol
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.ObjectDecl:
			symbols = append(symbols, Symbol{Name: n.ID, Detail: "object", Kind: SymbolObject, Span: n.Span()})
		case *ast.VarDef:
			symbols = append(symbols, Symbol{Name: n.ID, Detail: n.Type.String(), Kind: SymbolVariable, Span: n.Span()})
		default:
			if keyword, id, body, ok := ast.Section(n); ok {
				symbols = append(symbols, Symbol{
					Name:     id,
					Detail:   keyword,
					Kind:     SymbolSection,
					Span:     n.Span(),
					Children: symbolsOf(body),
				})
			}
		}
	}
	return symbols
}

type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindType
	CompletionKindObject
	CompletionKindVariable
)

type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// CompletionsAtPoint suggests what can be typed at the 1-based line and
// column of path. After a ':' in a let binding only type names are
// offered.
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}

	if inTypeAnnotation(linePrefix(f.Content, line, column)) {
		var items []CompletionItem
		for _, name := range types.Names() {
			items = append(items, CompletionItem{Label: name, Kind: CompletionKindType, Detail: "type"})
		}
		return items
	}

	var items []CompletionItem
	for _, kw := range token.Keywords {
		items = append(items, CompletionItem{Label: kw.Text, Kind: CompletionKindKeyword, Detail: "keyword"})
	}
	for _, name := range c.AllObjects() {
		items = append(items, CompletionItem{Label: name, Kind: CompletionKindObject, Detail: "object"})
	}
	for _, name := range f.Variables {
		items = append(items, CompletionItem{Label: name, Kind: CompletionKindVariable, Detail: "let"})
	}
	return items
}

func linePrefix(content []byte, line, column int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	if column-1 < len(text) {
		text = text[:max(column-1, 0)]
	}
	return text
}

func inTypeAnnotation(prefix string) bool {
	trimmed := strings.TrimRight(prefix, "abcdefghijklmnopqrstuvwxyz")
	trimmed = strings.TrimSpace(trimmed)
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	fields := strings.Fields(strings.TrimSuffix(trimmed, ":"))
	return len(fields) >= 2 && fields[len(fields)-2] == "let"
}
