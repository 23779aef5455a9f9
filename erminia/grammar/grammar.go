// Package grammar carries the EBNF description of the erminia syntax that
// the hand-written parser implements.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"golang.org/x/exp/ebnf"
)

// Start is the production every erminia file is derived from.
const Start = "Program"

const filename = "erminia.ebnf"

//go:embed erminia.ebnf
var source []byte

// Source returns the grammar text.
func Source() string {
	return string(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Check parses the grammar and verifies that every production is defined
// and reachable from Start.
func Check() error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Productions returns the production names in the order they are defined.
func Productions() ([]string, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return g[names[i]].Pos().Offset < g[names[j]].Pos().Offset
	})
	return names, nil
}
