package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/erminia/token"
)

// Terminals maps the lexical productions of the grammar to the token kinds
// the lexer produces for them. Lexical productions are matched as whole
// tokens; their character-level definition is documentation only.
var Terminals = map[string]token.TokenKind{
	"identifier": token.TokenIdent,
	"int_lit":    token.TokenInt,
}

// symbol is either a terminal (literal text or token kind) or a reference
// to a rule set by name.
type symbol struct {
	literal  string
	kind     token.TokenKind
	terminal bool
	name     string
}

func (s symbol) String() string {
	switch {
	case s.terminal && s.literal != "":
		return fmt.Sprintf("%q", s.literal)
	case s.terminal:
		return s.kind.String()
	}
	return s.name
}

func (s symbol) matches(tok token.Token) bool {
	if s.literal != "" {
		return tok.Text == s.literal && tok.Kind != token.TokenString
	}
	return tok.Kind == s.kind
}

// rule is one alternative of a nonterminal, a plain sequence of symbols.
type rule struct {
	name string
	body []symbol
}

// Recognizer decides whether a token stream is a sentence of the grammar
// using Earley's algorithm. The EBNF productions are first flattened into
// plain rules: groups, options and repetitions become synthetic
// nonterminals.
type Recognizer struct {
	rules    []rule
	byName   map[string][]int
	nullable map[string]bool
	start    string
	synth    int
}

// NewRecognizer flattens g for recognition from start. Lexical productions
// referenced by g must be listed in Terminals.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if g[start] == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	r := &Recognizer{
		byName:   make(map[string][]int),
		nullable: make(map[string]bool),
		start:    start,
	}
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		if err := r.addAlternatives(name, prod.Expr); err != nil {
			return nil, err
		}
	}
	r.computeNullable()
	return r, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func (r *Recognizer) addRule(name string, body []symbol) {
	r.byName[name] = append(r.byName[name], len(r.rules))
	r.rules = append(r.rules, rule{name: name, body: body})
}

func (r *Recognizer) addAlternatives(name string, expr ebnf.Expression) error {
	if alt, ok := expr.(ebnf.Alternative); ok {
		for _, e := range alt {
			if err := r.addAlternatives(name, e); err != nil {
				return err
			}
		}
		return nil
	}
	body, err := r.sequence(expr)
	if err != nil {
		return err
	}
	r.addRule(name, body)
	return nil
}

func (r *Recognizer) sequence(expr ebnf.Expression) ([]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var body []symbol
		for _, x := range e {
			sym, err := r.symbol(x)
			if err != nil {
				return nil, err
			}
			body = append(body, sym)
		}
		return body, nil
	}
	sym, err := r.symbol(expr)
	if err != nil {
		return nil, err
	}
	return []symbol{sym}, nil
}

func (r *Recognizer) newSynthetic() string {
	r.synth++
	return fmt.Sprintf("$%d", r.synth)
}

func (r *Recognizer) symbol(expr ebnf.Expression) (symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Token:
		return symbol{literal: e.String, terminal: true}, nil

	case *ebnf.Name:
		if !isLexical(e.String) {
			return symbol{name: e.String}, nil
		}
		kind, ok := Terminals[e.String]
		if !ok {
			return symbol{}, fmt.Errorf("%s: lexical production %s has no token kind", e.Pos(), e.String)
		}
		return symbol{kind: kind, terminal: true}, nil

	case *ebnf.Group:
		name := r.newSynthetic()
		if err := r.addAlternatives(name, e.Body); err != nil {
			return symbol{}, err
		}
		return symbol{name: name}, nil

	case *ebnf.Option:
		name := r.newSynthetic()
		r.addRule(name, nil)
		if err := r.addAlternatives(name, e.Body); err != nil {
			return symbol{}, err
		}
		return symbol{name: name}, nil

	case *ebnf.Repetition:
		// name = ε | name body
		name := r.newSynthetic()
		body := r.newSynthetic()
		if err := r.addAlternatives(body, e.Body); err != nil {
			return symbol{}, err
		}
		r.addRule(name, nil)
		r.addRule(name, []symbol{{name: name}, {name: body}})
		return symbol{name: name}, nil

	case ebnf.Alternative, ebnf.Sequence:
		name := r.newSynthetic()
		if err := r.addAlternatives(name, e); err != nil {
			return symbol{}, err
		}
		return symbol{name: name}, nil
	}
	return symbol{}, fmt.Errorf("%s: unsupported expression %T outside a lexical production", expr.Pos(), expr)
}

func (r *Recognizer) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, ru := range r.rules {
			if r.nullable[ru.name] {
				continue
			}
			all := true
			for _, s := range ru.body {
				if s.terminal || !r.nullable[s.name] {
					all = false
					break
				}
			}
			if all {
				r.nullable[ru.name] = true
				changed = true
			}
		}
	}
}

// item is an Earley item: a rule with a dot position and an origin.
type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// SyntaxError reports the first token the grammar could not accept.
type SyntaxError struct {
	Token    token.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == token.TokenEOF {
		return fmt.Sprintf("%s: unexpected end of input", e.Token.Start())
	}
	return fmt.Sprintf("%s: unexpected %s %q", e.Token.Start(), e.Token.Kind, e.Token.Text)
}

// Recognize reports whether tokens, which must end with an EOF token, form
// a sentence derived from the start production.
func (r *Recognizer) Recognize(tokens []token.Token) error {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.TokenEOF {
		return fmt.Errorf("token stream does not end with EOF")
	}
	input := tokens[:len(tokens)-1]
	n := len(input)

	chart := make([]*itemSet, n+1)
	for i := range chart {
		chart[i] = &itemSet{seen: make(map[item]bool)}
	}
	for _, ri := range r.byName[r.start] {
		chart[0].add(item{rule: ri})
	}

	for i := 0; i <= n; i++ {
		set := chart[i]
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			ru := r.rules[it.rule]

			if it.dot == len(ru.body) {
				r.complete(chart, i, it)
				continue
			}

			next := ru.body[it.dot]
			if next.terminal {
				if i < n && next.matches(input[i]) {
					chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}

			for _, ri := range r.byName[next.name] {
				set.add(item{rule: ri, origin: i})
			}
			if r.nullable[next.name] {
				set.add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	for _, it := range chart[n].items {
		ru := r.rules[it.rule]
		if ru.name == r.start && it.origin == 0 && it.dot == len(ru.body) {
			return nil
		}
	}

	furthest := 0
	for i := n; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}
	return &SyntaxError{Token: tokens[furthest], Expected: r.expected(chart[furthest])}
}

func (r *Recognizer) complete(chart []*itemSet, pos int, done item) {
	name := r.rules[done.rule].name
	origin := chart[done.origin]
	for k := 0; k < len(origin.items); k++ {
		it := origin.items[k]
		body := r.rules[it.rule].body
		if it.dot < len(body) && !body[it.dot].terminal && body[it.dot].name == name {
			chart[pos].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}

func (r *Recognizer) expected(set *itemSet) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range set.items {
		body := r.rules[it.rule].body
		if it.dot < len(body) && body[it.dot].terminal {
			s := body[it.dot].String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Recognize checks src against the embedded grammar, tokenizing it with the
// erminia lexer with comments skipped.
func Recognize(src string) error {
	g, err := Load()
	if err != nil {
		return err
	}
	r, err := NewRecognizer(g, Start)
	if err != nil {
		return err
	}
	tokens, err := lexer.New(src, lexer.SkipComments()).Tokenize()
	if err != nil {
		return err
	}
	return r.Recognize(tokens)
}
