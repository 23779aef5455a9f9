// Package format renders syntax trees and token streams for the command
// line and editor integrations.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/erminia/erminia/ast"
)

type Encoder interface {
	Encode(node ast.Node) error
}

type options struct {
	positions bool
}

type Option func(*options)

// WithPositions includes node spans in the output.
func WithPositions() Option {
	return func(o *options) {
		o.positions = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Names lists the formats accepted by NewEncoder.
func Names() []string {
	return []string{"text", "json", "yaml"}
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer, opts ...Option) (Encoder, error) {
	switch name {
	case "text", "":
		return NewTextEncoder(w, opts...), nil
	case "json":
		return NewASTJSONEncoder(w, opts...), nil
	case "yaml", "yml":
		return NewASTYAMLEncoder(w, opts...), nil
	}
	return nil, fmt.Errorf("unknown format %q (valid: text, json, yaml)", name)
}

type TextEncoder struct {
	w    io.Writer
	opts options
}

func NewTextEncoder(w io.Writer, opts ...Option) *TextEncoder {
	return &TextEncoder{w: w, opts: buildOptions(opts)}
}

func (e *TextEncoder) Encode(node ast.Node) error {
	var printOpts []ast.PrintOption
	if e.opts.positions {
		printOpts = append(printOpts, ast.WithPositions())
	}
	return ast.Fprint(e.w, node, printOpts...)
}
