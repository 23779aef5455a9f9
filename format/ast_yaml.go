package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/erminia/erminia/ast"
)

type ASTYAMLEncoder struct {
	w    io.Writer
	opts options
}

func NewASTYAMLEncoder(w io.Writer, opts ...Option) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w, opts: buildOptions(opts)}
}

func (e *ASTYAMLEncoder) Encode(node ast.Node) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(treeOf(node, e.opts.positions)); err != nil {
		return err
	}
	return enc.Close()
}

func (e *ASTYAMLEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return yaml.Marshal(treeOf(node, e.opts.positions))
}
