package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/erminia/erminia/token"
)

// WriteTokens lists toks one per line as kind, quoted text and start
// position.
func WriteTokens(w io.Writer, toks []token.Token) error {
	for _, tok := range toks {
		if _, err := fmt.Fprintf(w, "%-16s %-20q %s\n", tok.Kind, tok.Text, tok.Start()); err != nil {
			return err
		}
	}
	return nil
}

type jsonToken struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Start astPosition `json:"start"`
	End   astPosition `json:"end"`
}

func WriteTokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]jsonToken, len(toks))
	for i, tok := range toks {
		out[i] = jsonToken{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: positionOf(tok.Start()),
			End:   positionOf(tok.End()),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
