package render

import (
	"fmt"
	"io"
	"iter"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
)

// Chroma maps tokens onto chroma token types and formats the whole output
// with a chroma formatter on Flush.
type Chroma struct {
	w         io.Writer
	formatter chroma.Formatter
	style     *chroma.Style
	tokens    []chroma.Token
}

// NewChroma returns a renderer using the named chroma formatter and style.
// An empty style selects disasm-dark.
func NewChroma(w io.Writer, formatter, style string) (*Chroma, error) {
	_ = DisasmDark // Force registration

	f, ok := formatters.Registry[formatter]
	if !ok {
		return nil, fmt.Errorf("unknown chroma formatter %q (available: %v)", formatter, registryNames(formatters.Registry))
	}
	if style == "" {
		style = DisasmDark.Name
	}
	s, ok := chromastyles.Registry[style]
	if !ok {
		return nil, fmt.Errorf("unknown chroma style %q", style)
	}
	return &Chroma{w: w, formatter: f, style: s}, nil
}

func registryNames[V any](registry map[string]V) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TokenType returns the chroma token type for a token on a line of the
// given kind.
func TokenType(t display.DiffText, kind disasm.DiffKind) chroma.TokenType {
	switch t := t.(type) {
	case display.Line:
		return chroma.Comment
	case display.Address:
		return chroma.NameLabel
	case display.BasicColor:
		return rotateType(t.Color)
	case display.Symbol:
		return chroma.NameFunction
	case display.Spacing, display.Eol:
		return chroma.Text
	}

	switch kind {
	case disasm.DiffInsert:
		return chroma.GenericInserted
	case disasm.DiffDelete:
		return chroma.GenericDeleted
	}

	switch t := t.(type) {
	case display.Opcode:
		if kind == disasm.DiffOpMismatch {
			return chroma.KeywordReserved
		}
		return chroma.Keyword
	case display.Argument:
		if t.Diff != nil {
			return rotateType(t.Diff.Idx)
		}
		if t.Value.Kind == disasm.ArgOpaque {
			return chroma.NameVariable
		}
		return chroma.LiteralNumber
	case display.BranchTarget:
		return chroma.LiteralNumber
	}
	return chroma.Punctuation
}

func rotateType(idx int) chroma.TokenType {
	if idx < 0 {
		idx = -idx
	}
	return branchTypes[idx%len(branchTypes)]
}

// Line buffers one line. Nothing is buffered if the token stream fails.
func (c *Chroma) Line(d *disasm.InsDiff, tokens iter.Seq2[display.DiffText, error]) error {
	kind := disasm.DiffNone
	if d != nil {
		kind = d.Kind
	}
	var line []chroma.Token
	for t, err := range tokens {
		if err != nil {
			return err
		}
		line = append(line, chroma.Token{Type: TokenType(t, kind), Value: Text(t)})
	}
	c.tokens = append(c.tokens, line...)
	return nil
}

// Flush formats everything buffered so far.
func (c *Chroma) Flush() error {
	if len(c.tokens) == 0 {
		return nil
	}
	err := c.formatter.Format(c.w, c.style, chroma.Literator(c.tokens...))
	c.tokens = nil
	return err
}
