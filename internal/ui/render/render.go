// Package render draws instruction diff tokens as text. Each Renderer
// consumes the token stream of one line at a time and knows nothing about
// diff semantics beyond the token types.
package render

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ianlancetaylor/demangle"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
	"insdiff/internal/insdiff/styles"
)

// Renderer writes instruction lines to an output.
type Renderer interface {
	// Line renders the tokens of one instruction. d is the diff the tokens
	// were produced from; renderers only read its Kind.
	Line(d *disasm.InsDiff, tokens iter.Seq2[display.DiffText, error]) error
	// Flush writes anything buffered.
	Flush() error
}

// Formats lists the accepted output formats.
var Formats = []string{"plain", "ansi", "chroma", "html", "json"}

// Options configures New.
type Options struct {
	Palette   styles.Palette
	Style     string // chroma style
	Formatter string // chroma formatter, for the chroma format
}

// New returns the renderer for format.
func New(format string, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case "plain":
		return NewPlain(w), nil
	case "ansi":
		if opts.Palette.Rotation == nil {
			opts.Palette = styles.Charm
		}
		return NewStyled(w, opts.Palette), nil
	case "chroma":
		formatter := opts.Formatter
		if formatter == "" {
			formatter = "terminal16m"
		}
		return NewChroma(w, formatter, opts.Style)
	case "html":
		return NewChroma(w, "html", opts.Style)
	case "json":
		return NewJSON(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(Formats, ", "))
}

// SymbolName returns the display name of a symbol, demangling it when no
// demangled name was provided.
func SymbolName(sym *disasm.Symbol) string {
	if sym.DemangledName != "" {
		return sym.DemangledName
	}
	return demangle.Filter(sym.Name)
}

// Text returns the plain text of a token.
func Text(t display.DiffText) string {
	switch t := t.(type) {
	case display.Basic:
		return t.Text
	case display.BasicColor:
		return t.Text
	case display.Line:
		return fmt.Sprintf("%d ", t.Number)
	case display.Address:
		return fmt.Sprintf("%x:", t.Offset)
	case display.Opcode:
		return t.Mnemonic + " "
	case display.Argument:
		return t.Value.String()
	case display.BranchTarget:
		return fmt.Sprintf("%x", t.Address)
	case display.Symbol:
		return SymbolName(t.Symbol)
	case display.Spacing:
		return strings.Repeat(" ", t.Count)
	case display.Eol:
		return "\n"
	}
	return ""
}

// Lines renders every instruction of a document with r, stopping at the
// first error.
func Lines(r Renderer, e *display.Emitter, doc *disasm.Document) error {
	for i := range doc.Instructions {
		d := &doc.Instructions[i]
		if err := r.Line(d, e.Tokens(d, doc.BaseAddress)); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return r.Flush()
}
