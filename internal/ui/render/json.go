package render

import (
	"encoding/json"
	"io"
	"iter"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
)

// TokenJSON is the JSON form of a token.
type TokenJSON struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	Color    *int             `json:"color,omitempty"`
	Line     uint32           `json:"line,omitempty"`
	Address  *uint32          `json:"address,omitempty"`
	Op       *uint8           `json:"op,omitempty"`
	Value    *disasm.ArgValue `json:"value,omitempty"`
	ArgDiff  *disasm.ArgDiff  `json:"argDiff,omitempty"`
	Symbol   *disasm.Symbol   `json:"symbol,omitempty"`
	Count    int              `json:"count,omitempty"`
	Rendered string           `json:"rendered"`
}

// LineJSON is one rendered instruction line.
type LineJSON struct {
	Kind   disasm.DiffKind `json:"kind,omitempty"`
	Tokens []TokenJSON     `json:"tokens"`
}

// JSON writes one JSON object per line for consumers that do their own
// drawing.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

// EncodeToken converts a token to its JSON form.
func EncodeToken(t display.DiffText) TokenJSON {
	out := TokenJSON{Rendered: Text(t)}
	switch t := t.(type) {
	case display.Basic:
		out.Type, out.Text = "basic", t.Text
	case display.BasicColor:
		out.Type, out.Text, out.Color = "basic_color", t.Text, &t.Color
	case display.Line:
		out.Type, out.Line = "line", t.Number
	case display.Address:
		out.Type, out.Address = "address", &t.Offset
	case display.Opcode:
		out.Type, out.Text, out.Op = "opcode", t.Mnemonic, &t.Op
	case display.Argument:
		out.Type, out.Value, out.ArgDiff = "argument", &t.Value, t.Diff
	case display.BranchTarget:
		out.Type, out.Address = "branch_target", &t.Address
	case display.Symbol:
		out.Type, out.Symbol, out.Text = "symbol", t.Symbol, SymbolName(t.Symbol)
	case display.Spacing:
		out.Type, out.Count = "spacing", t.Count
	case display.Eol:
		out.Type = "eol"
	}
	return out
}

// Line writes one line. Nothing is written if the token stream fails.
func (j *JSON) Line(d *disasm.InsDiff, tokens iter.Seq2[display.DiffText, error]) error {
	line := LineJSON{Tokens: []TokenJSON{}}
	if d != nil {
		line.Kind = d.Kind
	}
	for t, err := range tokens {
		if err != nil {
			return err
		}
		line.Tokens = append(line.Tokens, EncodeToken(t))
	}
	return j.enc.Encode(line)
}

func (j *JSON) Flush() error { return nil }
