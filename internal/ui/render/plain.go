package render

import (
	"io"
	"iter"
	"strings"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
)

// Plain writes uncolored text.
type Plain struct {
	w io.Writer
}

func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

// Line writes one line. Nothing is written if the token stream fails.
func (p *Plain) Line(_ *disasm.InsDiff, tokens iter.Seq2[display.DiffText, error]) error {
	var sb strings.Builder
	for t, err := range tokens {
		if err != nil {
			return err
		}
		sb.WriteString(Text(t))
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *Plain) Flush() error { return nil }
