package render

import (
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"insdiff/internal/disasm"
	"insdiff/internal/display"
	"insdiff/internal/insdiff/styles"
)

// Styled writes ANSI colored text using lipgloss.
type Styled struct {
	w       io.Writer
	palette styles.Palette

	deemphasized lipgloss.Style
	emphasized   lipgloss.Style
	mismatch     lipgloss.Style
	base         map[disasm.DiffKind]lipgloss.Style
}

func NewStyled(w io.Writer, p styles.Palette) *Styled {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	s := &Styled{
		w:            w,
		palette:      p,
		deemphasized: fg(p.Deemphasized),
		emphasized:   fg(p.Emphasized),
		mismatch:     fg(p.Mismatch),
		base: map[disasm.DiffKind]lipgloss.Style{
			disasm.DiffInsert:  fg(p.Insert),
			disasm.DiffDelete:  fg(p.Delete),
			disasm.DiffReplace: fg(p.Replace),
		},
	}
	return s
}

func (s *Styled) rotate(idx int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.palette.RotationColor(idx)))
}

// Render returns the styled text of one token for a line of the given kind.
func (s *Styled) Render(t display.DiffText, kind disasm.DiffKind) string {
	text := Text(t)
	base, ok := s.base[kind]
	if !ok {
		base = lipgloss.NewStyle().Foreground(lipgloss.Color(s.palette.Text))
	}

	switch t := t.(type) {
	case display.Spacing, display.Eol:
		return text
	case display.Line, display.Address:
		return s.deemphasized.Render(text)
	case display.BasicColor:
		return s.rotate(t.Color).Render(text)
	case display.Opcode:
		if kind == disasm.DiffOpMismatch {
			return s.mismatch.Render(text)
		}
	case display.Argument:
		if t.Diff != nil {
			return s.rotate(t.Diff.Idx).Render(text)
		}
	case display.Symbol:
		return s.emphasized.Render(text)
	}
	return base.Render(text)
}

// Line writes one line. Nothing is written if the token stream fails.
func (s *Styled) Line(d *disasm.InsDiff, tokens iter.Seq2[display.DiffText, error]) error {
	kind := disasm.DiffNone
	if d != nil {
		kind = d.Kind
	}
	var sb strings.Builder
	for t, err := range tokens {
		if err != nil {
			return err
		}
		sb.WriteString(s.Render(t, kind))
	}
	_, err := io.WriteString(s.w, sb.String())
	return err
}

func (s *Styled) Flush() error { return nil }
