package display

import (
	"fmt"

	"insdiff/internal/arch"
	"insdiff/internal/disasm"
)

// EmitReloc sends the tokens of a relocation reference, wrapped in the
// syntax of the emitter's architecture.
func (e *Emitter) EmitReloc(r *disasm.Reloc, sink Sink) error {
	f, ok := e.relocs.Format(r.Kind)
	if !ok {
		return fmt.Errorf("%w %s for %s", ErrUnsupportedReloc, r.Kind, e.relocs.Name())
	}

	switch f.Style {
	case arch.Bare:
		return EmitRelocName(r, sink)
	case arch.Suffix:
		if err := EmitRelocName(r, sink); err != nil {
			return err
		}
		return sink(Basic{Text: f.Text})
	case arch.Wrap:
		if err := sink(Basic{Text: f.Text}); err != nil {
			return err
		}
		if err := EmitRelocName(r, sink); err != nil {
			return err
		}
		return sink(Basic{Text: ")"})
	case arch.Invalid:
		return sink(Basic{Text: f.Text})
	default:
		return fmt.Errorf("%w %s", ErrUnsupportedReloc, r.Kind)
	}
}

// EmitRelocName sends the relocation's target symbol followed by its
// addend, if any.
func EmitRelocName(r *disasm.Reloc, sink Sink) error {
	if err := sink(Symbol{Symbol: &r.Target}); err != nil {
		return err
	}
	switch {
	case r.Addend > 0:
		return sink(Basic{Text: fmt.Sprintf("+0x%X", r.Addend)})
	case r.Addend < 0:
		return sink(Basic{Text: fmt.Sprintf("-0x%X", uint64(-r.Addend))})
	}
	return nil
}
