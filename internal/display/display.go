package display

import (
	"errors"
	"fmt"
	"iter"

	"insdiff/internal/arch"
	"insdiff/internal/disasm"
)

var (
	// ErrUnsupportedReloc is returned for relocation kinds without a
	// textual form.
	ErrUnsupportedReloc = errors.New("unimplemented relocation kind")
	// ErrMissingReloc is returned when an argument refers to the
	// instruction's relocation but the instruction has none.
	ErrMissingReloc = errors.New("relocation argument without relocation")
)

// Sink receives tokens in display order. Returning an error stops emission.
type Sink func(DiffText) error

// Emitter produces display tokens using one architecture's relocation
// conventions. It holds no per-call state.
type Emitter struct {
	relocs *arch.Table
}

// NewEmitter returns an emitter for the given relocation table. A nil table
// selects every registered architecture.
func NewEmitter(relocs *arch.Table) *Emitter {
	if relocs == nil {
		relocs = arch.All()
	}
	return &Emitter{relocs: relocs}
}

// Arch returns the relocation table in use.
func (e *Emitter) Arch() *arch.Table { return e.relocs }

// Emit sends the tokens of one instruction line to sink. base is subtracted
// from instruction addresses. The first error from sink or from formatting
// is returned and no further tokens are produced.
func (e *Emitter) Emit(d *disasm.InsDiff, base uint32, sink Sink) error {
	if d == nil || d.Ins == nil {
		return sink(Eol{})
	}
	ins := d.Ins

	if ins.Line != nil {
		if err := sink(Line{Number: *ins.Line}); err != nil {
			return err
		}
	}
	if err := sink(Address{Offset: ins.Address - base}); err != nil {
		return err
	}

	var err error
	if d.BranchFrom != nil {
		err = sink(BasicColor{Text: " ~> ", Color: d.BranchFrom.BranchIdx})
	} else {
		err = sink(Spacing{Count: 4})
	}
	if err != nil {
		return err
	}

	if err := sink(Opcode{Mnemonic: ins.Mnemonic, Op: ins.Op}); err != nil {
		return err
	}

	writingOffset := false
	for i, arg := range ins.Args {
		if i == 0 {
			if err := sink(Spacing{Count: 1}); err != nil {
				return err
			}
		}
		if i > 0 && !writingOffset {
			if err := sink(Basic{Text: ", "}); err != nil {
				return err
			}
		}

		newWritingOffset := false
		switch arg := arg.(type) {
		case disasm.ValueArg:
			if err := sink(Argument{Value: arg.Value, Diff: d.ArgDiffAt(i)}); err != nil {
				return err
			}
		case disasm.BaseArg:
			if err := sink(Argument{Value: arg.Value, Diff: d.ArgDiffAt(i)}); err != nil {
				return err
			}
			if err := sink(Basic{Text: "("}); err != nil {
				return err
			}
			newWritingOffset = true
		case disasm.RelocArg, disasm.RelocBaseArg:
			if ins.Reloc == nil {
				return fmt.Errorf("%w: argument %d of instruction at %#x", ErrMissingReloc, i, ins.Address)
			}
			if err := e.EmitReloc(ins.Reloc, sink); err != nil {
				return err
			}
			if _, ok := arg.(disasm.RelocBaseArg); ok {
				if err := sink(Basic{Text: "("}); err != nil {
					return err
				}
				newWritingOffset = true
			}
		case disasm.BranchArg:
			target := arg.Offset + int32(ins.Address) - int32(base)
			if err := sink(BranchTarget{Address: uint32(target)}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("argument %d: unsupported type %T", i, arg)
		}

		if writingOffset {
			if err := sink(Basic{Text: ")"}); err != nil {
				return err
			}
		}
		writingOffset = newWritingOffset
	}
	if writingOffset {
		if err := sink(Basic{Text: ")"}); err != nil {
			return err
		}
	}

	if d.BranchTo != nil {
		if err := sink(BasicColor{Text: " ~>", Color: d.BranchTo.BranchIdx}); err != nil {
			return err
		}
	}
	return sink(Eol{})
}

// errStop ends emission when a Tokens consumer stops iterating.
var errStop = errors.New("stop")

// Tokens returns the tokens of one instruction line as a sequence. Each
// token is paired with a nil error; if formatting fails the sequence ends
// with a single (nil, err) pair. The sequence can be iterated repeatedly.
func (e *Emitter) Tokens(d *disasm.InsDiff, base uint32) iter.Seq2[DiffText, error] {
	return func(yield func(DiffText, error) bool) {
		err := e.Emit(d, base, func(t DiffText) error {
			if !yield(t, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(nil, err)
		}
	}
}

// Collect gathers a token sequence into a slice. On error the tokens
// produced so far are returned along with it.
func Collect(seq iter.Seq2[DiffText, error]) ([]DiffText, error) {
	var out []DiffText
	for t, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}
