package display

import (
	"errors"
	"reflect"
	"testing"

	"insdiff/internal/arch"
	"insdiff/internal/disasm"
)

func collect(t *testing.T, e *Emitter, d *disasm.InsDiff, base uint32) []DiffText {
	t.Helper()
	var got []DiffText
	if err := e.Emit(d, base, func(tok DiffText) error {
		got = append(got, tok)
		return nil
	}); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	return got
}

func reg(name string) disasm.ValueArg {
	return disasm.ValueArg{Value: disasm.Opaque(name)}
}

// lwz r3, gCount@sda21(r13)
func sdaLoad() *disasm.InsDiff {
	return &disasm.InsDiff{
		Ins: &disasm.Ins{
			Address:  0x80000004,
			Line:     disasm.Line(12),
			Mnemonic: "lwz",
			Op:       7,
			Args:     disasm.Args{reg("r3"), disasm.RelocBaseArg{}, reg("r13")},
			Reloc: &disasm.Reloc{
				Kind:   disasm.RelocPPCEmbSda21,
				Target: disasm.Symbol{Name: "gCount"},
			},
		},
		ArgDiff: []*disasm.ArgDiff{{Idx: 2}, nil, nil},
	}
}

func TestEmitUndecoded(t *testing.T) {
	e := NewEmitter(arch.PPC)
	tests := []struct {
		name string
		diff *disasm.InsDiff
	}{
		{name: "nil diff", diff: nil},
		{name: "no instruction", diff: &disasm.InsDiff{Kind: disasm.DiffInsert}},
		{name: "branch info without instruction", diff: &disasm.InsDiff{
			BranchFrom: &disasm.BranchInfo{BranchIdx: 1},
			BranchTo:   &disasm.BranchInfo{BranchIdx: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, e, tt.diff, 0)
			if !reflect.DeepEqual(got, []DiffText{Eol{}}) {
				t.Errorf("got %#v, want [Eol]", got)
			}
		})
	}
}

func TestEmitFullLine(t *testing.T) {
	d := sdaLoad()
	got := collect(t, NewEmitter(arch.PPC), d, 0x80000000)

	want := []DiffText{
		Line{Number: 12},
		Address{Offset: 4},
		Spacing{Count: 4},
		Opcode{Mnemonic: "lwz", Op: 7},
		Spacing{Count: 1},
		Argument{Value: disasm.Opaque("r3"), Diff: d.ArgDiff[0]},
		Basic{Text: ", "},
		Symbol{Symbol: &d.Ins.Reloc.Target},
		Basic{Text: "@sda21"},
		Basic{Text: "("},
		Argument{Value: disasm.Opaque("r13")},
		Basic{Text: ")"},
		Eol{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens mismatch\ngot:  %#v\nwant: %#v", got, want)
	}

	sym := got[7].(Symbol)
	if sym.Symbol != &d.Ins.Reloc.Target {
		t.Error("Symbol token should point at the caller's relocation target")
	}
}

func TestEmitBaseArg(t *testing.T) {
	// stw r0, 0x8(r1)
	d := &disasm.InsDiff{
		Ins: &disasm.Ins{
			Address:  0x10,
			Mnemonic: "stw",
			Args: disasm.Args{
				reg("r0"),
				disasm.BaseArg{Value: disasm.Signed(8)},
				reg("r1"),
			},
		},
	}
	got := collect(t, NewEmitter(arch.PPC), d, 0)

	want := []DiffText{
		Address{Offset: 0x10},
		Spacing{Count: 4},
		Opcode{Mnemonic: "stw"},
		Spacing{Count: 1},
		Argument{Value: disasm.Opaque("r0")},
		Basic{Text: ", "},
		Argument{Value: disasm.Signed(8)},
		Basic{Text: "("},
		Argument{Value: disasm.Opaque("r1")},
		Basic{Text: ")"},
		Eol{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestEmitBaseArgLast(t *testing.T) {
	d := &disasm.InsDiff{
		Ins: &disasm.Ins{
			Mnemonic: "lwz",
			Args:     disasm.Args{reg("r3"), disasm.BaseArg{Value: disasm.Signed(-4)}},
		},
	}
	got := collect(t, NewEmitter(arch.PPC), d, 0)

	want := []DiffText{
		Address{},
		Spacing{Count: 4},
		Opcode{Mnemonic: "lwz"},
		Spacing{Count: 1},
		Argument{Value: disasm.Opaque("r3")},
		Basic{Text: ", "},
		Argument{Value: disasm.Signed(-4)},
		Basic{Text: "("},
		Basic{Text: ")"},
		Eol{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestEmitBranches(t *testing.T) {
	tests := []struct {
		name    string
		address uint32
		offset  int32
		base    uint32
		want    uint32
	}{
		{name: "backward", address: 0x1000, offset: -0x20, base: 0, want: 0xFE0},
		{name: "forward", address: 0x1000, offset: 0x40, base: 0, want: 0x1040},
		{name: "relative to base", address: 0x80003010, offset: -0x10, base: 0x80003000, want: 0},
		{name: "before base wraps", address: 0x100, offset: -0x200, base: 0, want: 0xFFFFFF00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &disasm.InsDiff{
				Ins: &disasm.Ins{
					Address:  tt.address,
					Mnemonic: "b",
					Args:     disasm.Args{disasm.BranchArg{Offset: tt.offset}},
				},
			}
			got := collect(t, NewEmitter(arch.PPC), d, tt.base)
			if len(got) != 6 {
				t.Fatalf("got %d tokens, want 6: %#v", len(got), got)
			}
			if got[4] != (BranchTarget{Address: tt.want}) {
				t.Errorf("branch target = %#v, want %#x", got[4], tt.want)
			}
		})
	}
}

func TestEmitBranchMarkers(t *testing.T) {
	d := &disasm.InsDiff{
		Ins: &disasm.Ins{
			Address:  0x20,
			Mnemonic: "bne",
			Op:       3,
			Args:     disasm.Args{disasm.BranchArg{Offset: 8}},
		},
		BranchFrom: &disasm.BranchInfo{InsIdx: 2, BranchIdx: 5},
		BranchTo:   &disasm.BranchInfo{InsIdx: 10, BranchIdx: 6},
	}
	got := collect(t, NewEmitter(arch.PPC), d, 0)

	want := []DiffText{
		Address{Offset: 0x20},
		BasicColor{Text: " ~> ", Color: 5},
		Opcode{Mnemonic: "bne", Op: 3},
		Spacing{Count: 1},
		BranchTarget{Address: 0x28},
		BasicColor{Text: " ~>", Color: 6},
		Eol{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestEmitTokenCount(t *testing.T) {
	tests := []struct {
		name string
		diff *disasm.InsDiff
		args int // tokens contributed by the argument list
	}{
		{name: "no args", diff: &disasm.InsDiff{Ins: &disasm.Ins{Mnemonic: "blr"}}, args: 0},
		{name: "one arg", diff: &disasm.InsDiff{Ins: &disasm.Ins{
			Mnemonic: "mtlr", Args: disasm.Args{reg("r0")},
		}}, args: 2},
		{name: "three args with line", diff: &disasm.InsDiff{Ins: &disasm.Ins{
			Mnemonic: "addi", Line: disasm.Line(3),
			Args: disasm.Args{reg("r1"), reg("r1"), disasm.ValueArg{Value: disasm.Signed(-16)}},
		}}, args: 6},
		{name: "base arg", diff: &disasm.InsDiff{Ins: &disasm.Ins{
			Mnemonic: "stwu", Args: disasm.Args{reg("r1"), disasm.BaseArg{Value: disasm.Signed(-16)}, reg("r1")},
		}}, args: 7},
		{name: "reloc with addend and both branches", diff: &disasm.InsDiff{
			Ins: &disasm.Ins{
				Mnemonic: "lis", Args: disasm.Args{reg("r3"), disasm.RelocArg{}},
				Reloc: &disasm.Reloc{Kind: disasm.RelocPPCAddr16Ha, Target: disasm.Symbol{Name: "table"}, Addend: 8},
			},
			BranchFrom: &disasm.BranchInfo{},
			BranchTo:   &disasm.BranchInfo{},
		}, args: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, NewEmitter(arch.PPC), tt.diff, 0)
			want := 1 + 1 + 1 + tt.args + 1
			if tt.diff.Ins.Line != nil {
				want++
			}
			if tt.diff.BranchTo != nil {
				want++
			}
			if len(got) != want {
				t.Errorf("got %d tokens, want %d: %#v", len(got), want, got)
			}

			opens, closes := 0, 0
			for _, tok := range got {
				if b, ok := tok.(Basic); ok {
					switch b.Text {
					case "(":
						opens++
					case ")":
						closes++
					}
				}
			}
			if opens != closes {
				t.Errorf("unbalanced parentheses: %d opened, %d closed", opens, closes)
			}
		})
	}
}

func TestEmitMissingReloc(t *testing.T) {
	for _, arg := range []disasm.Arg{disasm.RelocArg{}, disasm.RelocBaseArg{}} {
		d := &disasm.InsDiff{
			Ins: &disasm.Ins{
				Address:  0x40,
				Mnemonic: "lis",
				Args:     disasm.Args{reg("r3"), arg},
			},
		}
		var got []DiffText
		err := NewEmitter(arch.PPC).Emit(d, 0, func(tok DiffText) error {
			got = append(got, tok)
			return nil
		})
		if !errors.Is(err, ErrMissingReloc) {
			t.Fatalf("%T: err = %v, want ErrMissingReloc", arg, err)
		}
		// address, spacing, opcode, spacing, r3, separator
		if len(got) != 6 {
			t.Errorf("%T: %d tokens delivered before the error, want 6", arg, len(got))
		}
	}
}

func TestEmitSinkFailure(t *testing.T) {
	d := sdaLoad()
	e := NewEmitter(arch.PPC)
	total := len(collect(t, e, d, 0x80000000))
	errSink := errors.New("sink closed")

	for k := 0; k < total; k++ {
		calls := 0
		err := e.Emit(d, 0x80000000, func(DiffText) error {
			calls++
			if calls == k+1 {
				return errSink
			}
			return nil
		})
		if err != errSink {
			t.Fatalf("k=%d: err = %v, want sink error", k, err)
		}
		if calls != k+1 {
			t.Errorf("k=%d: sink called %d times after failing, want %d", k, calls, k+1)
		}
	}
}

func TestEmitIdempotent(t *testing.T) {
	d := sdaLoad()
	e := NewEmitter(nil)
	first := collect(t, e, d, 0x80000000)
	second := collect(t, e, d, 0x80000000)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run differs\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestTokens(t *testing.T) {
	d := sdaLoad()
	e := NewEmitter(arch.PPC)

	got, err := Collect(e.Tokens(d, 0x80000000))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if want := collect(t, e, d, 0x80000000); !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens differs from Emit\ngot:  %#v\nwant: %#v", got, want)
	}

	n := 0
	for range e.Tokens(d, 0x80000000) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d tokens, want 3", n)
	}

	d.Ins.Reloc = nil
	partial, err := Collect(e.Tokens(d, 0x80000000))
	if !errors.Is(err, ErrMissingReloc) {
		t.Fatalf("err = %v, want ErrMissingReloc", err)
	}
	if len(partial) != 7 {
		t.Errorf("got %d tokens before the error, want 7", len(partial))
	}
}
