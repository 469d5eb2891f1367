// Package disasm defines the instruction diff representation shared by the
// token emitter, the renderers and the input decoders.
package disasm

import "fmt"

// Symbol is a resolved symbol referenced by a relocation.
type Symbol struct {
	Name          string `json:"name"`
	DemangledName string `json:"demangledName,omitempty"`
	Address       uint64 `json:"address,omitempty"`
	Size          uint64 `json:"size,omitempty"`
}

// Reloc is a relocation applied to an instruction.
type Reloc struct {
	Kind   RelocKind `json:"kind"`
	Target Symbol    `json:"target"`
	Addend int64     `json:"addend,omitempty"`
}

// ArgValueKind tells how an ArgValue is stored.
type ArgValueKind string

const (
	ArgSigned   ArgValueKind = "signed"
	ArgUnsigned ArgValueKind = "unsigned"
	ArgOpaque   ArgValueKind = "opaque"
)

// ArgValue is the printable value of an instruction argument.
type ArgValue struct {
	Kind     ArgValueKind `json:"kind"`
	Signed   int64        `json:"signed,omitempty"`
	Unsigned uint64       `json:"unsigned,omitempty"`
	Opaque   string       `json:"opaque,omitempty"`
}

// Signed returns a signed immediate value.
func Signed(v int64) ArgValue { return ArgValue{Kind: ArgSigned, Signed: v} }

// Unsigned returns an unsigned immediate value.
func Unsigned(v uint64) ArgValue { return ArgValue{Kind: ArgUnsigned, Unsigned: v} }

// Opaque returns a textual value such as a register name.
func Opaque(s string) ArgValue { return ArgValue{Kind: ArgOpaque, Opaque: s} }

func (v ArgValue) String() string {
	switch v.Kind {
	case ArgSigned:
		if v.Signed < 0 {
			return fmt.Sprintf("-0x%x", uint64(-v.Signed))
		}
		return fmt.Sprintf("0x%x", v.Signed)
	case ArgUnsigned:
		return fmt.Sprintf("0x%x", v.Unsigned)
	default:
		return v.Opaque
	}
}

// Arg is one instruction argument. The concrete types are ValueArg,
// BaseArg, RelocArg, RelocBaseArg and BranchArg.
type Arg interface {
	isArg()
}

// ValueArg is a plain value.
type ValueArg struct{ Value ArgValue }

// BaseArg is a value followed by a parenthesized base, e.g. the 0x8 in 0x8(r1).
// The base itself is the next argument.
type BaseArg struct{ Value ArgValue }

// RelocArg refers to the instruction's relocation.
type RelocArg struct{}

// RelocBaseArg refers to the instruction's relocation and is followed by a
// parenthesized base.
type RelocBaseArg struct{}

// BranchArg is a branch displacement relative to the instruction address.
type BranchArg struct{ Offset int32 }

func (ValueArg) isArg()     {}
func (BaseArg) isArg()      {}
func (RelocArg) isArg()     {}
func (RelocBaseArg) isArg() {}
func (BranchArg) isArg()    {}

// Ins is a decoded instruction.
type Ins struct {
	Address  uint32  `json:"address"`
	Code     uint32  `json:"code,omitempty"`
	Line     *uint32 `json:"line,omitempty"`
	Mnemonic string  `json:"mnemonic"`
	Op       uint8   `json:"op"`
	Args     Args    `json:"args,omitempty"`
	Reloc    *Reloc  `json:"reloc,omitempty"`
}

// ArgDiff marks an argument as differing from its counterpart. Idx selects
// the highlight color.
type ArgDiff struct {
	Idx int `json:"idx"`
}

// BranchInfo links a branch instruction to its target.
type BranchInfo struct {
	InsIdx    int `json:"insIdx"`
	BranchIdx int `json:"branchIdx"`
}

// DiffKind classifies how an instruction differs from the target.
type DiffKind string

const (
	DiffNone        DiffKind = ""
	DiffOpMismatch  DiffKind = "op_mismatch"
	DiffArgMismatch DiffKind = "arg_mismatch"
	DiffReplace     DiffKind = "replace"
	DiffDelete      DiffKind = "delete"
	DiffInsert      DiffKind = "insert"
)

// InsDiff is one line of an instruction diff. Ins is nil when the line has
// no instruction on this side.
type InsDiff struct {
	Ins        *Ins        `json:"ins,omitempty"`
	Kind       DiffKind    `json:"kind,omitempty"`
	BranchFrom *BranchInfo `json:"branchFrom,omitempty"`
	BranchTo   *BranchInfo `json:"branchTo,omitempty"`
	ArgDiff    []*ArgDiff  `json:"argDiff,omitempty"`
}

// ArgDiffAt returns the annotation for argument i, or nil.
func (d *InsDiff) ArgDiffAt(i int) *ArgDiff {
	if i < 0 || i >= len(d.ArgDiff) {
		return nil
	}
	return d.ArgDiff[i]
}

// Line returns a pointer to n, for building Ins values.
func Line(n uint32) *uint32 { return &n }
