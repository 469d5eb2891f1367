// Package display turns one instruction diff into the ordered stream of
// display tokens that renderers consume.
package display

import "insdiff/internal/disasm"

// DiffText is a display token. The concrete types are Basic, BasicColor,
// Line, Address, Opcode, Argument, BranchTarget, Symbol, Spacing and Eol.
//
// Pointers carried by tokens refer to the caller's InsDiff and are only
// valid while that value is unchanged; consumers must not keep them.
type DiffText interface {
	isDiffText()
}

// Basic is plain text.
type Basic struct{ Text string }

// BasicColor is text drawn in one of the rotating highlight colors.
type BasicColor struct {
	Text  string
	Color int
}

// Line is a source line number.
type Line struct{ Number uint32 }

// Address is an instruction address relative to the function base.
type Address struct{ Offset uint32 }

// Opcode is the instruction mnemonic.
type Opcode struct {
	Mnemonic string
	Op       uint8
}

// Argument is an instruction argument value. Diff is nil when the argument
// matches its counterpart.
type Argument struct {
	Value disasm.ArgValue
	Diff  *disasm.ArgDiff
}

// BranchTarget is the base-relative destination of a branch.
type BranchTarget struct{ Address uint32 }

// Symbol is a relocation target.
type Symbol struct{ Symbol *disasm.Symbol }

// Spacing is Count blank columns.
type Spacing struct{ Count int }

// Eol ends the line.
type Eol struct{}

func (Basic) isDiffText()        {}
func (BasicColor) isDiffText()   {}
func (Line) isDiffText()         {}
func (Address) isDiffText()      {}
func (Opcode) isDiffText()       {}
func (Argument) isDiffText()     {}
func (BranchTarget) isDiffText() {}
func (Symbol) isDiffText()       {}
func (Spacing) isDiffText()      {}
func (Eol) isDiffText()          {}
