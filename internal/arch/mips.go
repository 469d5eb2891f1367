package arch

import "insdiff/internal/disasm"

// MIPS is the MIPS relocation table.
var MIPS = Register(NewTable("mips", map[disasm.RelocKind]Format{
	disasm.RelocMIPSHi16:    {Style: Wrap, Text: "%hi("},
	disasm.RelocMIPSLo16:    {Style: Wrap, Text: "%lo("},
	disasm.RelocMIPSGot16:   {Style: Wrap, Text: "%got("},
	disasm.RelocMIPSCall16:  {Style: Wrap, Text: "%call16("},
	disasm.RelocMIPSGpRel16: {Style: Wrap, Text: "%gp_rel("},
	disasm.RelocMIPS26:      {Style: Bare},
	// gp_rel32 has no assembler syntax.
	disasm.RelocMIPSGpRel32: {Style: Unsupported},
}))
