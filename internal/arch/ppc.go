package arch

import "insdiff/internal/disasm"

// PPC is the PowerPC relocation table.
var PPC = Register(NewTable("ppc", map[disasm.RelocKind]Format{
	disasm.RelocPPCAddr16Lo: {Style: Suffix, Text: "@l"},
	disasm.RelocPPCAddr16Hi: {Style: Suffix, Text: "@h"},
	disasm.RelocPPCAddr16Ha: {Style: Suffix, Text: "@ha"},
	disasm.RelocPPCEmbSda21: {Style: Suffix, Text: "@sda21"},
	disasm.RelocPPCRel24:    {Style: Bare},
	disasm.RelocPPCRel14:    {Style: Bare},
}))
