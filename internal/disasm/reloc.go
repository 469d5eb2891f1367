package disasm

import "fmt"

// RelocKind is the format of a relocation. Values are unique across
// architectures.
type RelocKind int

const (
	RelocAbsolute RelocKind = iota

	RelocPPCAddr16Hi
	RelocPPCAddr16Ha
	RelocPPCAddr16Lo
	RelocPPCRel24
	RelocPPCRel14
	RelocPPCEmbSda21

	RelocMIPS26
	RelocMIPSHi16
	RelocMIPSLo16
	RelocMIPSGot16
	RelocMIPSCall16
	RelocMIPSGpRel16
	RelocMIPSGpRel32
)

var relocKindNames = map[RelocKind]string{
	RelocAbsolute:    "absolute",
	RelocPPCAddr16Hi: "ppc_addr16_hi",
	RelocPPCAddr16Ha: "ppc_addr16_ha",
	RelocPPCAddr16Lo: "ppc_addr16_lo",
	RelocPPCRel24:    "ppc_rel24",
	RelocPPCRel14:    "ppc_rel14",
	RelocPPCEmbSda21: "ppc_emb_sda21",
	RelocMIPS26:      "mips_26",
	RelocMIPSHi16:    "mips_hi16",
	RelocMIPSLo16:    "mips_lo16",
	RelocMIPSGot16:   "mips_got16",
	RelocMIPSCall16:  "mips_call16",
	RelocMIPSGpRel16: "mips_gprel16",
	RelocMIPSGpRel32: "mips_gprel32",
}

func (k RelocKind) String() string {
	if name, ok := relocKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RelocKind(%d)", int(k))
}

// ParseRelocKind returns the kind with the given name.
func ParseRelocKind(name string) (RelocKind, error) {
	for k, n := range relocKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown relocation kind %q", name)
}

func (k RelocKind) MarshalText() ([]byte, error) {
	if _, ok := relocKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown relocation kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *RelocKind) UnmarshalText(text []byte) error {
	kind, err := ParseRelocKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
