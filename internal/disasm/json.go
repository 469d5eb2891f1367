package disasm

import (
	"encoding/json"
	"fmt"
)

// Args is an instruction's argument list. It encodes to JSON as a list of
// objects tagged by "type".
type Args []Arg

type argJSON struct {
	Type   string    `json:"type"`
	Value  *ArgValue `json:"value,omitempty"`
	Offset int32     `json:"offset,omitempty"`
}

const (
	argTypeValue     = "value"
	argTypeBase      = "base"
	argTypeReloc     = "reloc"
	argTypeRelocBase = "reloc_base"
	argTypeBranch    = "branch"
)

func (a Args) MarshalJSON() ([]byte, error) {
	out := make([]argJSON, 0, len(a))
	for i, arg := range a {
		switch arg := arg.(type) {
		case ValueArg:
			v := arg.Value
			out = append(out, argJSON{Type: argTypeValue, Value: &v})
		case BaseArg:
			v := arg.Value
			out = append(out, argJSON{Type: argTypeBase, Value: &v})
		case RelocArg:
			out = append(out, argJSON{Type: argTypeReloc})
		case RelocBaseArg:
			out = append(out, argJSON{Type: argTypeRelocBase})
		case BranchArg:
			out = append(out, argJSON{Type: argTypeBranch, Offset: arg.Offset})
		default:
			return nil, fmt.Errorf("argument %d: unsupported type %T", i, arg)
		}
	}
	return json.Marshal(out)
}

func (a *Args) UnmarshalJSON(data []byte) error {
	var raw []argJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	args := make(Args, 0, len(raw))
	for i, r := range raw {
		switch r.Type {
		case argTypeValue, argTypeBase:
			if r.Value == nil {
				return fmt.Errorf("argument %d: %s argument without value", i, r.Type)
			}
			if r.Type == argTypeValue {
				args = append(args, ValueArg{Value: *r.Value})
			} else {
				args = append(args, BaseArg{Value: *r.Value})
			}
		case argTypeReloc:
			args = append(args, RelocArg{})
		case argTypeRelocBase:
			args = append(args, RelocBaseArg{})
		case argTypeBranch:
			args = append(args, BranchArg{Offset: r.Offset})
		default:
			return fmt.Errorf("argument %d: unknown type %q", i, r.Type)
		}
	}
	*a = args
	return nil
}
