package disasm

import (
	"math"
	"strings"
	"testing"
)

func TestArgValueString(t *testing.T) {
	tests := []struct {
		name  string
		value ArgValue
		want  string
	}{
		{name: "positive signed", value: Signed(0x10), want: "0x10"},
		{name: "negative signed", value: Signed(-0x20), want: "-0x20"},
		{name: "zero", value: Signed(0), want: "0x0"},
		{name: "min int64", value: Signed(math.MinInt64), want: "-0x8000000000000000"},
		{name: "unsigned", value: Unsigned(0xff), want: "0xff"},
		{name: "register", value: Opaque("r3"), want: "r3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelocKindText(t *testing.T) {
	for kind, name := range relocKindNames {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", kind, err)
		}
		if string(text) != name {
			t.Errorf("MarshalText(%d) = %q, want %q", kind, text, name)
		}
		parsed, err := ParseRelocKind(name)
		if err != nil || parsed != kind {
			t.Errorf("ParseRelocKind(%q) = %v, %v; want %v", name, parsed, err, kind)
		}
	}

	if _, err := ParseRelocKind("x86_pc32"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := RelocKind(999).MarshalText(); err == nil {
		t.Error("expected error marshalling unknown kind")
	}
}

const sampleDocument = `{
  "arch": "ppc",
  "symbol": "main",
  "baseAddress": 2147483648,
  "instructions": [
    {
      "ins": {
        "address": 2147483652,
        "line": 12,
        "mnemonic": "lwz",
        "op": 7,
        "args": [
          {"type": "value", "value": {"kind": "opaque", "opaque": "r3"}},
          {"type": "reloc_base"},
          {"type": "value", "value": {"kind": "opaque", "opaque": "r13"}}
        ],
        "reloc": {"kind": "ppc_emb_sda21", "target": {"name": "gCount"}, "addend": 4}
      },
      "kind": "arg_mismatch",
      "argDiff": [null, {"idx": 1}, null]
    },
    {"kind": "insert"},
    {
      "ins": {
        "address": 2147483660,
        "mnemonic": "b",
        "op": 2,
        "args": [{"type": "branch", "offset": -8}]
      },
      "branchTo": {"insIdx": 0, "branchIdx": 3}
    }
  ]
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("DecodeDocument failed: %v", err)
	}

	if doc.Arch != "ppc" || doc.BaseAddress != 0x80000000 {
		t.Errorf("unexpected header: arch=%q base=%#x", doc.Arch, doc.BaseAddress)
	}
	if len(doc.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(doc.Instructions))
	}

	first := doc.Instructions[0]
	if first.Ins == nil || first.Ins.Line == nil || *first.Ins.Line != 12 {
		t.Fatalf("first instruction not decoded with line: %+v", first.Ins)
	}
	if _, ok := first.Ins.Args[1].(RelocBaseArg); !ok {
		t.Errorf("args[1] = %T, want RelocBaseArg", first.Ins.Args[1])
	}
	if v, ok := first.Ins.Args[2].(ValueArg); !ok || v.Value.String() != "r13" {
		t.Errorf("args[2] = %#v, want ValueArg r13", first.Ins.Args[2])
	}
	if first.Ins.Reloc.Kind != RelocPPCEmbSda21 || first.Ins.Reloc.Addend != 4 {
		t.Errorf("unexpected reloc: %+v", first.Ins.Reloc)
	}
	if first.ArgDiffAt(0) != nil || first.ArgDiffAt(1) == nil || first.ArgDiffAt(1).Idx != 1 {
		t.Errorf("unexpected arg diffs: %v", first.ArgDiff)
	}
	if first.ArgDiffAt(7) != nil {
		t.Error("out of range annotation should be nil")
	}

	if doc.Instructions[1].Ins != nil || doc.Instructions[1].Kind != DiffInsert {
		t.Errorf("second line should be an empty insert: %+v", doc.Instructions[1])
	}

	last := doc.Instructions[2]
	if b, ok := last.Ins.Args[0].(BranchArg); !ok || b.Offset != -8 {
		t.Errorf("args[0] = %#v, want BranchArg{-8}", last.Ins.Args[0])
	}
	if last.BranchTo == nil || last.BranchTo.BranchIdx != 3 {
		t.Errorf("unexpected branchTo: %+v", last.BranchTo)
	}
}

func TestDecodeArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{name: "unknown type", args: `[{"type": "vector"}]`},
		{name: "value without payload", args: `[{"type": "value"}]`},
		{name: "base without payload", args: `[{"type": "base"}]`},
		{name: "not a list", args: `{"type": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args Args
			if err := args.UnmarshalJSON([]byte(tt.args)); err == nil {
				t.Errorf("expected error for %s", tt.args)
			}
		})
	}
}

func TestDecodeLines(t *testing.T) {
	input := `{"ins": {"address": 0, "mnemonic": "nop", "op": 1}}

{"kind": "delete"}
`
	doc, err := DecodeLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLines failed: %v", err)
	}
	if len(doc.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(doc.Instructions))
	}
	if doc.Instructions[0].Ins.Mnemonic != "nop" {
		t.Errorf("mnemonic = %q, want nop", doc.Instructions[0].Ins.Mnemonic)
	}

	if _, err := DecodeLines(strings.NewReader("{\"ins\": 1}\n")); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line-numbered error, got %v", err)
	}
}

func TestIsLines(t *testing.T) {
	tests := map[string]bool{
		"diff.jsonl":  true,
		"diff.NDJSON": true,
		"diff.json":   false,
		"diff":        false,
	}
	for path, want := range tests {
		if got := IsLines(path); got != want {
			t.Errorf("IsLines(%q) = %v, want %v", path, got, want)
		}
	}
}
