// Package arch contains the per architecture relocation display conventions.
// Each supported instruction set registers a Table mapping relocation kinds
// to the way they are written in assembly, so the token emitter never has to
// know which architecture it is rendering.
package arch

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"insdiff/internal/disasm"
)

// Style is how a relocation is written around its symbol name.
type Style int

const (
	// Bare writes the symbol name only.
	Bare Style = iota
	// Suffix writes the symbol name followed by Format.Text.
	Suffix
	// Wrap writes Format.Text, the symbol name and a closing parenthesis.
	Wrap
	// Unsupported relocations have no textual form.
	Unsupported
	// Invalid relocations are shown as a fixed marker.
	Invalid
)

func (s Style) String() string {
	switch s {
	case Bare:
		return "bare"
	case Suffix:
		return "suffix"
	case Wrap:
		return "wrap"
	case Unsupported:
		return "unsupported"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Format describes how one relocation kind is displayed.
type Format struct {
	Style Style
	Text  string
}

// InvalidMarker is the text shown for relocations that could not be resolved.
const InvalidMarker = "[INVALID]"

// Table maps relocation kinds to their display format. A Table is immutable
// once built and safe for concurrent use.
type Table struct {
	name    string
	formats map[disasm.RelocKind]Format
}

// NewTable creates a table. Every table knows the absolute relocation.
func NewTable(name string, formats map[disasm.RelocKind]Format) *Table {
	t := &Table{
		name:    name,
		formats: make(map[disasm.RelocKind]Format, len(formats)+1),
	}
	t.formats[disasm.RelocAbsolute] = Format{Style: Invalid, Text: InvalidMarker}
	maps.Copy(t.formats, formats)
	return t
}

// Name returns the architecture name.
func (t *Table) Name() string { return t.name }

// Format returns the display format of kind.
func (t *Table) Format(kind disasm.RelocKind) (Format, bool) {
	f, ok := t.formats[kind]
	return f, ok
}

// Kinds returns the kinds known to the table in ascending order.
func (t *Table) Kinds() []disasm.RelocKind {
	return slices.Sorted(maps.Keys(t.formats))
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Table{}
)

// Register adds a table to the registry. It panics on duplicate names.
func Register(t *Table) *Table {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[t.name]; ok {
		panic(fmt.Sprintf("arch: table %q registered twice", t.name))
	}
	registry[t.name] = t
	return t
}

// Lookup returns the table registered under name.
func Lookup(name string) (*Table, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown architecture %q (supported: %v)", name, namesLocked())
	}
	return t, nil
}

// Names returns the registered architecture names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a table containing the formats of every registered
// architecture.
func All() *Table {
	registryMu.RLock()
	defer registryMu.RUnlock()
	merged := map[disasm.RelocKind]Format{}
	for _, name := range namesLocked() {
		maps.Copy(merged, registry[name].formats)
	}
	return NewTable("all", merged)
}

// Select returns the named table, or All when name is empty or "all".
func Select(name string) (*Table, error) {
	if name == "" || name == "all" {
		return All(), nil
	}
	return Lookup(name)
}
