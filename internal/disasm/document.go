package disasm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Document is one side of a function diff as produced by the diff engine.
type Document struct {
	Arch         string    `json:"arch,omitempty"`
	Symbol       string    `json:"symbol,omitempty"`
	BaseAddress  uint32    `json:"baseAddress"`
	Instructions []InsDiff `json:"instructions"`
}

// DecodeDocument reads a JSON document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// DecodeLine decodes a single JSON-lines record.
func DecodeLine(line []byte) (*InsDiff, error) {
	var d InsDiff
	if err := json.Unmarshal(line, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DecodeLines reads JSON-lines input, one InsDiff per non-empty line.
func DecodeLines(r io.Reader) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		d, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		doc.Instructions = append(doc.Instructions, *d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// IsLines reports whether path names a JSON-lines file.
func IsLines(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jsonl" || ext == ".ndjson"
}

// Load reads a document from path, choosing the decoder by extension.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if IsLines(path) {
		return DecodeLines(f)
	}
	return DecodeDocument(f)
}
