package grid

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/matzehuels/gridtext/pkg/errors"
)

// document is the JSON wire form of a grid.
type document struct {
	Cells map[string]json.RawMessage `json:"cells"`
}

// ReadJSON decodes a grid from r.
//
// Each entry of the "cells" object is keyed by "x,y" and holds either a JSON
// string (a plain character) or an object with at least a "char" field.
// ReadJSON returns an INVALID_KEY error for malformed keys and an
// INVALID_GRID error for cells of any other shape. It does not close r.
func ReadJSON(r io.Reader) (Grid, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode grid")
	}

	g := make(Grid, len(doc.Cells))
	for raw, value := range doc.Cells {
		k, err := ParseKey(raw)
		if err != nil {
			return nil, err
		}
		c, err := decodeCell(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "cell %s", raw)
		}
		g[k] = c
	}
	return g, nil
}

func decodeCell(value json.RawMessage) (Cell, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty cell")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return Plain(s), nil
	case '{':
		var s Styled
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported cell value %s", trimmed)
	}
}

// WriteJSON encodes g to w as indented JSON with keys in reading order.
func WriteJSON(g Grid, w io.Writer) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes g in the wire form used by [ReadJSON].
func Marshal(g Grid) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"cells\": {")
	for i, k := range g.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(k.String())
		var value []byte
		var err error
		switch c := g[k].(type) {
		case Styled:
			value, err = json.Marshal(c)
		default:
			value, err = json.Marshal(CharOf(c))
		}
		if err != nil {
			return nil, fmt.Errorf("encode cell %s: %w", k, err)
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if g.Len() > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}\n}\n")
	return buf.Bytes(), nil
}

// ReadFile reads a grid from path. Files ending in .json are decoded with
// [ReadJSON]; anything else is treated as plain text via [FromText].
func ReadFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "grid file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if isJSONPath(path) {
		return ReadJSON(f)
	}
	return FromText(f, 0, 0)
}

// WriteFile writes g to path in the JSON wire form.
func WriteFile(g Grid, path string) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// FromText builds a grid from a text document whose first line sits at
// (originX, originY). Each rune occupies one column; whitespace runes are
// not stored.
func FromText(r io.Reader, originX, originY int) (Grid, error) {
	g := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	y := originY
	for sc.Scan() {
		x := originX
		for _, ch := range sc.Text() {
			if !unicode.IsSpace(ch) {
				g[Key{X: x, Y: y}] = Plain(string(ch))
			}
			x++
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return g, nil
}
