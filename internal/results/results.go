// Package results turns the raw "data" member of a query response into a
// displayable result set: nothing, a table, or pretty-printed JSON.
package results

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind selects how a Set is displayed.
type Kind int

const (
	// Empty means there is nothing to show.
	Empty Kind = iota
	// Table means Columns and Rows are set.
	Table
	// Raw means Raw holds indented, normalized JSON.
	Raw
)

func (k Kind) String() string {
	switch k {
	case Table:
		return "table"
	case Raw:
		return "raw"
	default:
		return "empty"
	}
}

// Set is a decoded result set.
type Set struct {
	Kind    Kind
	Columns []string
	Rows    [][]string
	Raw     string
}

// Decode classifies data. Data that is absent, null, an empty array, an empty
// string, zero or false is Empty. A non-empty array whose first element is an
// object is a Table whose columns are the keys of that first object in the
// order they appear. Anything else is Raw.
func Decode(data json.RawMessage) (Set, error) {
	trimmed := bytes.TrimSpace(data)
	if isFalsy(trimmed) {
		return Set{Kind: Empty}, nil
	}
	if !json.Valid(trimmed) {
		return Set{}, fmt.Errorf("results data is not valid JSON")
	}

	if trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return Set{}, fmt.Errorf("decode results array: %w", err)
		}
		if len(records) == 0 {
			return Set{Kind: Empty}, nil
		}
		first := bytes.TrimSpace(records[0])
		if len(first) > 0 && first[0] == '{' {
			return table(records)
		}
	}

	raw, err := stringify(trimmed)
	if err != nil {
		return Set{}, fmt.Errorf("format results: %w", err)
	}
	return Set{Kind: Raw, Raw: raw}, nil
}

func isFalsy(b []byte) bool {
	switch string(b) {
	case "", "null", "[]", `""`, "false":
		return true
	}
	if b[0] == '"' {
		return false
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if f, err := n.Float64(); err == nil && f == 0 {
			return true
		}
	}
	return false
}

func table(records []json.RawMessage) (Set, error) {
	cols, err := objectKeys(records[0])
	if err != nil {
		return Set{}, err
	}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec, &fields); err != nil {
			// Non-object rows still get a row so the count matches.
			fields = nil
		}
		row := make([]string, len(cols))
		for j, c := range cols {
			v, ok := fields[c]
			if !ok {
				continue
			}
			cell, err := Cell(v)
			if err != nil {
				return Set{}, fmt.Errorf("row %d column %q: %w", i, c, err)
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}
	return Set{Kind: Table, Columns: cols, Rows: rows}, nil
}

// objectKeys returns the member names of a JSON object in document order,
// without duplicates.
func objectKeys(obj json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read first record: %w", err)
	}
	seen := make(map[string]struct{})
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read column name: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in first record", tok)
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("read value of %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read first record: %w", err)
	}
	return keys, nil
}

// Cell formats one value for a table cell. Strings are shown without quotes,
// scalars as written and nested values as compact JSON.
func Cell(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", nil
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		var out bytes.Buffer
		if err := json.Compact(&out, v); err != nil {
			return "", err
		}
		return out.String(), nil
	default:
		return string(v), nil
	}
}
