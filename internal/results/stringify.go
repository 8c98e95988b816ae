package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// stringify pretty-prints a JSON document with two-space indentation.
// Member order is kept. Numbers are written in their shortest form and
// strings are re-escaped, so 1.50 becomes 1.5 and "\u00e9" becomes "é".
func stringify(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out strings.Builder
	if err := writeValue(dec, &out, 0); err != nil {
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("trailing data after JSON value")
	}
	return out.String(), nil
}

func writeValue(dec *json.Decoder, out *strings.Builder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		return writeContainer(dec, out, v, depth)
	case string:
		writeString(out, v)
	case json.Number:
		n, err := formatNumber(v)
		if err != nil {
			return err
		}
		out.WriteString(n)
	case bool:
		out.WriteString(strconv.FormatBool(v))
	case nil:
		out.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func writeContainer(dec *json.Decoder, out *strings.Builder, open json.Delim, depth int) error {
	closing := "]"
	if open == '{' {
		closing = "}"
	}
	out.WriteByte(byte(open))

	n := 0
	for dec.More() {
		if n > 0 {
			out.WriteByte(',')
		}
		newline(out, depth+1)
		if open == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := key.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", key)
			}
			writeString(out, name)
			out.WriteString(": ")
		}
		if err := writeValue(dec, out, depth+1); err != nil {
			return err
		}
		n++
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		newline(out, depth)
	}
	out.WriteString(closing)
	return nil
}

func newline(out *strings.Builder, depth int) {
	out.WriteByte('\n')
	out.WriteString(strings.Repeat("  ", depth))
}

// formatNumber writes n the way a JavaScript engine prints a double: plain
// decimal between 1e-6 and 1e21, exponent form outside it.
func formatNumber(n json.Number) (string, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return "", fmt.Errorf("number %s: %w", n, err)
	}
	if f == 0 {
		return "0", nil
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp, nil
}

func writeString(out *strings.Builder, s string) {
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(out, `\u%04x`, r)
				continue
			}
			out.WriteRune(r)
		}
	}
	out.WriteByte('"')
}
