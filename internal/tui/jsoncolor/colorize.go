// Package jsoncolor renders JSON documents with theme colors for expanded
// table rows.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// Value marshals v as indented, colored JSON.
func Value(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Colorize(data), nil
}

// Colorize pretty-prints data with syntax colors. Invalid JSON is returned
// unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	raw := buf.String()
	var out strings.Builder

	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(styles.JSONKeyStyle.Render(str))
			} else {
				out.WriteString(styles.JSONStringStyle.Render(str))
			}
			i = end + 1

		case ch == '-' || isDigit(ch):
			end := i + 1
			for end < len(raw) && isNumberPart(raw[end]) {
				end++
			}
			out.WriteString(styles.JSONNumberStyle.Render(raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(styles.JSONBoolStyle.Render("true"))
			i += len("true")

		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(styles.JSONBoolStyle.Render("false"))
			i += len("false")

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(styles.JSONNullStyle.Render("null"))
			i += len("null")

		case strings.IndexByte("{}[]:,", ch) >= 0:
			out.WriteString(styles.JSONPunctStyle.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// isKey reports whether the text after a string starts with a colon.
func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberPart(c byte) bool {
	return isDigit(c) || strings.IndexByte(".eE+-", c) >= 0
}

// findStringEnd returns the index of the quote closing the string that opens
// at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
