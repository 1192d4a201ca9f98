package script

import (
	"fmt"
	"strings"
	"unicode"
)

// field is one token of a statement line: a bare word or a quoted
// string. Quoted contents are preserved verbatim, whitespace included.
type field struct {
	text   string
	quoted bool
}

// scanFields splits a line into fields, keeping quoted strings intact.
// Punctuation that the grammar cares about (parentheses, '=') is
// emitted as its own field so the statement parsers can match on it.
func scanFields(line string) ([]field, error) {
	var fields []field
	i := 0
	for i < len(line) {
		r := rune(line[i])

		if unicode.IsSpace(r) {
			i++
			continue
		}

		if r == '"' {
			end := -1
			for j := i + 1; j < len(line); j++ {
				if line[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("unterminated string literal")
			}
			fields = append(fields, field{text: line[i+1 : end], quoted: true})
			i = end + 1
			continue
		}

		if r == '(' || r == ')' || r == '=' || r == ',' {
			fields = append(fields, field{text: string(r)})
			i++
			continue
		}

		start := i
		for i < len(line) {
			c := rune(line[i])
			if unicode.IsSpace(c) || c == '"' || c == '(' || c == ')' || c == '=' || c == ',' {
				break
			}
			i++
		}
		fields = append(fields, field{text: line[start:i]})
	}
	return fields, nil
}

// splitMeta separates a statement tail into its value and trailing
// "key: value" metadata pairs. A field ending in ':' that is followed
// by at least one more field starts the metadata section.
//
//	"improve performance" priority: high  ->  value fields, {priority: high}
func splitMeta(fields []field) (value []field, meta map[string]string) {
	metaStart := len(fields)
	for i, f := range fields {
		if i == 0 {
			continue // first field is always part of the value
		}
		if !f.quoted && strings.HasSuffix(f.text, ":") && len(f.text) > 1 && i+1 < len(fields) {
			metaStart = i
			break
		}
	}

	value = fields[:metaStart]
	rest := fields[metaStart:]
	if len(rest) == 0 {
		return value, nil
	}

	meta = make(map[string]string)
	for i := 0; i+1 < len(rest); i += 2 {
		key := strings.TrimSuffix(rest[i].text, ":")
		meta[key] = rest[i+1].text
	}
	return value, meta
}

// joinValue renders value fields back into a single string. A lone
// quoted field keeps its contents verbatim; bare words are joined
// with single spaces.
func joinValue(fields []field) string {
	if len(fields) == 1 && fields[0].quoted {
		return fields[0].text
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.text
	}
	return strings.Join(parts, " ")
}
