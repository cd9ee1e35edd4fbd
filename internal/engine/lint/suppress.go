package lint

import "strings"

// DefaultSuppressKeyword is the marker recognized inside `/* ... */`.
const DefaultSuppressKeyword = "bemlint-ignore"

// SuppressedLines is a set of 1-based line numbers exempt from every rule.
type SuppressedLines map[int]struct{}

func (s SuppressedLines) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// SuppressedLinesFor scans raw source for block comments containing keyword
// and marks the line right after each one.
func SuppressedLinesFor(source, keyword string) SuppressedLines {
	if keyword == "" {
		keyword = DefaultSuppressKeyword
	}
	out := make(SuppressedLines)
	for i, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/*") && strings.Contains(trimmed, keyword) {
			out[i+2] = struct{}{}
		}
	}
	return out
}
