package lint

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ComponentSeparator joins the words of a component name.
const ComponentSeparator = "-"

// BEM boundary markers.
const (
	ElementSeparator  = "__"
	ModifierSeparator = "--"
)

// ComponentName derives the component name from a filename without its
// extension: "SearchField" becomes "search-field". A new word starts at
// every uppercase letter after the first character.
func ComponentName(fileName string) string {
	var words []string
	var current strings.Builder
	for i, r := range fileName {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return strings.ToLower(strings.Join(words, ComponentSeparator))
}

// FileName returns the base name of path with its extension stripped.
func FileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
