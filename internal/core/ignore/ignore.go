// Package ignore reads the plain list of stylesheet paths that bemlint
// never lints.
package ignore

import (
	"bemlint/internal/core/errors"
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// List is a set of cleaned paths. The zero value ignores nothing.
type List struct {
	paths map[string]struct{}
}

// Load reads path. A missing file yields an empty list.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &List{}, nil
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeReadFailed, "open ignore file"), errors.CtxPath, path)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeReadFailed, "read ignore file"), errors.CtxPath, path)
	}
	return l, nil
}

// Parse reads one path per line. Blank lines and lines starting with #
// are skipped.
func Parse(r io.Reader) (*List, error) {
	l := &List{paths: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.paths[filepath.Clean(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// Match reports whether path is listed, comparing cleaned forms exactly.
func (l *List) Match(path string) bool {
	if l == nil || len(l.paths) == 0 {
		return false
	}
	_, ok := l.paths[filepath.Clean(path)]
	return ok
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.paths)
}
