package app

import (
	"bemlint/internal/core/errors"
	"bemlint/internal/shared/util"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// Resolver expands CLI arguments into the ordered list of stylesheets to
// lint. An argument may be a file, a directory or a glob pattern.
type Resolver struct {
	extensions   map[string]bool
	excludeDirs  []matcher
	excludeFiles []matcher
}

// matcher applies a compiled glob either to the base name or, when the
// pattern contains a separator, to every trailing run of path segments,
// so "vendor/**" matches wherever a vendor directory sits.
type matcher struct {
	g        glob.Glob
	fullPath bool
}

func (m matcher) match(path string) bool {
	if !m.fullPath {
		return m.g.Match(filepath.Base(path))
	}
	p := util.NormalizePatternPath(path)
	for {
		if m.g.Match(p) {
			return true
		}
		i := strings.IndexByte(p, '/')
		if i < 0 {
			return false
		}
		p = p[i+1:]
	}
}

func NewResolver(extensions, excludeDirs, excludeFiles []string) (*Resolver, error) {
	dirs, err := compileMatchers(excludeDirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	files, err := compileMatchers(excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Resolver{extensions: exts, excludeDirs: dirs, excludeFiles: files}, nil
}

func compileMatchers(patterns []string) ([]matcher, error) {
	out := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, matcher{g: g, fullPath: util.ContainsPathSeparator(p)})
	}
	return out, nil
}

// Resolve returns files in argument order, each listed once. Explicit file
// arguments are kept even when they would be excluded; directories and
// globs are filtered by extension and exclude patterns. A literal path
// that does not exist is kept and fails when linted; a glob matching
// nothing contributes nothing.
func (r *Resolver) Resolve(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		out = append(out, clean)
	}

	for _, arg := range args {
		info, statErr := os.Stat(arg)
		switch {
		case statErr == nil && info.IsDir():
			files, err := r.walk(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
		case statErr == nil:
			add(arg)
		case isPattern(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid glob"), errors.CtxPath, arg)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if r.accept(m) && !r.inExcludedDir(m) {
					add(m)
				}
			}
		case os.IsNotExist(statErr):
			// Reported as a failed file result by the linter.
			add(arg)
		default:
			return nil, errors.AddContext(errors.Wrap(statErr, errors.CodeReadFailed, "stat path"), errors.CtxPath, arg)
		}
	}
	return out, nil
}

func (r *Resolver) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && r.excludedDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if r.accept(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeReadFailed, "walk directory"), errors.CtxPath, root)
	}
	return files, nil
}

func (r *Resolver) accept(path string) bool {
	if len(r.extensions) > 0 && !r.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	for _, m := range r.excludeFiles {
		if m.match(path) {
			return false
		}
	}
	return true
}

func (r *Resolver) excludedDir(path string) bool {
	for _, m := range r.excludeDirs {
		if m.match(path) {
			return true
		}
	}
	return false
}

// inExcludedDir checks every ancestor directory of a glob match.
func (r *Resolver) inExcludedDir(path string) bool {
	dir := filepath.Dir(path)
	for dir != "." && dir != "" {
		if r.excludedDir(dir) {
			return true
		}
		next := filepath.Dir(dir)
		if next == dir {
			break
		}
		dir = next
	}
	return false
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
