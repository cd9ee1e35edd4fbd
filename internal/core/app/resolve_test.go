package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolver_Directory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.css":                        "",
		"components/Card.css":             "",
		"components/Card.min.css":         "",
		"components/notes.txt":            "",
		"node_modules/lib/Reset.css":      "",
		"vendor/legacy/Old.css":           "",
		"components/nested/SearchBar.CSS": "",
	})

	r, err := NewResolver([]string{".css"}, []string{"node_modules"}, []string{"*.min.css", "vendor/**"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Resolve([]string{root})
	if err != nil {
		t.Fatal(err)
	}

	var rel []string
	for _, p := range got {
		r, _ := filepath.Rel(root, p)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"components/Card.css", "components/nested/SearchBar.CSS", "main.css"}
	if !reflect.DeepEqual(rel, want) {
		t.Fatalf("expected %v, got %v", want, rel)
	}
}

func TestResolver_GlobAndExplicitFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/One.css":              "",
		"a/b/Two.css":            "",
		"a/b/Two.min.css":        "",
		"node_modules/Three.css": "",
	})

	r, err := NewResolver([]string{".css"}, []string{"node_modules"}, []string{"*.min.css"})
	if err != nil {
		t.Fatal(err)
	}

	explicit := filepath.Join(root, "a", "b", "Two.min.css")
	got, err := r.Resolve([]string{
		filepath.Join(root, "**", "*.css"),
		explicit,
		filepath.Join(root, "a", "One.css"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(root, "a", "One.css"),
		filepath.Join(root, "a", "b", "Two.css"),
		explicit,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolver_GlobWithoutMatches(t *testing.T) {
	r, err := NewResolver([]string{".css"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Resolve([]string{filepath.Join(t.TempDir(), "*.css")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no files, got %v", got)
	}
}

func TestResolver_MissingPath(t *testing.T) {
	r, err := NewResolver([]string{".css"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "Missing.css")
	got, err := r.Resolve([]string{missing})
	if err != nil {
		t.Fatalf("missing path should not fail resolution: %v", err)
	}
	if !reflect.DeepEqual(got, []string{missing}) {
		t.Fatalf("expected %v, got %v", []string{missing}, got)
	}
}

func TestNewResolver_InvalidPattern(t *testing.T) {
	if _, err := NewResolver(nil, []string{"["}, nil); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}

func TestWatchRoots(t *testing.T) {
	got := watchRoots([]string{"styles/**/*.css", "styles", "main.css", "a/*/b/*.css"})
	want := []string{"styles", "main.css", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
