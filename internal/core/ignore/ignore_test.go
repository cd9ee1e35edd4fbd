package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	l, err := Parse(strings.NewReader("# legacy files\n\nstyles/Legacy.css\n  ./styles/Old.css  \nstyles//vendor/../Reset.css\n"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.Len())
	}

	cases := []struct {
		path string
		want bool
	}{
		{"styles/Legacy.css", true},
		{"./styles/Legacy.css", true},
		{"styles/Old.css", true},
		{"styles/Reset.css", true},
		{"styles/Card.css", false},
		{"Legacy.css", false},
		{"# legacy files", false},
	}
	for _, tc := range cases {
		if got := l.Match(tc.path); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), ".csslintignore"))
	if err != nil {
		t.Fatalf("missing ignore file must not fail: %v", err)
	}
	if l.Len() != 0 || l.Match("a.css") {
		t.Fatal("missing ignore file must ignore nothing")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".csslintignore")
	if err := os.WriteFile(path, []byte("a.css\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Match("a.css") {
		t.Error("expected a.css to be ignored")
	}
}

func TestNilList(t *testing.T) {
	var l *List
	if l.Match("a.css") || l.Len() != 0 {
		t.Fatal("nil list must ignore nothing")
	}
}
