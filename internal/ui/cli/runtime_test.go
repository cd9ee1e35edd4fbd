package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreapp "bemlint/internal/core/app"
	"bemlint/internal/core/config"
	"bemlint/internal/engine/lint"
)

// workspace creates files relative to a fresh working directory.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, coreAppFactory{})
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "--version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if strings.TrimSpace(out) != "bemlint v"+versionString {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	if code, _, stderr := runCLI(t); code != 2 || !strings.Contains(stderr, "Usage: bemlint") {
		t.Fatalf("no args: code=%d stderr=%q", code, stderr)
	}
	if code, _, _ := runCLI(t, "--bogus", "a.css"); code != 2 {
		t.Fatalf("unknown flag: code=%d, want 2", code)
	}
	if code, _, _ := runCLI(t, "-h"); code != 0 {
		t.Fatalf("help: code=%d, want 0", code)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	workspace(t, map[string]string{
		"SearchField.css": ".search-field { }\n.search-field__input { }\n",
		"Card.css":        ".card { }\n#hero { }\n",
		"Broken.css":      ".broken { color: red; }\n@@@ {{{ ]",
	})

	if code, out, _ := runCLI(t, "SearchField.css"); code != 0 || out != "" {
		t.Fatalf("clean file: code=%d out=%q", code, out)
	}

	code, out, _ := runCLI(t, "Card.css")
	if code != 1 {
		t.Fatalf("failing file: code=%d, want 1", code)
	}
	if !strings.Contains(out, "1 errors in file Card.css:") || !strings.Contains(out, "#hero") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	code, out, _ = runCLI(t, "Broken.css")
	if code != 2 {
		t.Fatalf("broken file: code=%d, want 2", code)
	}
	if !strings.Contains(out, "could not analyze 1 files:") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRun_MissingPathStillLintsOthers(t *testing.T) {
	workspace(t, map[string]string{"Card.css": ".card { }\n#hero { }\n"})

	code, out, _ := runCLI(t, "--all", "Missing.css", "Card.css")
	if code != 2 {
		t.Fatalf("code=%d, want 2", code)
	}
	for _, want := range []string{"could not analyze 1 files:", "Missing.css", "#hero"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_CorruptHistoryKeepsExitCode(t *testing.T) {
	workspace(t, map[string]string{
		"Card.css":            "#hero { }\n",
		".bemlint/history.db": "not a database\n",
	})

	code, out, _ := runCLI(t, "--history", "Card.css")
	if code != 1 {
		t.Fatalf("code=%d, want 1 (out=%q)", code, out)
	}
	if strings.Contains(out, "history:") {
		t.Fatalf("expected no trend line when history is unusable:\n%s", out)
	}
}

func TestRun_StopsAtFirstFailureWithoutAll(t *testing.T) {
	workspace(t, map[string]string{
		"a/Card.css": "#one { }\n",
		"b/List.css": "#two { }\n",
	})

	_, out, _ := runCLI(t, "a/Card.css", "b/List.css")
	if strings.Contains(out, "List.css") {
		t.Fatalf("expected lint to stop after Card.css:\n%s", out)
	}

	_, out, _ = runCLI(t, "--all", "a/Card.css", "b/List.css")
	for _, want := range []string{"found 2 errors in 2 files:", "Card.css", "List.css"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_FormatFlag(t *testing.T) {
	workspace(t, map[string]string{"Card.css": "#hero { }\n"})

	code, out, _ := runCLI(t, "--format", "JSON", "Card.css")
	if code != 1 {
		t.Fatalf("code=%d, want 1", code)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc["diagnostics"].(float64) != 1 {
		t.Fatalf("unexpected diagnostics count: %v", doc["diagnostics"])
	}

	if code, _, _ := runCLI(t, "--format", "xml", "Card.css"); code != 2 {
		t.Fatalf("invalid format: code=%d, want 2", code)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	workspace(t, map[string]string{
		"bemlint.toml": "[lint]\naggregator = \"index\"\n\n[output]\nformat = \"sarif\"\npath = \"out/report.sarif\"\n",
		"index.css":    "@import \"Card.css\";\n",
		"Card.css":     ".card { }\n",
	})

	code, out, _ := runCLI(t, "--all", ".")
	if code != 0 {
		t.Fatalf("code=%d, want 0 (out=%q)", code, out)
	}
	if out != "" {
		t.Fatalf("report should go to output.path, got stdout %q", out)
	}
	data, err := os.ReadFile(filepath.Join("out", "report.sarif"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "\"name\": \"bemlint\"") {
		t.Fatalf("unexpected report:\n%s", data)
	}

	if code, _, _ := runCLI(t, "--config", "missing.toml", "."); code != 2 {
		t.Fatalf("missing explicit config: code=%d, want 2", code)
	}
}

func TestRun_HistoryFlag(t *testing.T) {
	workspace(t, map[string]string{"Card.css": "#hero { }\n"})

	runCLI(t, "--history", "Card.css")
	_, out, _ := runCLI(t, "--history", "Card.css")
	if !strings.Contains(out, "history: 1 diagnostics (+0) in 1 files (+0)") {
		t.Fatalf("missing trend line:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(".bemlint", "history.db")); err != nil {
		t.Fatalf("history db not created: %v", err)
	}
}

type fakeService struct {
	reports []coreapp.Report
	closed  bool
}

func (f *fakeService) Lint(context.Context, []string, bool) (coreapp.Report, error) {
	return f.reports[0], nil
}

func (f *fakeService) Watch(_ context.Context, _ []string, _ bool, onReport func(coreapp.Report)) error {
	for _, rep := range f.reports {
		onReport(rep)
	}
	return nil
}

func (f *fakeService) Close() error {
	f.closed = true
	return nil
}

type fakeFactory struct {
	svc           *fakeService
	enableHistory bool
}

func (f *fakeFactory) New(_ *config.Config, enableHistory bool) (lintService, error) {
	f.enableHistory = enableHistory
	return f.svc, nil
}

func TestRun_WatchReturnsLastExitCode(t *testing.T) {
	workspace(t, nil)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	failing := coreapp.Report{Files: []lint.FileResult{{Path: "Card.css", Diagnostics: []lint.Diagnostic{
		{File: "Card.css", Line: 1, RuleID: "BEM001", Subject: "#a", Message: "There is an id selector #a."},
	}}}}
	clean := coreapp.Report{Files: []lint.FileResult{{Path: "Card.css"}}}
	factory := &fakeFactory{svc: &fakeService{reports: []coreapp.Report{failing, clean}}}

	var stdout, stderr bytes.Buffer
	code := run([]string{"--watch", "--history", "."}, &stdout, &stderr, factory)
	if code != 0 {
		t.Fatalf("code=%d, want 0 after the clean re-lint", code)
	}
	if !strings.Contains(stdout.String(), "1 errors in file Card.css:") {
		t.Fatalf("first report missing:\n%s", stdout.String())
	}
	if !factory.enableHistory {
		t.Error("--history should enable the history store")
	}
	if !factory.svc.closed {
		t.Error("service should be closed on exit")
	}
}

func TestObservabilityServer_Health(t *testing.T) {
	status := &runStatus{}
	srv := httptest.NewServer(NewObservabilityServer("", status).handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status before first run = %d, want 503", resp.StatusCode)
	}

	status.record(coreapp.Report{Files: []lint.FileResult{{Path: "a.css"}}})
	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "up" || body.Files != 1 || body.ExitCode != 0 {
		t.Fatalf("unexpected health body: %+v", body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", resp.StatusCode)
	}
}

func TestResolveLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	if got, want := resolveLogPath(), filepath.Join(dir, "bemlint", "bemlint.log"); got != want {
		t.Fatalf("resolveLogPath() = %q, want %q", got, want)
	}
}
