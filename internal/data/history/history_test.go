package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_OpenInitializesSchemaAndSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	first, err := store.SaveRun(Run{
		Timestamp:       base,
		FileCount:       8,
		FailedFiles:     2,
		DiagnosticCount: 5,
		ByRule:          map[string]int{"BEM001": 2, "BEM003": 3},
	})
	if err != nil {
		t.Fatalf("save first run: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated run id")
	}
	if _, err := store.SaveRun(Run{
		Timestamp:       base.Add(time.Hour),
		FileCount:       8,
		FailedFiles:     1,
		ErrorFiles:      1,
		DiagnosticCount: 1,
		ByRule:          map[string]int{"BEM003": 1},
	}); err != nil {
		t.Fatalf("save second run: %v", err)
	}

	all, err := store.LoadRuns(0)
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all))
	}
	if all[0].ID != first.ID || !all[0].Timestamp.Equal(base) {
		t.Fatalf("expected oldest run first, got %+v", all[0])
	}
	if all[0].ByRule["BEM001"] != 2 || all[0].ByRule["BEM003"] != 3 {
		t.Fatalf("rule counts did not roundtrip: %+v", all[0].ByRule)
	}
	if all[1].ErrorFiles != 1 || all[1].DiagnosticCount != 1 {
		t.Fatalf("unexpected second run %+v", all[1])
	}

	latest, err := store.LoadRuns(1)
	if err != nil {
		t.Fatalf("load latest: %v", err)
	}
	if len(latest) != 1 || latest[0].DiagnosticCount != 1 {
		t.Fatalf("expected only the latest run, got %+v", latest)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(Run{FileCount: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	runs, err := store.LoadRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run, got %d", len(runs))
	}
}

func TestOpen_RejectsDirectoryAndEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestEnsureSchema_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("initial schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, SchemaVersion+1); err != nil {
		t.Fatal(err)
	}
	if err := EnsureSchema(db); err == nil {
		t.Fatal("expected error for newer schema version")
	}
}

func TestIsCorruptError(t *testing.T) {
	if IsCorruptError(nil) {
		t.Fatal("nil is not corrupt")
	}
	if !IsCorruptError(os.ErrInvalid) {
		t.Fatal("os.ErrInvalid should count as corrupt")
	}

	path := filepath.Join(t.TempDir(), "history.db")
	if err := os.WriteFile(path, []byte("garbage, not sqlite\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := Open(path)
	if err == nil {
		store.Close()
		t.Fatal("expected open to fail on a non-database file")
	}
	if !IsCorruptError(err) {
		t.Fatalf("expected corrupt error, got %v", err)
	}
}

func TestBuildTrend(t *testing.T) {
	if _, err := BuildTrend(nil); err == nil {
		t.Fatal("expected error without runs")
	}

	single, err := BuildTrend([]Run{{DiagnosticCount: 3, ByRule: map[string]int{"BEM001": 3}}})
	if err != nil {
		t.Fatal(err)
	}
	if single.Previous != nil || single.DeltaByRule["BEM001"] != 3 {
		t.Fatalf("unexpected single-run trend %+v", single)
	}

	trend, err := BuildTrend([]Run{
		{DiagnosticCount: 5, FailedFiles: 2, ByRule: map[string]int{"BEM001": 2, "BEM003": 3}},
		{DiagnosticCount: 2, FailedFiles: 1, ByRule: map[string]int{"BEM003": 1, "BEM005": 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if trend.Previous == nil {
		t.Fatal("expected previous run")
	}
	if trend.DeltaDiagnostics != -3 || trend.DeltaFailedFiles != -1 {
		t.Fatalf("unexpected deltas %+v", trend)
	}
	want := map[string]int{"BEM001": -2, "BEM003": -2, "BEM005": 1}
	for rule, delta := range want {
		if trend.DeltaByRule[rule] != delta {
			t.Errorf("%s delta = %d, want %d", rule, trend.DeltaByRule[rule], delta)
		}
	}
}
