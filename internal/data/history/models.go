package history

import "time"

const SchemaVersion = 2

// Run is the persisted summary of one lint run.
type Run struct {
	ID              string
	Timestamp       time.Time
	FileCount       int
	FailedFiles     int
	ErrorFiles      int
	DiagnosticCount int
	ByRule          map[string]int
}

// Trend compares the latest run with the one before it.
type Trend struct {
	Latest           Run
	Previous         *Run
	DeltaDiagnostics int
	DeltaFailedFiles int
	DeltaByRule      map[string]int
}
