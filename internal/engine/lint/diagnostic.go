package lint

import "fmt"

// Diagnostic is a single lint finding.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	RuleID   string
	RuleName string
	// Subject is the offending construct as written, e.g. ".foo" or "#bar".
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d %s %s", d.File, d.Line, d.Column, d.RuleID, d.Message)
}

// FileResult is the outcome of linting one file. Err is set when the file
// could not be analyzed; Diagnostics is then empty.
type FileResult struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error
}

func (r FileResult) Failed() bool {
	return r.Err != nil || len(r.Diagnostics) > 0
}
