// # internal/ui/report/formats/sarif.go
package formats

import (
	"bemlint/internal/engine/lint"
	"encoding/json"
	"path/filepath"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	// ruleIDAnalysisFailure marks files that could not be read or parsed.
	ruleIDAnalysisFailure = "BEM900"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from lint results.
// All file URIs are made relative to projectRoot; absolute paths are never
// included so that reports are safe to share.
func GenerateSARIF(projectRoot, toolVersion string, files []lint.FileResult) ([]byte, error) {
	results := make([]sarifResult, 0)
	failed := false

	for _, f := range files {
		if f.Err != nil {
			failed = true
			results = append(results, sarifResult{
				RuleID:    ruleIDAnalysisFailure,
				Level:     "error",
				Message:   sarifMessage{Text: f.Err.Error()},
				Locations: []sarifLocation{fileLocation(projectRoot, f.Path, 0, 0)},
			})
			continue
		}
		for _, d := range f.Diagnostics {
			results = append(results, sarifResult{
				RuleID:    d.RuleID,
				Level:     "error",
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{fileLocation(projectRoot, d.File, d.Line, d.Column)},
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "bemlint",
						Version: toolVersion,
						Rules:   buildSARIFRules(failed),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules lists the full rule set so consumers can resolve every
// ruleId, plus the analysis-failure pseudo rule when it was used.
func buildSARIFRules(failed bool) []sarifRule {
	all := lint.Rules()
	rules := make([]sarifRule, 0, len(all)+1)
	for _, r := range all {
		rules = append(rules, sarifRule{
			ID:               r.ID(),
			Name:             r.Name(),
			ShortDescription: sarifMessage{Text: r.Description()},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	if failed {
		rules = append(rules, sarifRule{
			ID:               ruleIDAnalysisFailure,
			Name:             "analysis-failure",
			ShortDescription: sarifMessage{Text: "The file could not be read or parsed."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	return rules
}

func fileLocation(projectRoot, path string, line, column int) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(projectRoot, path),
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{
			StartLine:   line,
			StartColumn: column,
		}
	}
	return loc
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
