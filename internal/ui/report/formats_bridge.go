package report

import (
	"bemlint/internal/core/app"
	"bemlint/internal/ui/report/formats"
)

func formatsJSON(rep app.Report) ([]byte, error) {
	return formats.GenerateJSON(rep.Files, rep.Trend)
}

func formatsSARIF(rep app.Report, opts Options) ([]byte, error) {
	return formats.GenerateSARIF(opts.ProjectRoot, opts.Version, rep.Files)
}
