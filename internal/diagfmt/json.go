package diagfmt

import (
	"encoding/json"
	"io"

	"ferric/internal/diag"
	"ferric/internal/source"
)

type jsonNote struct {
	File    string `json:"file"`
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	File     string     `json:"file"`
	Line     uint32     `json:"line"`
	Col      uint32     `json:"col"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Truncated   bool             `json:"truncated"`
}

// JSON renders diagnostics as one machine-readable document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	report := jsonReport{Diagnostics: []jsonDiagnostic{}}
	for _, d := range items {
		if d.Severity == diag.SevError {
			report.Errors++
		}
	}
	for _, d := range items {
		if opts.Max > 0 && len(report.Diagnostics) >= opts.Max {
			report.Truncated = true
			break
		}
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			File:     displayPath(file.Path, opts.PathMode),
			Line:     start.Line,
			Col:      start.Col,
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				nFile := fs.Get(n.Span.File)
				nStart, _ := fs.Resolve(n.Span)
				jd.Notes = append(jd.Notes, jsonNote{
					File:    displayPath(nFile.Path, opts.PathMode),
					Line:    nStart.Line,
					Col:     nStart.Col,
					Message: n.Msg,
				})
			}
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
