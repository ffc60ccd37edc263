package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ferric/internal/diag"
	"ferric/internal/source"
)

// Pretty renders diagnostics human-readably, one block per diagnostic:
// the path:line:col header, the offending source line, and a caret run
// under the span. Call bag.Sort() first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(file.Path, opts.PathMode), start.Line, start.Col,
		severityText(d.Severity, opts.Color), codeText(d.Code, opts.Color), d.Message)

	line := file.GetLine(start.Line)
	if line != "" {
		fmt.Fprintf(w, "  %s\n", line)
		fmt.Fprintf(w, "  %s\n", caret(line, start.Col, d.Primary.Len(), opts.Color))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			nFile := fs.Get(n.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(nFile.Path, opts.PathMode), nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// caret builds the underline row. The pad mirrors the display width of the
// text before the span, so wide runes and tabs stay aligned.
func caret(line string, col uint32, spanLen uint32, colored bool) string {
	prefix := line
	if int(col-1) <= len(line) {
		prefix = line[:col-1]
	}
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	width := int(spanLen)
	rest := runewidth.StringWidth(line) - runewidth.StringWidth(prefix)
	if width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	marks := "^" + strings.Repeat("~", width-1)
	if colored {
		marks = color.New(color.FgHiGreen, color.Bold).Sprint(marks)
	}
	return pad.String() + marks
}

func severityText(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

func codeText(code diag.Code, colored bool) string {
	if !colored {
		return code.String()
	}
	return color.New(color.Bold).Sprint(code.String())
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative, PathModeAuto:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		if mode == PathModeRelative {
			return path
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
