package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"ferric/internal/diag"
	"ferric/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cy", []byte("fn f() {\n\tlet x: int = true;\n}\n"))
	bag := diag.NewBag(16)
	// Span covers "true" on line 2.
	bag.Error(diag.SemTypeMismatch, source.Span{File: id, Start: 23, End: 27},
		"cannot initialize 'x' of type i32 with bool")
	return bag, fs
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := sb.String()

	if !strings.Contains(out, "main.cy:2:15: ERROR FE3002: cannot initialize 'x' of type i32 with bool") {
		t.Fatalf("header missing or wrong:\n%s", out)
	}
	if !strings.Contains(out, "let x: int = true;") {
		t.Fatalf("source line missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~") {
		t.Fatalf("caret run missing:\n%s", out)
	}
	// The pad keeps the tab so the caret aligns under the literal.
	caretLine := ""
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if !strings.Contains(caretLine, "\t") {
		t.Fatalf("caret line lost the leading tab: %q", caretLine)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cy", []byte("let a = 1;\nlet a = 2;\n"))
	bag := diag.NewBag(16)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemDuplicateDefinition,
		Message:  "'a' is already defined in this scope",
		Primary:  source.Span{File: id, Start: 11, End: 21},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 0, End: 10}, Msg: "first definition is here"},
		},
	})
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(sb.String(), "note: main.cy:1:1: first definition is here") {
		t.Fatalf("note missing:\n%s", sb.String())
	}
}

func TestJSONReport(t *testing.T) {
	bag, fs := testBag(t)
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var report struct {
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
			File     string `json:"file"`
			Line     uint32 `json:"line"`
			Col      uint32 `json:"col"`
		} `json:"diagnostics"`
		Errors    int  `json:"errors"`
		Truncated bool `json:"truncated"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(report.Diagnostics) != 1 || report.Errors != 1 || report.Truncated {
		t.Fatalf("report shape wrong: %+v", report)
	}
	d := report.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "FE3002" || d.File != "main.cy" || d.Line != 2 || d.Col != 15 {
		t.Fatalf("diagnostic wrong: %+v", d)
	}
}

func TestJSONTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cy", []byte("x\ny\nz\n"))
	bag := diag.NewBag(16)
	for i := uint32(0); i < 3; i++ {
		bag.Error(diag.SemUndefinedVariable, source.Span{File: id, Start: i, End: i + 1}, "undefined")
	}
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var report struct {
		Diagnostics []json.RawMessage `json:"diagnostics"`
		Errors      int               `json:"errors"`
		Truncated   bool              `json:"truncated"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(report.Diagnostics) != 2 || !report.Truncated || report.Errors != 3 {
		t.Fatalf("truncation wrong: %+v", report)
	}
}
