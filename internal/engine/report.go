package engine

import (
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/jsvensson/huescan/internal/color"
	"github.com/jsvensson/huescan/internal/grammar"
)

// DefaultReport prints one line per literal in a grep-like layout.
const DefaultReport = `{{ range .Files }}{{ $path := .Path }}{{ range .Annotations -}}
{{ $path }}:{{ .Line }}:{{ .Column }}: {{ .Text }} {{ hex .Color }} ({{ label .Format }})
{{ end }}{{ if .Truncated }}{{ $path }}: scanned first {{ .ScannedChars }} characters only
{{ end }}{{ end }}`

// FileReport is the scan result for one file.
type FileReport struct {
	Path         string
	Annotations  []Annotation
	Truncated    bool
	ScannedChars int
}

// reportData is the data passed to report templates.
type reportData struct {
	Files []FileReport
	Total int
}

// Report renders scan results through a text/template.
type Report struct {
	tmpl *template.Template
}

// NewReport parses src as a report template.
func NewReport(src string) (*Report, error) {
	tmpl, err := template.New("report").Funcs(funcMap()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return &Report{tmpl: tmpl}, nil
}

// LoadReport parses the template file at path.
func LoadReport(path string) (*Report, error) {
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return &Report{tmpl: tmpl}, nil
}

// Render executes the template for files and writes the result to w.
func (r *Report) Render(w io.Writer, files []FileReport) error {
	data := reportData{Files: files}
	for _, f := range files {
		data.Total += len(f.Annotations)
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing template %s: %w", r.tmpl.Name(), err)
	}
	return nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"hex": func(c color.Color) string {
			return c.Hex()
		},
		"hexBare": func(c color.Color) string {
			return c.HexBare()
		},
		"rgb": func(c color.Color) string {
			return c.RGBString()
		},
		"hsl": func(c color.Color) string {
			return c.HSL().String()
		},
		"label": func(f grammar.Format) string {
			return f.Label()
		},
	}
}
