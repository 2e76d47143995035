package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// FilenameRenderer renders export file names from a template with Sprig functions
type FilenameRenderer struct {
	tmpl *template.Template
}

// FilenameVars are the variables available to the filename template
type FilenameVars struct {
	Format        string
	ReferenceDate time.Time
	Now           time.Time
}

// NewFilenameRenderer parses a filename template
func NewFilenameRenderer(content string) (*FilenameRenderer, error) {
	tmpl, err := template.New("filename").Funcs(sprig.TxtFuncMap()).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filename template: %w", err)
	}

	return &FilenameRenderer{tmpl: tmpl}, nil
}

// Render renders a file name, stripping any directory components
func (r *FilenameRenderer) Render(vars FilenameVars) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute filename template: %w", err)
	}

	name := filepath.Base(strings.TrimSpace(buf.String()))
	if name == "." || name == "/" || name == "" {
		name = "RFV_segmentado." + vars.Format
	}

	return name, nil
}
