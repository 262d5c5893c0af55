// Package export renders resumes to print-ready HTML and PDF documents.
//
// Two templates exist. The print template is the full-fidelity document handed to the
// PDF printer. The fallback template is a reduced document delivered as a plain .html
// file when printing is unavailable. Both omit any section whose data is empty.
package export

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/careerpath/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const (
	printTemplate    = "print.html.tmpl"
	fallbackTemplate = "fallback.html.tmpl"
)

var templates = template.Must(
	template.New("export").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFiles, "templates/*.tmpl"),
)

// RenderPrint renders the full-fidelity print document.
func RenderPrint(r *types.Resume) ([]byte, error) {
	return render(printTemplate, r)
}

// RenderFallback renders the reduced-fidelity download document.
func RenderFallback(r *types.Resume) ([]byte, error) {
	return render(fallbackTemplate, r)
}

func render(name string, r *types.Resume) ([]byte, error) {
	if r == nil {
		r = types.NewResume()
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, r); err != nil {
		return nil, &TemplateError{
			Template: name,
			Message:  "failed to execute template",
			Cause:    err,
		}
	}
	return buf.Bytes(), nil
}

// BaseName is the file name stem for an exported resume: the owner's name, or "resume".
// Path separators are replaced so the result is always a single path element.
func BaseName(r *types.Resume) string {
	name := ""
	if r != nil {
		name = strings.TrimSpace(r.PersonalInfo.Name)
	}
	if name == "" {
		return "resume"
	}
	return strings.NewReplacer("/", "-", `\`, "-").Replace(name)
}
