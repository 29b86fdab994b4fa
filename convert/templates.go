package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"epubgen/book"
	"epubgen/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Author     string
	Language   string
	Date       string
	Identifier string
	ISBN       string
	Publisher  string
	Subjects   []string
	SourceFile string
}

// buildDate keeps only date part of ISO timestamp, anything else is passed
// through.
func buildDate(date string) string {
	if d, _, ok := strings.Cut(date, "T"); ok {
		return d
	}
	return date
}

func expandTemplate(m *book.Metadata, src string, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      m.Title(),
		Author:     m.Author(),
		Language:   m.Language(),
		Date:       buildDate(m.PublicationDate()),
		Identifier: m.Identifier(),
		ISBN:       m.ISBN(),
		Publisher:  m.Publisher(),
		Subjects:   m.Subjects(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
