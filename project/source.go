package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"epubgen/common"
)

// Source is chapter body ready to be placed into chapter document.
type Source struct {
	Title   string
	Content string
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	),
	goldmark.WithRendererOptions(
		html.WithXHTML(),
		html.WithUnsafe(),
	),
)

// LoadSource reads chapter file. Markdown is rendered, complete HTML
// documents are reduced to their body, anything else is taken as is. Title
// is the text of the first h1 or, when there is none, file base name.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.AssetNotFoundError("chapter", path, err)
	}

	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := markdown.Convert(data, &buf); err != nil {
			return nil, fmt.Errorf("unable to render markdown (%s): %w", path, err)
		}
		content = buf.String()
	case ".html", ".htm":
		if content, err = bodyContent(data); err != nil {
			return nil, fmt.Errorf("unable to parse html (%s): %w", path, err)
		}
	default:
		content = string(data)
	}

	title := firstHeading(content)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &Source{Title: title, Content: content}, nil
}

func bodyContent(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	body, err := doc.Find("body").First().Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

func firstHeading(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
}
