package epub

import (
	"archive/zip"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"epubgen/a11y"
	"epubgen/book"
)

const (
	a11yPrefix   = "a11y: http://www.idpf.org/epub/vocab/package/a11y/#"
	coverImageID = "cover-image"
	bookIDName   = "BookId"
)

// chapterID is manifest id of the chapter, N is 1-based position in the
// sequence.
func chapterID(n int) string {
	return "chapter" + strconv.Itoa(n)
}

func writeOPF(zw *zip.Writer, in *Input, modified time.Time) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("unique-identifier", bookIDName)
	pkg.CreateAttr("prefix", a11yPrefix)

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	buildMetadata(metadata, in.Metadata, modified)
	buildAccessibilityMetadata(metadata, in.Metadata)

	buildManifest(pkg.CreateElement("manifest"), in)

	spine := pkg.CreateElement("spine")
	for i := range in.Chapters {
		spine.CreateElement("itemref").CreateAttr("idref", chapterID(i+1))
	}

	doc.Indent(2)
	return writeXMLToZip(zw, path.Join(oebpsDir, "content.opf"), doc)
}

func buildMetadata(parent *etree.Element, m *book.Metadata, modified time.Time) {
	parent.CreateElement("dc:title").SetText(m.Title())

	if author := m.Author(); author != "" {
		creator := parent.CreateElement("dc:creator")
		creator.CreateAttr("id", "creator")
		creator.SetText(author)

		role := parent.CreateElement("meta")
		role.CreateAttr("refines", "#creator")
		role.CreateAttr("property", "role")
		role.CreateAttr("scheme", "marc:relators")
		role.SetText("aut")
	}

	parent.CreateElement("dc:language").SetText(m.Language())

	id := parent.CreateElement("dc:identifier")
	id.CreateAttr("id", bookIDName)
	id.SetText(m.Identifier())

	if isbn := m.ISBN(); isbn != "" {
		el := parent.CreateElement("dc:identifier")
		el.CreateAttr("id", "isbn")
		if !strings.HasPrefix(isbn, "urn:isbn:") {
			isbn = "urn:isbn:" + isbn
		}
		el.SetText(isbn)
	}

	if publisher := m.Publisher(); publisher != "" {
		parent.CreateElement("dc:publisher").SetText(publisher)
	}
	for _, subject := range m.Subjects() {
		parent.CreateElement("dc:subject").SetText(subject)
	}
	if description := m.Description(); description != "" {
		parent.CreateElement("dc:description").SetText(description)
	}

	parent.CreateElement("dc:date").SetText(m.PublicationDate())
	createMeta(parent, "dcterms:modified", modified.UTC().Format(book.TimeFormat))

	if m.Cover() != "" {
		// for readers which do not understand cover-image property
		cover := parent.CreateElement("meta")
		cover.CreateAttr("name", "cover")
		cover.CreateAttr("content", coverImageID)
	}
}

func buildAccessibilityMetadata(parent *etree.Element, m *book.Metadata) {
	for _, mode := range m.AccessModes() {
		createMeta(parent, "schema:accessMode", mode.String())
	}
	for _, combination := range m.AccessModeSufficient() {
		createMeta(parent, "schema:accessModeSufficient", joinModes(combination))
	}
	for _, f := range m.AccessibilityFeatures() {
		createMeta(parent, "schema:accessibilityFeature", f.String())
	}
	for _, h := range m.AccessibilityHazards() {
		createMeta(parent, "schema:accessibilityHazard", h.String())
	}
	for _, p := range []struct{ property, value string }{
		{"schema:accessibilitySummary", m.AccessibilitySummary()},
		{"a11y:certifiedBy", m.CertifiedBy()},
		{"a11y:certifierCredential", m.CertifierCredential()},
		{"a11y:certifierReport", m.CertifierReport()},
	} {
		if p.value != "" {
			createMeta(parent, p.property, p.value)
		}
	}
	for _, standard := range m.ConformsTo() {
		createMeta(parent, "dcterms:conformsTo", standard)
	}
}

func joinModes(modes []a11y.AccessMode) string {
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ",")
}

func createMeta(parent *etree.Element, property, value string) *etree.Element {
	meta := parent.CreateElement("meta")
	meta.CreateAttr("property", property)
	meta.SetText(value)
	return meta
}

func buildManifest(manifest *etree.Element, in *Input) {
	addItem := func(id, href, mediaType string) *etree.Element {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", id)
		item.CreateAttr("href", href)
		item.CreateAttr("media-type", mediaType)
		return item
	}

	addItem("nav", "nav.xhtml", "application/xhtml+xml").CreateAttr("properties", "nav")
	addItem("style", path.Join(stylesDir, defaultStyleName), "text/css")

	for i, ch := range in.Chapters {
		addItem(chapterID(i+1), path.Join(textDir, ch.Filename()), "application/xhtml+xml")
	}
	for _, img := range in.Images {
		addItem(img.ID, path.Join(imagesDir, img.Base()), book.ImageMediaType(img.Path))
	}
	for _, css := range in.Stylesheets {
		addItem(css.ID, path.Join(stylesDir, css.Base()), "text/css")
	}
	if cover := in.Metadata.Cover(); cover != "" {
		addItem(coverImageID, path.Join(imagesDir, coverFileName(cover)), book.ImageMediaType(cover)).
			CreateAttr("properties", "cover-image")
	}
}
