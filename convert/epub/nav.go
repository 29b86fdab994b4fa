package epub

import (
	"archive/zip"
	"path"

	"github.com/beevik/etree"
)

func writeNav(zw *zip.Writer, in *Input, tocTitle string) error {
	if tocTitle == "" {
		tocTitle = defaultTOCTitle
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	if lang := in.Metadata.Language(); lang != "" {
		html.CreateAttr("xml:lang", lang)
		html.CreateAttr("lang", lang)
	}

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(tocTitle)

	body := html.CreateElement("body")

	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")
	nav.CreateElement("h1").SetText(tocTitle)

	ol := nav.CreateElement("ol")
	for _, ch := range in.Chapters {
		a := ol.CreateElement("li").CreateElement("a")
		a.CreateAttr("href", path.Join(textDir, ch.Filename()))
		a.SetText(ch.Title())
	}

	if len(in.Chapters) > 0 {
		landmarks := body.CreateElement("nav")
		landmarks.CreateAttr("epub:type", "landmarks")
		landmarks.CreateAttr("id", "landmarks")
		landmarks.CreateAttr("hidden", "hidden")

		lol := landmarks.CreateElement("ol")
		for _, l := range []struct{ kind, href, title string }{
			{"toc", "nav.xhtml#toc", tocTitle},
			{"bodymatter", path.Join(textDir, in.Chapters[0].Filename()), in.Chapters[0].Title()},
		} {
			a := lol.CreateElement("li").CreateElement("a")
			a.CreateAttr("epub:type", l.kind)
			a.CreateAttr("href", l.href)
			a.SetText(l.title)
		}
	}

	doc.Indent(2)
	return writeXMLToZip(zw, path.Join(oebpsDir, "nav.xhtml"), doc)
}
