package book

import (
	"strings"
	"testing"
)

func TestChapterFilename(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		order    int
		expected string
	}{
		{name: "simple", title: "Simple Title", order: 1, expected: "simple_title.xhtml"},
		{name: "special characters", title: "Title with Special @#$ Characters!", order: 1, expected: "title_with_special_characters.xhtml"},
		{name: "surrounding and inner spaces", title: "   Spaced   Title   ", order: 1, expected: "spaced_title.xhtml"},
		{name: "accents", title: "Ñandú", order: 1, expected: "nandu.xhtml"},
		{name: "ligatures", title: "Æsir Œuvre Straße", order: 1, expected: "aesir_oeuvre_strasse.xhtml"},
		{name: "mixed whitespace", title: "One\t\nTwo", order: 1, expected: "one_two.xhtml"},
		{name: "digits kept", title: "Chapter 12", order: 1, expected: "chapter_12.xhtml"},
		{name: "empty", title: "", order: 3, expected: "chapter_3.xhtml"},
		{name: "only punctuation", title: "!!!", order: 7, expected: "chapter_7.xhtml"},
		{name: "non latin dropped", title: "日本語", order: 2, expected: "chapter_2.xhtml"},
		{name: "non latin inside", title: "Intro 日本 End", order: 1, expected: "intro_end.xhtml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChapterFilename(tt.title, tt.order); got != tt.expected {
				t.Errorf("ChapterFilename(%q, %d) = %q, want %q", tt.title, tt.order, got, tt.expected)
			}
		})
	}
}

func TestChapterFilenameDeterministic(t *testing.T) {
	const title = "Él Cañón"
	first := ChapterFilename(title, 1)
	for range 5 {
		if got := ChapterFilename(title, 1); got != first {
			t.Fatalf("unstable file name: %q vs %q", got, first)
		}
	}
	if first != "el_canon.xhtml" {
		t.Errorf("got %q", first)
	}
}

func TestNewChapterExplicitFilename(t *testing.T) {
	c := NewChapter(4, "Whatever", "<p>x</p>", "custom-name.html")
	if c.Filename() != "custom-name.html" {
		t.Errorf("explicit file name should be kept verbatim, got %q", c.Filename())
	}
	if c.Order() != 4 {
		t.Errorf("order = %d, want 4", c.Order())
	}

	c.SetFilename("")
	if c.Filename() != "custom-name.html" {
		t.Errorf("empty file name must be ignored, got %q", c.Filename())
	}
	c.SetFilename("other.xhtml")
	if c.Filename() != "other.xhtml" {
		t.Errorf("got %q", c.Filename())
	}
}

func TestChapterHTMLContent(t *testing.T) {
	c := NewChapter(1, "Tom & <Jerry>", `<p class="x">Hello &amp; <b>bye</b></p>`, "")
	doc := c.HTMLContent("en")

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE html>`,
		`<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">`,
		`<title>Tom &amp; &lt;Jerry&gt;</title>`,
		`<meta charset="utf-8"/>`,
		`<link rel="stylesheet" type="text/css" href="../Styles/style.css"/>`,
		`<p class="x">Hello &amp; <b>bye</b></p>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %q:\n%s", want, doc)
		}
	}
	if !strings.HasPrefix(doc, "<?xml") {
		t.Error("document must start with xml prolog")
	}
	if !strings.HasSuffix(doc, "</html>") {
		t.Error("document must end with closing html tag")
	}
}

func TestAssetDefaults(t *testing.T) {
	a := NewAsset("/some/dir/pic.PNG", "")
	if a.ID != "pic.PNG" {
		t.Errorf("id = %q", a.ID)
	}
	if a.Base() != "pic.PNG" {
		t.Errorf("base = %q", a.Base())
	}
	b := NewAsset("/some/dir/pic.png", "logo")
	if b.ID != "logo" {
		t.Errorf("id = %q", b.ID)
	}
}

func TestImageMediaType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"a.jpg", MediaTypeJPEG},
		{"a.JPEG", MediaTypeJPEG},
		{"a.png", MediaTypePNG},
		{"a.gif", MediaTypeGIF},
		{"a.svg", MediaTypeSVG},
		{"a.webp", MediaTypeWEBP},
		{"a.bmp", MediaTypeJPEG},
		{"noext", MediaTypeJPEG},
	}
	for _, tt := range tests {
		if got := ImageMediaType(tt.path); got != tt.expected {
			t.Errorf("ImageMediaType(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
	if IsKnownImageExtension("x.bmp") {
		t.Error("bmp should not be known")
	}
	if !IsKnownImageExtension("x.PNG") {
		t.Error("png should be known")
	}
}
