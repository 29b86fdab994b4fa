package book

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Chapter is a single content document of the book. Content is a raw HTML
// fragment and is never escaped or validated.
type Chapter struct {
	title    string
	content  string
	filename string
	order    int
}

// NewChapter creates chapter with given position in owner's sequence. When
// filename is empty it is derived from title.
func NewChapter(order int, title, content, filename string) *Chapter {
	c := &Chapter{title: title, content: content, order: order}
	if filename == "" {
		filename = ChapterFilename(title, order)
	}
	c.filename = filename
	return c
}

func (c *Chapter) Title() string    { return c.title }
func (c *Chapter) Content() string  { return c.content }
func (c *Chapter) Filename() string { return c.filename }
func (c *Chapter) Order() int       { return c.order }

func (c *Chapter) SetTitle(title string)     { c.title = title }
func (c *Chapter) SetContent(content string) { c.content = content }

// SetFilename overrides file name, empty value is ignored.
func (c *Chapter) SetFilename(filename string) {
	if filename != "" {
		c.filename = filename
	}
}

const chapterTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="%[1]s" lang="%[1]s">
<head>
    <title>%[2]s</title>
    <meta charset="utf-8"/>
    <link rel="stylesheet" type="text/css" href="../Styles/style.css"/>
</head>
<body>
    %[3]s
</body>
</html>`

// HTMLContent returns complete XHTML document for the chapter. Title and
// language are escaped, content is inserted as is.
func (c *Chapter) HTMLContent(language string) string {
	return fmt.Sprintf(chapterTemplate, html.EscapeString(language), html.EscapeString(c.title), c.content)
}

var accents = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a", "ā", "a", "ã", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e", "ē", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i", "ī", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o", "ō", "o", "õ", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u", "ū", "u",
	"Á", "A", "À", "A", "Ä", "A", "Â", "A", "Ā", "A", "Ã", "A",
	"É", "E", "È", "E", "Ë", "E", "Ê", "E", "Ē", "E",
	"Í", "I", "Ì", "I", "Ï", "I", "Î", "I", "Ī", "I",
	"Ó", "O", "Ò", "O", "Ö", "O", "Ô", "O", "Ō", "O", "Õ", "O",
	"Ú", "U", "Ù", "U", "Ü", "U", "Û", "U", "Ū", "U",
	"ñ", "n", "Ñ", "N",
	"ç", "c", "Ç", "C",
	"ø", "o", "Ø", "O",
	"å", "a", "Å", "A",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ß", "ss",
	"ÿ", "y", "Ÿ", "Y",
)

var (
	// whitespace is ASCII only: space, \t, \n, \v, \f, \r
	notSlugChars = regexp.MustCompile(`[^a-zA-Z0-9\t\n\v\f\r ]`)
	spaceRuns    = regexp.MustCompile(`[\t\n\v\f\r ]+`)
)

// trimChars does not include \f, form feed at the edges turns into
// underscore.
const trimChars = " \t\n\r\x00\x0b"

// ChapterFilename derives file name from chapter title. Only characters from
// fixed accent table are transliterated, everything else outside of ASCII
// letters and digits is dropped. Result is stable for the same title.
func ChapterFilename(title string, order int) string {
	name := accents.Replace(title)
	name = notSlugChars.ReplaceAllString(name, "")
	name = spaceRuns.ReplaceAllString(strings.Trim(name, trimChars), "_")
	name = strings.ToLower(name)
	if name == "" {
		name = "chapter_" + strconv.Itoa(order)
	}
	return name + ".xhtml"
}
