package a11y

import (
	"net/url"
	"strings"

	"epubgen/common"
)

const (
	// NOTE: all three WCAG 2.0 levels share single IDPF URL (level AA
	// fragment). Existing books were produced with it, so it stays as is.
	conformanceWCAG20 = "http://www.idpf.org/epub/a11y/accessibility.html#wcag-aa"
	conformanceWCAG21 = "https://www.w3.org/TR/WCAG21/"
	conformanceWCAG22 = "https://www.w3.org/TR/WCAG22/"
)

const shorthandPrefix = "EPUB Accessibility 1.1 - WCAG "

var (
	wcagVersions = []string{"2.0", "2.1", "2.2"}
	wcagLevels   = []string{"A", "AA", "AAA"}
)

// shorthands maps recognized human readable conformance statements to
// canonical URLs.
var shorthands = func() map[string]string {
	m := make(map[string]string, len(wcagVersions)*len(wcagLevels))
	for _, ver := range wcagVersions {
		var target string
		switch ver {
		case "2.0":
			target = conformanceWCAG20
		case "2.1":
			target = conformanceWCAG21
		case "2.2":
			target = conformanceWCAG22
		}
		for _, lvl := range wcagLevels {
			m[shorthandPrefix+ver+" Level "+lvl] = target
		}
	}
	return m
}()

// ConformanceShorthands returns recognized shorthands in stable order.
func ConformanceShorthands() []string {
	out := make([]string, 0, len(shorthands))
	for _, ver := range wcagVersions {
		for _, lvl := range wcagLevels {
			out = append(out, shorthandPrefix+ver+" Level "+lvl)
		}
	}
	return out
}

// CanonicalizeConformsTo returns value to be stored as dcterms:conformsTo.
// Absolute URLs are kept unchanged, recognized shorthands are replaced with
// their canonical URL, anything else is rejected.
func CanonicalizeConformsTo(v string) (string, error) {
	if isAbsoluteURL(v) {
		return v, nil
	}
	if target, ok := shorthands[v]; ok {
		return target, nil
	}
	return "", &common.ValueError{Field: "standard", Value: v}
}

func isAbsoluteURL(v string) bool {
	if strings.ContainsAny(v, " \t\r\n") {
		return false
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
