package a11y

import (
	"errors"
	"strings"
	"testing"

	"epubgen/common"
)

func TestParseAccessMode(t *testing.T) {
	for _, v := range []string{"textual", "visual", "auditory", "tactile"} {
		m, err := ParseAccessMode(v)
		if err != nil {
			t.Errorf("ParseAccessMode(%q) error = %v", v, err)
			continue
		}
		if m.String() != v {
			t.Errorf("ParseAccessMode(%q) = %q", v, m)
		}
	}

	for _, v := range []string{"", "Textual", "olfactory", "visual "} {
		_, err := ParseAccessMode(v)
		if !errors.Is(err, common.ErrInvalidValue) {
			t.Errorf("ParseAccessMode(%q) error = %v, want ErrInvalidValue", v, err)
		}
	}
}

func TestParseAccessMode_ErrorListsValidValues(t *testing.T) {
	_, err := ParseAccessMode("smell")
	var ve *common.ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *common.ValueError, got %T", err)
	}
	if ve.Value != "smell" {
		t.Errorf("Value = %q, want smell", ve.Value)
	}
	msg := err.Error()
	for _, want := range []string{"smell", "textual", "visual", "auditory", "tactile"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestFeatureVocabulary(t *testing.T) {
	names := FeatureNames()
	if len(names) != 30 {
		t.Errorf("FeatureNames() has %d entries, want 30", len(names))
	}
	for _, n := range names {
		if !IsValidAccessibilityFeature(n) {
			t.Errorf("IsValidAccessibilityFeature(%q) = false", n)
		}
	}
	for _, v := range []string{"invalidFeature", "mathml", "alt-text"} {
		if IsValidAccessibilityFeature(v) {
			t.Errorf("IsValidAccessibilityFeature(%q) = true", v)
		}
		_, err := ParseFeature(v)
		if !errors.Is(err, common.ErrInvalidValue) {
			t.Errorf("ParseFeature(%q) error = %v", v, err)
		}
		if err != nil && !strings.Contains(err.Error(), "invalid accessibility feature: "+v) {
			t.Errorf("unexpected error message %q", err.Error())
		}
	}
}

func TestHazardVocabulary(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"flashing", true},
		{"motionSimulation", true},
		{"sound", true},
		{"noFlashingHazard", true},
		{"noMotionSimulationHazard", true},
		{"noSoundHazard", true},
		{"none", true},
		{"unknown", true},
		{"invalidHazard", false},
		{"noflashinghazard", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsValidAccessibilityHazard(tt.value); got != tt.valid {
				t.Errorf("IsValidAccessibilityHazard(%q) = %v, want %v", tt.value, got, tt.valid)
			}
			_, err := ParseHazard(tt.value)
			if (err == nil) != tt.valid {
				t.Errorf("ParseHazard(%q) error = %v", tt.value, err)
			}
		})
	}
}

func TestCanonicalizeConformsTo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"wcag 2.0 A", "EPUB Accessibility 1.1 - WCAG 2.0 Level A", "http://www.idpf.org/epub/a11y/accessibility.html#wcag-aa"},
		{"wcag 2.0 AA", "EPUB Accessibility 1.1 - WCAG 2.0 Level AA", "http://www.idpf.org/epub/a11y/accessibility.html#wcag-aa"},
		{"wcag 2.0 AAA", "EPUB Accessibility 1.1 - WCAG 2.0 Level AAA", "http://www.idpf.org/epub/a11y/accessibility.html#wcag-aa"},
		{"wcag 2.1 A", "EPUB Accessibility 1.1 - WCAG 2.1 Level A", "https://www.w3.org/TR/WCAG21/"},
		{"wcag 2.1 AA", "EPUB Accessibility 1.1 - WCAG 2.1 Level AA", "https://www.w3.org/TR/WCAG21/"},
		{"wcag 2.2 AAA", "EPUB Accessibility 1.1 - WCAG 2.2 Level AAA", "https://www.w3.org/TR/WCAG22/"},
		{"url kept", "https://www.w3.org/TR/epub-a11y-11/", "https://www.w3.org/TR/epub-a11y-11/"},
		{"http url kept", "http://accessibility.org/standard", "http://accessibility.org/standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalizeConformsTo(tt.input)
			if err != nil {
				t.Fatalf("CanonicalizeConformsTo(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CanonicalizeConformsTo(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeConformsTo_Invalid(t *testing.T) {
	for _, v := range []string{
		"invalid-standard",
		"",
		"EPUB Accessibility 1.1 - WCAG 3.0 Level AA",
		"epub accessibility 1.1 - wcag 2.1 level aa",
		"www.w3.org/TR/WCAG21/",
		"mailto:someone",
	} {
		_, err := CanonicalizeConformsTo(v)
		if !errors.Is(err, common.ErrInvalidValue) {
			t.Errorf("CanonicalizeConformsTo(%q) error = %v, want ErrInvalidValue", v, err)
			continue
		}
		if !strings.Contains(err.Error(), "invalid standard: "+v) {
			t.Errorf("error %q does not name the value", err.Error())
		}
	}
}

func TestConformanceShorthands(t *testing.T) {
	list := ConformanceShorthands()
	if len(list) != 9 {
		t.Fatalf("ConformanceShorthands() has %d entries, want 9", len(list))
	}
	for _, s := range list {
		if _, err := CanonicalizeConformsTo(s); err != nil {
			t.Errorf("shorthand %q is not recognized: %v", s, err)
		}
	}
	if list[0] != "EPUB Accessibility 1.1 - WCAG 2.0 Level A" {
		t.Errorf("unexpected first shorthand %q", list[0])
	}
}
