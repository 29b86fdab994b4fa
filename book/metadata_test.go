package book

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"epubgen/a11y"
	"epubgen/common"
)

func TestNewMetadataDefaults(t *testing.T) {
	m := NewMetadata()

	if m.Language() != DefaultLanguage {
		t.Errorf("language = %q", m.Language())
	}
	if !strings.HasPrefix(m.Identifier(), "urn:uuid:") || len(m.Identifier()) != len("urn:uuid:")+36 {
		t.Errorf("identifier = %q", m.Identifier())
	}
	if _, err := time.Parse(TimeFormat, m.PublicationDate()); err != nil {
		t.Errorf("publication date %q: %v", m.PublicationDate(), err)
	}
	want := []a11y.AccessMode{a11y.AccessModeTextual, a11y.AccessModeVisual}
	if !slices.Equal(m.AccessModes(), want) {
		t.Errorf("access modes = %v, want %v", m.AccessModes(), want)
	}
	if other := NewMetadata(); other.Identifier() == m.Identifier() {
		t.Error("identifiers must be unique")
	}
}

func TestNewMetadataOptions(t *testing.T) {
	m := NewMetadata(
		WithTitle("T"),
		WithAuthor("A"),
		WithLanguage("en"),
		WithDescription("D"),
		WithIdentifier("id-1"),
		WithPublicationDate("2024-01-02T03:04:05Z"),
	)
	if m.Title() != "T" || m.Author() != "A" || m.Language() != "en" || m.Description() != "D" {
		t.Errorf("unexpected scalar values: %q %q %q %q", m.Title(), m.Author(), m.Language(), m.Description())
	}
	if m.Identifier() != "id-1" || m.PublicationDate() != "2024-01-02T03:04:05Z" {
		t.Errorf("unexpected id/date: %q %q", m.Identifier(), m.PublicationDate())
	}
}

func TestSubjects(t *testing.T) {
	m := NewMetadata()
	for _, s := range []string{"PHP", "Laravel", "Symfony", "PHP", "MySQL"} {
		m.AddSubject(s)
	}
	if got, want := m.Subjects(), []string{"PHP", "Laravel", "Symfony", "MySQL"}; !slices.Equal(got, want) {
		t.Fatalf("subjects = %v, want %v", got, want)
	}

	m.RemoveSubject("Laravel")
	if got, want := m.Subjects(), []string{"PHP", "Symfony", "MySQL"}; !slices.Equal(got, want) {
		t.Fatalf("after remove = %v, want %v", got, want)
	}
	if m.HasSubject("Laravel") || !m.HasSubject("MySQL") {
		t.Error("unexpected membership")
	}

	got := m.Subjects()
	got[0] = "changed"
	if m.Subjects()[0] != "PHP" {
		t.Error("returned slice must be a copy")
	}

	m.SetSubjects([]string{"Go", "Go", "EPUB"})
	if got, want := m.Subjects(), []string{"Go", "EPUB"}; !slices.Equal(got, want) {
		t.Errorf("after set = %v, want %v", got, want)
	}
	m.ClearSubjects()
	if len(m.Subjects()) != 0 {
		t.Error("subjects should be empty")
	}
}

func TestAccessModes(t *testing.T) {
	m := NewMetadata()

	if err := m.AddAccessMode("auditory"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddAccessMode("textual"); err != nil {
		t.Fatal(err)
	}
	want := []a11y.AccessMode{a11y.AccessModeTextual, a11y.AccessModeVisual, a11y.AccessModeAuditory}
	if !slices.Equal(m.AccessModes(), want) {
		t.Errorf("access modes = %v, want %v", m.AccessModes(), want)
	}

	err := m.AddAccessMode("smell")
	if !errors.Is(err, common.ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}
	if !strings.Contains(err.Error(), "smell") {
		t.Errorf("error should name value: %v", err)
	}
	if !slices.Equal(m.AccessModes(), want) {
		t.Error("failed add must not change modes")
	}

	if err := m.SetAccessModes([]string{"tactile", "bad"}); err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(m.AccessModes(), want) {
		t.Error("failed set must not change modes")
	}

	m.RemoveAccessMode("visual")
	if m.HasAccessMode("visual") {
		t.Error("visual should be removed")
	}
	if got := m.AccessModes(); len(got) != 2 || got[1] != a11y.AccessModeAuditory {
		t.Errorf("remaining modes should keep order: %v", got)
	}
	m.ClearAccessModes()
	if len(m.AccessModes()) != 0 {
		t.Error("modes should be empty")
	}
}

func TestAccessModeSufficient(t *testing.T) {
	m := NewMetadata()

	if err := m.AddAccessModeSufficient([]string{"textual", "visual", "textual"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddAccessModeSufficient([]string{"textual"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddAccessModeSufficient([]string{"textual"}); err != nil {
		t.Fatal(err)
	}

	got := m.AccessModeSufficient()
	if len(got) != 3 {
		t.Fatalf("expected 3 combinations (duplicates allowed), got %v", got)
	}
	if !slices.Equal(got[0], []a11y.AccessMode{a11y.AccessModeTextual, a11y.AccessModeVisual, a11y.AccessModeTextual}) {
		t.Errorf("first combination = %v", got[0])
	}

	got[0][0] = a11y.AccessModeTactile
	if m.AccessModeSufficient()[0][0] != a11y.AccessModeTextual {
		t.Error("combinations must be deep copied")
	}

	err := m.AddAccessModeSufficient([]string{"textual", "nope"})
	if !errors.Is(err, common.ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name value: %v", err)
	}
	if len(m.AccessModeSufficient()) != 3 {
		t.Error("failed add must not append")
	}

	if err := m.SetAccessModeSufficient([][]string{{"auditory"}, {"bad"}}); err == nil {
		t.Fatal("expected error")
	}
	if len(m.AccessModeSufficient()) != 3 {
		t.Error("failed set must keep previous combinations")
	}
	if err := m.SetAccessModeSufficient([][]string{{"auditory"}}); err != nil {
		t.Fatal(err)
	}
	if got := m.AccessModeSufficient(); len(got) != 1 || got[0][0] != a11y.AccessModeAuditory {
		t.Errorf("after set = %v", got)
	}
	m.ClearAccessModeSufficient()
	if len(m.AccessModeSufficient()) != 0 {
		t.Error("should be empty")
	}
}

func TestAccessibilityFeatures(t *testing.T) {
	m := NewMetadata()
	for _, f := range []string{"alternativeText", "MathML", "alternativeText"} {
		if err := m.AddAccessibilityFeature(f); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.AccessibilityFeatures(); len(got) != 2 {
		t.Fatalf("features = %v", got)
	}
	err := m.AddAccessibilityFeature("mathml")
	if !errors.Is(err, common.ErrInvalidValue) || !strings.Contains(err.Error(), "mathml") {
		t.Errorf("expected case sensitive rejection, got %v", err)
	}
	m.RemoveAccessibilityFeature("alternativeText")
	if m.HasAccessibilityFeature("alternativeText") || !m.HasAccessibilityFeature("MathML") {
		t.Error("unexpected membership")
	}
	if err := m.SetAccessibilityFeatures([]string{"ttsMarkup", "index"}); err != nil {
		t.Fatal(err)
	}
	want := []a11y.Feature{a11y.FeatureTTSMarkup, a11y.FeatureIndex}
	if !slices.Equal(m.AccessibilityFeatures(), want) {
		t.Errorf("features = %v, want %v", m.AccessibilityFeatures(), want)
	}
	m.ClearAccessibilityFeatures()
	if len(m.AccessibilityFeatures()) != 0 {
		t.Error("should be empty")
	}
}

func TestAccessibilityHazards(t *testing.T) {
	m := NewMetadata()
	if err := m.AddAccessibilityHazard("noFlashingHazard"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddAccessibilityHazard("noFlashingHazard"); err != nil {
		t.Fatal(err)
	}
	if got := m.AccessibilityHazards(); len(got) != 1 {
		t.Errorf("hazards = %v", got)
	}
	var ve *common.ValueError
	if err := m.AddAccessibilityHazard("loud"); !errors.As(err, &ve) || ve.Value != "loud" {
		t.Errorf("expected value error for loud, got %v", err)
	}
	m.RemoveAccessibilityHazard("noFlashingHazard")
	if m.HasAccessibilityHazard("noFlashingHazard") {
		t.Error("should be removed")
	}
}

func TestConformsTo(t *testing.T) {
	m := NewMetadata()

	if err := m.AddConformsTo("EPUB Accessibility 1.1 - WCAG 2.1 Level AA"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddConformsTo("https://www.w3.org/TR/WCAG21/"); err != nil {
		t.Fatal(err)
	}
	if got := m.ConformsTo(); !slices.Equal(got, []string{"https://www.w3.org/TR/WCAG21/"}) {
		t.Errorf("canonical duplicates must collapse: %v", got)
	}
	if !m.HasConformsTo("https://www.w3.org/TR/WCAG21/") {
		t.Error("canonical form should be present")
	}
	if m.HasConformsTo("EPUB Accessibility 1.1 - WCAG 2.1 Level AA") {
		t.Error("queries are not canonicalized")
	}

	err := m.AddConformsTo("not a standard")
	if !errors.Is(err, common.ErrInvalidValue) || !strings.Contains(err.Error(), "not a standard") {
		t.Errorf("unexpected error %v", err)
	}

	m.RemoveConformsTo("https://www.w3.org/TR/WCAG21/")
	if len(m.ConformsTo()) != 0 {
		t.Error("should be empty")
	}

	if err := m.SetConformsTo([]string{"EPUB Accessibility 1.1 - WCAG 2.0 Level A", "EPUB Accessibility 1.1 - WCAG 2.0 Level AAA"}); err != nil {
		t.Fatal(err)
	}
	if got := m.ConformsTo(); !slices.Equal(got, []string{"http://www.idpf.org/epub/a11y/accessibility.html#wcag-aa"}) {
		t.Errorf("WCAG 2.0 shorthands collapse into one url: %v", got)
	}
	m.ClearConformsTo()
	if len(m.ConformsTo()) != 0 {
		t.Error("should be empty")
	}
}

func TestCertification(t *testing.T) {
	m := NewMetadata()
	m.SetAccessibilitySummary("summary")
	m.SetCertifiedBy("ACME")
	m.SetCertifierCredential("cred")
	m.SetCertifierReport("https://example.com/report")
	if m.AccessibilitySummary() != "summary" || m.CertifiedBy() != "ACME" ||
		m.CertifierCredential() != "cred" || m.CertifierReport() != "https://example.com/report" {
		t.Error("unexpected certification values")
	}
}
