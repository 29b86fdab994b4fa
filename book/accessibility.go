package book

import (
	"fmt"
	"slices"

	"epubgen/a11y"
)

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		p, err := parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Access modes

func (m *Metadata) AddAccessMode(mode string) error {
	am, err := a11y.ParseAccessMode(mode)
	if err != nil {
		return err
	}
	m.accessModes.add(am)
	return nil
}

// SetAccessModes validates all modes first, on error nothing is changed.
func (m *Metadata) SetAccessModes(modes []string) error {
	parsed, err := parseAll(modes, a11y.ParseAccessMode)
	if err != nil {
		return err
	}
	m.accessModes = newOrderedSet(parsed...)
	return nil
}

func (m *Metadata) RemoveAccessMode(mode string) {
	m.accessModes.remove(a11y.AccessMode(mode))
}

func (m *Metadata) ClearAccessModes() {
	m.accessModes.clear()
}

func (m *Metadata) HasAccessMode(mode string) bool {
	return m.accessModes.has(a11y.AccessMode(mode))
}

func (m *Metadata) AccessModes() []a11y.AccessMode {
	return m.accessModes.values()
}

// Access mode sufficient

// AddAccessModeSufficient appends combination of access modes sufficient to
// consume the publication. Combination is kept as given, identical
// combinations are not collapsed either.
func (m *Metadata) AddAccessModeSufficient(combination []string) error {
	modes := make([]a11y.AccessMode, 0, len(combination))
	for _, v := range combination {
		am, err := a11y.ParseAccessMode(v)
		if err != nil {
			return fmt.Errorf("invalid access mode in combination: %w", err)
		}
		modes = append(modes, am)
	}
	m.accessModeSufficient = append(m.accessModeSufficient, modes)
	return nil
}

// SetAccessModeSufficient replaces all combinations. On error nothing is
// changed.
func (m *Metadata) SetAccessModeSufficient(combinations [][]string) error {
	saved := m.accessModeSufficient
	m.accessModeSufficient = nil
	for _, c := range combinations {
		if err := m.AddAccessModeSufficient(c); err != nil {
			m.accessModeSufficient = saved
			return err
		}
	}
	return nil
}

func (m *Metadata) ClearAccessModeSufficient() {
	m.accessModeSufficient = nil
}

func (m *Metadata) AccessModeSufficient() [][]a11y.AccessMode {
	out := make([][]a11y.AccessMode, 0, len(m.accessModeSufficient))
	for _, c := range m.accessModeSufficient {
		out = append(out, slices.Clone(c))
	}
	return out
}

// Accessibility features

func (m *Metadata) AddAccessibilityFeature(feature string) error {
	f, err := a11y.ParseFeature(feature)
	if err != nil {
		return err
	}
	m.features.add(f)
	return nil
}

func (m *Metadata) SetAccessibilityFeatures(features []string) error {
	parsed, err := parseAll(features, a11y.ParseFeature)
	if err != nil {
		return err
	}
	m.features = newOrderedSet(parsed...)
	return nil
}

func (m *Metadata) RemoveAccessibilityFeature(feature string) {
	m.features.remove(a11y.Feature(feature))
}

func (m *Metadata) ClearAccessibilityFeatures() {
	m.features.clear()
}

func (m *Metadata) HasAccessibilityFeature(feature string) bool {
	return m.features.has(a11y.Feature(feature))
}

func (m *Metadata) AccessibilityFeatures() []a11y.Feature {
	return m.features.values()
}

// Accessibility hazards

func (m *Metadata) AddAccessibilityHazard(hazard string) error {
	h, err := a11y.ParseHazard(hazard)
	if err != nil {
		return err
	}
	m.hazards.add(h)
	return nil
}

func (m *Metadata) SetAccessibilityHazards(hazards []string) error {
	parsed, err := parseAll(hazards, a11y.ParseHazard)
	if err != nil {
		return err
	}
	m.hazards = newOrderedSet(parsed...)
	return nil
}

func (m *Metadata) RemoveAccessibilityHazard(hazard string) {
	m.hazards.remove(a11y.Hazard(hazard))
}

func (m *Metadata) ClearAccessibilityHazards() {
	m.hazards.clear()
}

func (m *Metadata) HasAccessibilityHazard(hazard string) bool {
	return m.hazards.has(a11y.Hazard(hazard))
}

func (m *Metadata) AccessibilityHazards() []a11y.Hazard {
	return m.hazards.values()
}

// Conformance

// AddConformsTo canonicalizes standard and adds it unless canonical form is
// already present.
func (m *Metadata) AddConformsTo(standard string) error {
	canonical, err := a11y.CanonicalizeConformsTo(standard)
	if err != nil {
		return err
	}
	m.conformsTo.add(canonical)
	return nil
}

func (m *Metadata) SetConformsTo(standards []string) error {
	parsed, err := parseAll(standards, a11y.CanonicalizeConformsTo)
	if err != nil {
		return err
	}
	m.conformsTo = newOrderedSet(parsed...)
	return nil
}

// RemoveConformsTo and HasConformsTo expect canonical form, shorthands are
// not expanded.
func (m *Metadata) RemoveConformsTo(standard string) {
	m.conformsTo.remove(standard)
}

func (m *Metadata) ClearConformsTo() {
	m.conformsTo.clear()
}

func (m *Metadata) HasConformsTo(standard string) bool {
	return m.conformsTo.has(standard)
}

func (m *Metadata) ConformsTo() []string {
	return m.conformsTo.values()
}

// Free text accessibility properties

func (m *Metadata) AccessibilitySummary() string { return m.summary }
func (m *Metadata) CertifiedBy() string          { return m.certifiedBy }
func (m *Metadata) CertifierCredential() string  { return m.certifierCredential }
func (m *Metadata) CertifierReport() string      { return m.certifierReport }

func (m *Metadata) SetAccessibilitySummary(v string) { m.summary = v }
func (m *Metadata) SetCertifiedBy(v string)          { m.certifiedBy = v }
func (m *Metadata) SetCertifierCredential(v string)  { m.certifierCredential = v }
func (m *Metadata) SetCertifierReport(v string)      { m.certifierReport = v }
