// Package a11y contains closed vocabularies of EPUB Accessibility 1.1
// (schema.org) metadata values. Strings coming from callers are converted into
// typed values here, everything past this point works with typed values only.
package a11y

import (
	"slices"

	"epubgen/common"
)

// Access mode of the publication content (schema:accessMode).
type AccessMode string

const (
	AccessModeTextual  AccessMode = "textual"
	AccessModeVisual   AccessMode = "visual"
	AccessModeAuditory AccessMode = "auditory"
	AccessModeTactile  AccessMode = "tactile"
)

var accessModes = []AccessMode{
	AccessModeTextual,
	AccessModeVisual,
	AccessModeAuditory,
	AccessModeTactile,
}

// Accessibility feature of the publication (schema:accessibilityFeature).
type Feature string

const (
	FeatureAlternativeText         Feature = "alternativeText"
	FeatureAnnotations             Feature = "annotations"
	FeatureAudioDescription        Feature = "audioDescription"
	FeatureBookmarks               Feature = "bookmarks"
	FeatureBraille                 Feature = "braille"
	FeatureCaptions                Feature = "captions"
	FeatureChemML                  Feature = "ChemML"
	FeatureDescribedMath           Feature = "describedMath"
	FeatureDisplayTransformability Feature = "displayTransformability"
	FeatureHighContrastAudio       Feature = "highContrastAudio"
	FeatureHighContrastDisplay     Feature = "highContrastDisplay"
	FeatureIndex                   Feature = "index"
	FeatureLargePrint              Feature = "largePrint"
	FeatureLatex                   Feature = "latex"
	FeatureLongDescription         Feature = "longDescription"
	FeatureMathML                  Feature = "MathML"
	FeatureNone                    Feature = "none"
	FeaturePrintPageNumbers        Feature = "printPageNumbers"
	FeatureReadingOrder            Feature = "readingOrder"
	FeatureRubyAnnotations         Feature = "rubyAnnotations"
	FeatureSignLanguage            Feature = "signLanguage"
	FeatureStructuralNavigation    Feature = "structuralNavigation"
	FeatureSynchronizedAudioText   Feature = "synchronizedAudioText"
	FeatureTableOfContents         Feature = "tableOfContents"
	FeatureTactileGraphic          Feature = "tactileGraphic"
	FeatureTactileObject           Feature = "tactileObject"
	FeatureTimingControl           Feature = "timingControl"
	FeatureTranscript              Feature = "transcript"
	FeatureTTSMarkup               Feature = "ttsMarkup"
	FeatureUnlocked                Feature = "unlocked"
)

var features = []Feature{
	FeatureAlternativeText,
	FeatureAnnotations,
	FeatureAudioDescription,
	FeatureBookmarks,
	FeatureBraille,
	FeatureCaptions,
	FeatureChemML,
	FeatureDescribedMath,
	FeatureDisplayTransformability,
	FeatureHighContrastAudio,
	FeatureHighContrastDisplay,
	FeatureIndex,
	FeatureLargePrint,
	FeatureLatex,
	FeatureLongDescription,
	FeatureMathML,
	FeatureNone,
	FeaturePrintPageNumbers,
	FeatureReadingOrder,
	FeatureRubyAnnotations,
	FeatureSignLanguage,
	FeatureStructuralNavigation,
	FeatureSynchronizedAudioText,
	FeatureTableOfContents,
	FeatureTactileGraphic,
	FeatureTactileObject,
	FeatureTimingControl,
	FeatureTranscript,
	FeatureTTSMarkup,
	FeatureUnlocked,
}

// Accessibility hazard of the publication (schema:accessibilityHazard).
type Hazard string

const (
	HazardFlashing                 Hazard = "flashing"
	HazardMotionSimulation         Hazard = "motionSimulation"
	HazardSound                    Hazard = "sound"
	HazardNoFlashingHazard         Hazard = "noFlashingHazard"
	HazardNoMotionSimulationHazard Hazard = "noMotionSimulationHazard"
	HazardNoSoundHazard            Hazard = "noSoundHazard"
	HazardNone                     Hazard = "none"
	HazardUnknown                  Hazard = "unknown"
)

var hazards = []Hazard{
	HazardFlashing,
	HazardMotionSimulation,
	HazardSound,
	HazardNoFlashingHazard,
	HazardNoMotionSimulationHazard,
	HazardNoSoundHazard,
	HazardNone,
	HazardUnknown,
}

func (m AccessMode) String() string { return string(m) }
func (f Feature) String() string    { return string(f) }
func (h Hazard) String() string     { return string(h) }

func (m AccessMode) IsValid() bool { return slices.Contains(accessModes, m) }
func (f Feature) IsValid() bool    { return slices.Contains(features, f) }
func (h Hazard) IsValid() bool     { return slices.Contains(hazards, h) }

// ParseAccessMode converts string into AccessMode. Error lists valid modes.
func ParseAccessMode(v string) (AccessMode, error) {
	m := AccessMode(v)
	if !m.IsValid() {
		return "", &common.ValueError{Field: "access mode", Value: v, Valid: AccessModeNames()}
	}
	return m, nil
}

// ParseFeature converts string into Feature. Vocabulary is too large to be
// listed in the error.
func ParseFeature(v string) (Feature, error) {
	f := Feature(v)
	if !f.IsValid() {
		return "", &common.ValueError{Field: "accessibility feature", Value: v}
	}
	return f, nil
}

// ParseHazard converts string into Hazard. Error lists valid hazards.
func ParseHazard(v string) (Hazard, error) {
	h := Hazard(v)
	if !h.IsValid() {
		return "", &common.ValueError{Field: "accessibility hazard", Value: v, Valid: HazardNames()}
	}
	return h, nil
}

func IsValidAccessMode(v string) bool {
	return AccessMode(v).IsValid()
}

func IsValidAccessibilityFeature(v string) bool {
	return Feature(v).IsValid()
}

func IsValidAccessibilityHazard(v string) bool {
	return Hazard(v).IsValid()
}

func AccessModeNames() []string {
	return names(accessModes)
}

func FeatureNames() []string {
	return names(features)
}

func HazardNames() []string {
	return names(hazards)
}

func names[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
