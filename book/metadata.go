// Package book defines the object graph of a publication: descriptive and
// accessibility metadata, chapters and external assets.
package book

import (
	"time"

	"github.com/google/uuid"

	"epubgen/a11y"
)

// DefaultLanguage is used when nothing else was specified.
const DefaultLanguage = "es"

// TimeFormat is ISO-8601 UTC layout used for publication and modification
// dates.
const TimeFormat = "2006-01-02T15:04:05Z"

// Metadata holds descriptive and accessibility metadata of the book. All
// getters returning collections return independent copies.
type Metadata struct {
	title           string
	author          string
	language        string
	description     string
	isbn            string
	publisher       string
	publicationDate string
	cover           string
	identifier      string

	subjects orderedSet[string]

	accessModes          orderedSet[a11y.AccessMode]
	accessModeSufficient [][]a11y.AccessMode
	features             orderedSet[a11y.Feature]
	hazards              orderedSet[a11y.Hazard]
	summary              string
	certifiedBy          string
	certifierCredential  string
	certifierReport      string
	conformsTo           orderedSet[string]
}

// NewMetadata creates metadata with defaults: generated identifier, current
// time as publication date, DefaultLanguage and textual+visual access modes.
func NewMetadata(options ...func(*Metadata)) *Metadata {
	m := &Metadata{
		language:        DefaultLanguage,
		identifier:      "urn:uuid:" + uuid.NewString(),
		publicationDate: time.Now().UTC().Format(TimeFormat),
		accessModes:     newOrderedSet(a11y.AccessModeTextual, a11y.AccessModeVisual),
	}
	for _, setOpt := range options {
		setOpt(m)
	}
	return m
}

func WithTitle(title string) func(*Metadata) {
	return func(m *Metadata) { m.title = title }
}

func WithAuthor(author string) func(*Metadata) {
	return func(m *Metadata) { m.author = author }
}

func WithLanguage(lang string) func(*Metadata) {
	return func(m *Metadata) { m.language = lang }
}

func WithDescription(description string) func(*Metadata) {
	return func(m *Metadata) { m.description = description }
}

func WithIdentifier(id string) func(*Metadata) {
	return func(m *Metadata) { m.identifier = id }
}

func WithPublicationDate(date string) func(*Metadata) {
	return func(m *Metadata) { m.publicationDate = date }
}

func (m *Metadata) Title() string           { return m.title }
func (m *Metadata) Author() string          { return m.author }
func (m *Metadata) Language() string        { return m.language }
func (m *Metadata) Description() string     { return m.description }
func (m *Metadata) ISBN() string            { return m.isbn }
func (m *Metadata) Publisher() string       { return m.publisher }
func (m *Metadata) PublicationDate() string { return m.publicationDate }
func (m *Metadata) Cover() string           { return m.cover }
func (m *Metadata) Identifier() string      { return m.identifier }

func (m *Metadata) SetTitle(v string)           { m.title = v }
func (m *Metadata) SetAuthor(v string)          { m.author = v }
func (m *Metadata) SetLanguage(v string)        { m.language = v }
func (m *Metadata) SetDescription(v string)     { m.description = v }
func (m *Metadata) SetISBN(v string)            { m.isbn = v }
func (m *Metadata) SetPublisher(v string)       { m.publisher = v }
func (m *Metadata) SetPublicationDate(v string) { m.publicationDate = v }
func (m *Metadata) SetCover(v string)           { m.cover = v }
func (m *Metadata) SetIdentifier(v string)      { m.identifier = v }

// Subjects

func (m *Metadata) AddSubject(subject string) {
	m.subjects.add(subject)
}

// SetSubjects replaces subjects, repeated values are dropped.
func (m *Metadata) SetSubjects(subjects []string) {
	m.subjects = newOrderedSet(subjects...)
}

func (m *Metadata) RemoveSubject(subject string) {
	m.subjects.remove(subject)
}

func (m *Metadata) ClearSubjects() {
	m.subjects.clear()
}

func (m *Metadata) HasSubject(subject string) bool {
	return m.subjects.has(subject)
}

func (m *Metadata) Subjects() []string {
	return m.subjects.values()
}
