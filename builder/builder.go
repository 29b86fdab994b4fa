// Package builder is the entry point for programs producing EPUB books: it
// accumulates metadata, chapters and assets and hands them over to the
// package assembler.
package builder

import (
	"context"
	"errors"
	"os"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"epubgen/book"
	"epubgen/common"
	"epubgen/config"
	"epubgen/convert/epub"
)

// Builder is mutable and is not safe for concurrent use. Everything it
// returns is either a copy or an object owned by the caller.
type Builder struct {
	cfg *config.DocumentConfig
	log *zap.Logger

	metadata    *book.Metadata
	chapters    []*book.Chapter
	images      []book.Asset
	stylesheets []book.Asset

	// sequence number for the next chapter, starts with 1
	nextOrder int
}

// New creates builder. When cfg is nil embedded defaults are used, nil log
// disables logging.
func New(cfg *config.DocumentConfig, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("builder")

	if cfg == nil {
		var err error
		if cfg, err = config.DefaultDocumentConfig(); err != nil {
			// embedded configuration is always valid
			log.Warn("Unable to load default configuration", zap.Error(err))
			cfg = &config.DocumentConfig{Language: book.DefaultLanguage, FixZip: true}
		}
	}

	m := book.NewMetadata()
	if cfg.Language != "" {
		m.SetLanguage(cfg.Language)
	}
	return &Builder{cfg: cfg, log: log, metadata: m, nextOrder: 1}
}

// Metadata gives direct access to book metadata.
func (b *Builder) Metadata() *book.Metadata {
	return b.metadata
}

func (b *Builder) SetTitle(title string) *Builder {
	b.metadata.SetTitle(title)
	return b
}

func (b *Builder) SetAuthor(author string) *Builder {
	b.metadata.SetAuthor(author)
	return b
}

func (b *Builder) SetLanguage(lang string) *Builder {
	b.metadata.SetLanguage(lang)
	return b
}

func (b *Builder) SetDescription(description string) *Builder {
	b.metadata.SetDescription(description)
	return b
}

func (b *Builder) SetISBN(isbn string) *Builder {
	b.metadata.SetISBN(isbn)
	return b
}

func (b *Builder) SetPublisher(publisher string) *Builder {
	b.metadata.SetPublisher(publisher)
	return b
}

func (b *Builder) SetPublicationDate(date string) *Builder {
	b.metadata.SetPublicationDate(date)
	return b
}

func (b *Builder) SetIdentifier(id string) *Builder {
	b.metadata.SetIdentifier(id)
	return b
}

func (b *Builder) SetSubjects(subjects []string) *Builder {
	b.metadata.SetSubjects(subjects)
	return b
}

func (b *Builder) AddSubject(subject string) *Builder {
	b.metadata.AddSubject(subject)
	return b
}

// SetCover sets cover image. Empty path removes cover.
func (b *Builder) SetCover(path string) error {
	if path != "" {
		if err := checkFile("cover", path); err != nil {
			return err
		}
	}
	b.metadata.SetCover(path)
	return nil
}

// Accessibility metadata, values are checked against vocabularies.

func (b *Builder) AddAccessMode(mode string) error {
	return b.metadata.AddAccessMode(mode)
}

func (b *Builder) SetAccessModes(modes []string) error {
	return b.metadata.SetAccessModes(modes)
}

func (b *Builder) AddAccessModeSufficient(combination []string) error {
	return b.metadata.AddAccessModeSufficient(combination)
}

func (b *Builder) SetAccessModeSufficient(combinations [][]string) error {
	return b.metadata.SetAccessModeSufficient(combinations)
}

func (b *Builder) AddAccessibilityFeature(feature string) error {
	return b.metadata.AddAccessibilityFeature(feature)
}

func (b *Builder) SetAccessibilityFeatures(features []string) error {
	return b.metadata.SetAccessibilityFeatures(features)
}

func (b *Builder) AddAccessibilityHazard(hazard string) error {
	return b.metadata.AddAccessibilityHazard(hazard)
}

func (b *Builder) SetAccessibilityHazards(hazards []string) error {
	return b.metadata.SetAccessibilityHazards(hazards)
}

func (b *Builder) AddConformsTo(standard string) error {
	return b.metadata.AddConformsTo(standard)
}

func (b *Builder) SetConformsTo(standards []string) error {
	return b.metadata.SetConformsTo(standards)
}

func (b *Builder) SetAccessibilitySummary(summary string) *Builder {
	b.metadata.SetAccessibilitySummary(summary)
	return b
}

func (b *Builder) SetCertifiedBy(certifier string) *Builder {
	b.metadata.SetCertifiedBy(certifier)
	return b
}

func (b *Builder) SetCertifierCredential(credential string) *Builder {
	b.metadata.SetCertifierCredential(credential)
	return b
}

func (b *Builder) SetCertifierReport(report string) *Builder {
	b.metadata.SetCertifierReport(report)
	return b
}

// AddChapter appends chapter to the reading order and returns it so the
// caller may adjust it before the book is saved. Optional filename is used
// verbatim, otherwise one is derived from the title.
func (b *Builder) AddChapter(title, content string, filename ...string) *book.Chapter {
	var name string
	if len(filename) > 0 {
		name = filename[0]
	}
	ch := book.NewChapter(b.nextOrder, title, content, name)
	b.nextOrder++
	b.chapters = append(b.chapters, ch)
	return ch
}

// Chapters returns chapters in reading order. Slice is a copy, chapters are
// shared.
func (b *Builder) Chapters() []*book.Chapter {
	return slices.Clone(b.chapters)
}

// AddImage registers image to be copied into the book. Optional id replaces
// default manifest id (file base name).
func (b *Builder) AddImage(path string, id ...string) error {
	if err := checkFile("image", path); err != nil {
		return err
	}
	b.images = append(b.images, book.NewAsset(path, first(id)))
	return nil
}

// AddStylesheet registers additional stylesheet to be copied into the book.
func (b *Builder) AddStylesheet(path string, id ...string) error {
	if err := checkFile("stylesheet", path); err != nil {
		return err
	}
	b.stylesheets = append(b.stylesheets, book.NewAsset(path, first(id)))
	return nil
}

func (b *Builder) Images() []book.Asset {
	return slices.Clone(b.images)
}

func (b *Builder) Stylesheets() []book.Asset {
	return slices.Clone(b.stylesheets)
}

// Save checks that the book is complete and writes it to path. Nothing is
// written when preconditions are not met.
func (b *Builder) Save(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(b.chapters) == 0 {
		return common.MissingFieldError("at least one chapter is required")
	}
	if b.metadata.Title() == "" {
		return common.MissingFieldError("title is required")
	}
	if err := b.checkFilenames(); err != nil {
		return err
	}
	if path == "" {
		return common.MissingFieldError("output path is required")
	}

	if _, err := language.Parse(b.metadata.Language()); err != nil {
		b.log.Warn("Book language is not a valid BCP 47 tag", zap.String("language", b.metadata.Language()), zap.Error(err))
	}
	b.checkAssets()

	in := &epub.Input{
		Metadata:    b.metadata,
		Chapters:    slices.Clone(b.chapters),
		Images:      slices.Clone(b.images),
		Stylesheets: slices.Clone(b.stylesheets),
		Modified:    time.Now(),
	}
	return epub.Generate(ctx, in, path, b.cfg, b.log)
}

// checkFilenames makes sure every chapter ends up in its own archive entry.
func (b *Builder) checkFilenames() error {
	seen := make(map[string]*book.Chapter, len(b.chapters))
	for _, ch := range b.chapters {
		if prev, ok := seen[ch.Filename()]; ok {
			return fmt.Errorf("%w: chapters %q (%d) and %q (%d) share file name %q",
				common.ErrInvalidValue, prev.Title(), prev.Order(), ch.Title(), ch.Order(), ch.Filename())
		}
		seen[ch.Filename()] = ch
	}
	return nil
}

func checkFile(kind, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return common.AssetNotFoundError(kind, path, nil)
		}
		return common.AssetNotFoundError(kind, path, err)
	}
	if !fi.Mode().IsRegular() {
		return common.AssetNotFoundError(kind, path, errors.New("not a regular file"))
	}
	return nil
}

func first(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
