// Package project reads book project description used by command line
// program and feeds it into the builder.
package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"epubgen/builder"
)

type (
	AssetRef struct {
		Path string `yaml:"path" toml:"path"`
		ID   string `yaml:"id" toml:"id"`
	}

	// ChapterRef points to chapter source file or carries chapter content
	// inline. When both are present file wins.
	ChapterRef struct {
		Title    string `yaml:"title" toml:"title"`
		File     string `yaml:"file" toml:"file"`
		Content  string `yaml:"content" toml:"content"`
		Filename string `yaml:"filename" toml:"filename"`
	}

	Accessibility struct {
		AccessModes          []string   `yaml:"access_modes" toml:"access_modes"`
		AccessModeSufficient [][]string `yaml:"access_mode_sufficient" toml:"access_mode_sufficient"`
		Features             []string   `yaml:"features" toml:"features"`
		Hazards              []string   `yaml:"hazards" toml:"hazards"`
		Summary              string     `yaml:"summary" toml:"summary"`
		CertifiedBy          string     `yaml:"certified_by" toml:"certified_by"`
		CertifierCredential  string     `yaml:"certifier_credential" toml:"certifier_credential"`
		CertifierReport      string     `yaml:"certifier_report" toml:"certifier_report"`
		ConformsTo           []string   `yaml:"conforms_to" toml:"conforms_to"`
	}

	Project struct {
		Title         string        `yaml:"title" toml:"title"`
		Author        string        `yaml:"author" toml:"author"`
		Language      string        `yaml:"language" toml:"language"`
		Description   string        `yaml:"description" toml:"description"`
		ISBN          string        `yaml:"isbn" toml:"isbn"`
		Publisher     string        `yaml:"publisher" toml:"publisher"`
		Date          string        `yaml:"date" toml:"date"`
		Identifier    string        `yaml:"identifier" toml:"identifier"`
		Cover         string        `yaml:"cover" toml:"cover"`
		Subjects      []string      `yaml:"subjects" toml:"subjects"`
		Accessibility Accessibility `yaml:"accessibility" toml:"accessibility"`
		Images        []AssetRef    `yaml:"images" toml:"images"`
		Stylesheets   []AssetRef    `yaml:"stylesheets" toml:"stylesheets"`
		Chapters      []ChapterRef  `yaml:"chapters" toml:"chapters"`
		// ChaptersDir is a glob pattern, matched files are appended after
		// explicitly listed chapters in natural order.
		ChaptersDir string `yaml:"chapters_dir" toml:"chapters_dir"`

		// directory relative paths are resolved against
		dir string
	}
)

// Load reads project file. Format is selected by extension: .yaml/.yml or
// .toml. Unknown fields are errors in both formats.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read project file: %w", err)
	}

	p := &Project{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode project file (%s): %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, fmt.Errorf("failed to decode project file (%s): %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported project file format: %q", ext)
	}

	if p.dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return p, nil
}

// Dir returns directory relative paths of the project are resolved against.
func (p *Project) Dir() string {
	return p.dir
}

func (p *Project) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

// Apply transfers project content into the builder. Chapter sources are read
// and converted here.
func (p *Project) Apply(ctx context.Context, b *builder.Builder, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("project")

	b.SetTitle(p.Title).SetAuthor(p.Author).SetDescription(p.Description).
		SetISBN(p.ISBN).SetPublisher(p.Publisher).SetSubjects(p.Subjects)
	if p.Language != "" {
		b.SetLanguage(p.Language)
	}
	if p.Date != "" {
		b.SetPublicationDate(p.Date)
	}
	if p.Identifier != "" {
		b.SetIdentifier(p.Identifier)
	}
	if err := b.SetCover(p.resolve(p.Cover)); err != nil {
		return err
	}
	if err := p.applyAccessibility(b); err != nil {
		return err
	}

	for _, img := range p.Images {
		if err := b.AddImage(p.resolve(img.Path), img.ID); err != nil {
			return err
		}
	}
	for _, css := range p.Stylesheets {
		if err := b.AddStylesheet(p.resolve(css.Path), css.ID); err != nil {
			return err
		}
	}

	refs, err := p.chapterRefs(log)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		title, content := ref.Title, ref.Content
		if ref.File != "" {
			src, err := LoadSource(p.resolve(ref.File))
			if err != nil {
				return err
			}
			content = src.Content
			if title == "" {
				title = src.Title
			}
		}
		ch := b.AddChapter(title, content, ref.Filename)
		log.Debug("Chapter added", zap.String("title", ch.Title()), zap.String("file", ch.Filename()))
	}
	return nil
}

func (p *Project) applyAccessibility(b *builder.Builder) error {
	a := p.Accessibility
	if a.AccessModes != nil {
		if err := b.SetAccessModes(a.AccessModes); err != nil {
			return err
		}
	}
	if err := b.SetAccessModeSufficient(a.AccessModeSufficient); err != nil {
		return err
	}
	if err := b.SetAccessibilityFeatures(a.Features); err != nil {
		return err
	}
	if err := b.SetAccessibilityHazards(a.Hazards); err != nil {
		return err
	}
	if err := b.SetConformsTo(a.ConformsTo); err != nil {
		return err
	}
	b.SetAccessibilitySummary(a.Summary).
		SetCertifiedBy(a.CertifiedBy).
		SetCertifierCredential(a.CertifierCredential).
		SetCertifierReport(a.CertifierReport)
	return nil
}

// chapterRefs returns explicitly listed chapters followed by files matching
// chapters_dir pattern.
func (p *Project) chapterRefs(log *zap.Logger) ([]ChapterRef, error) {
	refs := slices.Clone(p.Chapters)
	if p.ChaptersDir == "" {
		return refs, nil
	}

	matches, err := filepath.Glob(p.resolve(p.ChaptersDir))
	if err != nil {
		return nil, fmt.Errorf("bad chapters_dir pattern %q: %w", p.ChaptersDir, err)
	}
	slices.SortFunc(matches, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	for _, m := range matches {
		if fi, err := os.Stat(m); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		refs = append(refs, ChapterRef{File: m})
	}
	if len(matches) == 0 {
		log.Warn("No chapter files found", zap.String("pattern", p.ChaptersDir))
	}
	return refs, nil
}
