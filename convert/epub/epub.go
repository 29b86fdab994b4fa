// Package epub assembles EPUB 3 container from book object graph.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"epubgen/book"
	"epubgen/common"
	"epubgen/config"
)

//go:embed default.css
var defaultStylesheet []byte

const (
	mimetypeContent = "application/epub+zip"
	oebpsDir        = "OEBPS"
	textDir         = "Text"
	stylesDir       = "Styles"
	imagesDir       = "Images"

	defaultStyleName = "style.css"
	defaultTOCTitle  = "Tabla de Contenidos"
)

// Input is everything that goes into a single book. Generate only reads it.
type Input struct {
	Metadata    *book.Metadata
	Chapters    []*book.Chapter
	Images      []book.Asset
	Stylesheets []book.Asset
	// Modified is used for dcterms:modified, current time when zero.
	Modified time.Time
}

// Generate writes EPUB archive to outputPath. Archive is assembled in a
// temporary file next to destination and moved into place only when
// everything succeeded, so existing file at outputPath is either replaced
// completely or left untouched. Directories created for the output are
// removed when generation fails. All failures are reported as
// common.ErrGenerationFailed.
func Generate(ctx context.Context, in *Input, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if in == nil || in.Metadata == nil {
		return common.MissingFieldError("book metadata")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("epub")
	if cfg == nil {
		cfg = &config.DocumentConfig{TOCTitle: defaultTOCTitle, FixZip: true}
	}

	css, err := loadDefaultStylesheet(cfg)
	if err != nil {
		return common.GenerationError(err)
	}

	created, err := makeOutputDir(filepath.Dir(outputPath))
	if err != nil {
		return common.GenerationError(fmt.Errorf("unable to create output directory: %w", err))
	}
	if created != "" {
		defer func() {
			if err == nil {
				return
			}
			if er := os.RemoveAll(created); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove output directory '%s': %w", created, er))
			}
		}()
	}

	modified := in.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	log.Info("Generating EPUB", zap.String("output", outputPath), zap.Int("chapters", len(in.Chapters)))

	tmpName, err := writeArchive(ctx, in, outputPath, css, modified, cfg, log)
	if err != nil {
		return common.GenerationError(err)
	}
	if err := finalize(tmpName, outputPath, cfg.FixZip); err != nil {
		return common.GenerationError(err)
	}
	log.Debug("EPUB saved", zap.String("output", outputPath))
	return nil
}

// makeOutputDir creates dir with all missing parents and returns the topmost
// directory it had to create, empty when dir already existed.
func makeOutputDir(dir string) (string, error) {
	var created string
	for d := dir; ; {
		if _, err := os.Stat(d); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		created = d
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		if created != "" {
			err = multierr.Append(err, os.RemoveAll(created))
		}
		return "", err
	}
	return created, nil
}

func loadDefaultStylesheet(cfg *config.DocumentConfig) ([]byte, error) {
	if cfg.StylesheetPath == "" {
		return defaultStylesheet, nil
	}
	data, err := os.ReadFile(cfg.StylesheetPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read style css from %q: %w", cfg.StylesheetPath, err)
	}
	return data, nil
}

type entryWriter struct {
	name  string
	write func(zw *zip.Writer) error
}

// writeArchive produces complete archive in a temporary file and returns its
// name. On failure temporary file is removed.
func writeArchive(ctx context.Context, in *Input, outputPath string, css []byte, modified time.Time, cfg *config.DocumentConfig, log *zap.Logger) (name string, err error) {
	f, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("unable to create output file: %w", err)
	}
	name = f.Name()

	zw := zip.NewWriter(f)
	defer func() {
		if err == nil {
			return
		}
		zw.Close()
		f.Close()
		if er := os.Remove(name); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to remove temporary file '%s': %w", name, er))
		}
		name = ""
	}()

	entries := []entryWriter{
		{"mimetype", writeMimetype},
		{"container", writeContainer},
		{"OPF", func(zw *zip.Writer) error { return writeOPF(zw, in, modified) }},
		{"NAV", func(zw *zip.Writer) error { return writeNav(zw, in, cfg.TOCTitle) }},
		{"chapters", func(zw *zip.Writer) error { return writeChapters(zw, in, log) }},
		{"stylesheet", func(zw *zip.Writer) error {
			return writeDataToZip(zw, path.Join(oebpsDir, stylesDir, defaultStyleName), css)
		}},
		{"images", func(zw *zip.Writer) error { return writeAssets(zw, imagesDir, in.Images, log) }},
		{"stylesheets", func(zw *zip.Writer) error { return writeAssets(zw, stylesDir, in.Stylesheets, log) }},
		{"cover", func(zw *zip.Writer) error { return writeCover(zw, in.Metadata.Cover(), log) }},
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return name, err
		}
		if err := e.write(zw); err != nil {
			return name, fmt.Errorf("unable to write %s: %w", e.name, err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return name, fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return name, fmt.Errorf("unable to finalize output file: %w", err)
	}
	return name, nil
}

// finalize moves finished archive to its destination, optionally rewriting
// it without data descriptors first. Temporary files never survive.
func finalize(tmpName, outputPath string, fixZip bool) (err error) {
	defer func() {
		if er := os.Remove(tmpName); er != nil && !errors.Is(er, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("unable to remove temporary file '%s': %w", tmpName, er))
		}
	}()

	if !fixZip {
		return os.Rename(tmpName, outputPath)
	}

	fixed := tmpName + ".fixed"
	if err := copyZipWithoutDataDescriptors(tmpName, fixed); err != nil {
		return multierr.Append(err, removeIfExists(fixed))
	}
	if err := os.Rename(fixed, outputPath); err != nil {
		return multierr.Append(err, removeIfExists(fixed))
	}
	return nil
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func copyZipWithoutDataDescriptors(from, to string) (err error) {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer func() {
		if er := out.Close(); er != nil && err == nil {
			err = fmt.Errorf("unable to close target file (%s): %w", to, er)
		}
	}()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			w.Close()
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to write target file (%s): %w", to, err)
	}
	return nil
}

func writeMimetype(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, mimetypeContent)
	return err
}

func writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", path.Join(oebpsDir, "content.opf"))
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func writeChapters(zw *zip.Writer, in *Input, log *zap.Logger) error {
	lang := in.Metadata.Language()
	for _, ch := range in.Chapters {
		name := path.Join(oebpsDir, textDir, ch.Filename())
		if err := writeDataToZip(zw, name, []byte(ch.HTMLContent(lang))); err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Title(), err)
		}
		log.Debug("Chapter written", zap.String("file", name), zap.Int("order", ch.Order()))
	}
	return nil
}

func writeAssets(zw *zip.Writer, dir string, assets []book.Asset, log *zap.Logger) error {
	for _, a := range assets {
		name := path.Join(oebpsDir, dir, a.Base())
		if err := copyFileToZip(zw, name, a.Path); err != nil {
			return err
		}
		log.Debug("Asset written", zap.String("file", name), zap.String("id", a.ID))
	}
	return nil
}

func writeCover(zw *zip.Writer, cover string, log *zap.Logger) error {
	if cover == "" {
		return nil
	}
	name := path.Join(oebpsDir, imagesDir, coverFileName(cover))
	if err := copyFileToZip(zw, name, cover); err != nil {
		return err
	}
	log.Debug("Cover written", zap.String("file", name))
	return nil
}

// coverFileName keeps source extension as is.
func coverFileName(cover string) string {
	return "cover" + filepath.Ext(cover)
}

func copyFileToZip(zw *zip.Writer, name, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("unable to copy %s: %w", src, err)
	}
	return nil
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
