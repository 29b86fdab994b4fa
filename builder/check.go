package builder

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"epubgen/book"
)

// checkAssets looks into registered files and reports anything which could
// upset reading systems. Problems are never fatal, files are copied as is.
func (b *Builder) checkAssets() {
	if cover := b.metadata.Cover(); cover != "" {
		b.checkImage(cover)
	}
	for _, img := range b.images {
		b.checkImage(img.Path)
	}
	for _, s := range b.stylesheets {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			// will be reported when book is assembled
			continue
		}
		if problems := lintStylesheet(data); len(problems) > 0 {
			b.log.Warn("Stylesheet has syntax problems", zap.String("file", s.Path), zap.Strings("problems", problems))
		}
	}
}

func (b *Builder) checkImage(path string) {
	if !book.IsKnownImageExtension(path) {
		b.log.Warn("Unknown image extension, will be declared as JPEG", zap.String("file", path))
	}
	declared := book.ImageMediaType(path)
	if declared == book.MediaTypeSVG {
		// text format, nothing to sniff
		return
	}

	kind, err := filetype.MatchFile(path)
	if err != nil {
		b.log.Debug("Unable to detect image type", zap.String("file", path), zap.Error(err))
		return
	}
	if kind == filetype.Unknown {
		b.log.Warn("Image format is not recognized", zap.String("file", path), zap.String("declared", declared))
		return
	}
	if kind.MIME.Value != declared {
		b.log.Warn("Image content does not match its extension",
			zap.String("file", path), zap.String("declared", declared), zap.String("detected", kind.MIME.Value))
	}
}

// lintStylesheet runs CSS through tolerant parser and collects grammar errors.
func lintStylesheet(data []byte) []string {
	var problems []string

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for range len(data) + 1 {
		gt, _, text := parser.Next()
		if gt != css.ErrorGrammar {
			continue
		}
		err := parser.Err()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			problems = append(problems, err.Error())
			break
		}
		problems = append(problems, "unexpected "+string(text))
	}
	return problems
}
