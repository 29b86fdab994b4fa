package book

import (
	"path/filepath"
	"strings"
)

// Asset is a file to be copied into the book as is (image or stylesheet).
type Asset struct {
	Path string
	ID   string
}

// NewAsset creates asset descriptor, id defaults to base file name.
func NewAsset(path, id string) Asset {
	if id == "" {
		id = filepath.Base(path)
	}
	return Asset{Path: path, ID: id}
}

// Base returns file name asset will have inside of the book.
func (a Asset) Base() string {
	return filepath.Base(a.Path)
}

// Known image media types.
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeGIF  = "image/gif"
	MediaTypeSVG  = "image/svg+xml"
	MediaTypeWEBP = "image/webp"
)

var imageMediaTypes = map[string]string{
	"jpg":  MediaTypeJPEG,
	"jpeg": MediaTypeJPEG,
	"png":  MediaTypePNG,
	"gif":  MediaTypeGIF,
	"svg":  MediaTypeSVG,
	"webp": MediaTypeWEBP,
}

// ImageMediaType returns media type by file extension (case insensitive).
// Unknown extensions are treated as JPEG.
func ImageMediaType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mt, ok := imageMediaTypes[ext]; ok {
		return mt
	}
	return MediaTypeJPEG
}

// IsKnownImageExtension reports if extension has its own media type.
func IsKnownImageExtension(path string) bool {
	_, ok := imageMediaTypes[strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))]
	return ok
}
