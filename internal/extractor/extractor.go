package extractor

// Package extractor turns raw uploaded bytes into plain text. The effective
// media type is decided exactly once, as a closed variant, before any decoder
// runs; PDF bytes go through the in-memory PDF parser and image bytes through
// an OCR pass. Anything else is rejected up front.

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
)

// Kind is the closed set of extraction strategies.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindImage
)

// FileType is the effective media type decision for one upload.
type FileType struct {
	Kind      Kind
	MediaType string
}

// extensionTypes maps lowercase file extensions to media types, used when the
// client did not declare a recognized type.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
}

var imageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/tiff": {},
}

// Detect resolves the effective media type for an upload. The declared type
// wins when it is one of the recognized types; otherwise the filename
// extension decides, falling back to application/octet-stream.
// Parameters on the declared type ("application/pdf; charset=binary") are
// stripped before the lookup.
func Detect(filename, declaredType string) FileType {
	mt := declaredType
	if parsed, _, err := mime.ParseMediaType(declaredType); err == nil {
		mt = parsed
	}
	if !recognized(mt) {
		if ext := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ext != "" {
			mt = ext
		} else if mt == "" {
			mt = "application/octet-stream"
		}
	}
	switch {
	case mt == "application/pdf":
		return FileType{Kind: KindPDF, MediaType: mt}
	case isImage(mt):
		return FileType{Kind: KindImage, MediaType: mt}
	default:
		// The declared type, however bogus, is kept so the rejection names it.
		return FileType{Kind: KindUnsupported, MediaType: mt}
	}
}

func recognized(mediaType string) bool {
	return mediaType == "application/pdf" || isImage(mediaType)
}

func isImage(mediaType string) bool {
	_, ok := imageTypes[mediaType]
	return ok
}

// Extractor converts raw file bytes into plain text.
// The filename and declared media type help select the extraction strategy.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename, declaredType string) (string, error)
}

// TextExtractor dispatches to the PDF parser or the OCR engine based on the
// detected file type. The returned text is always trimmed and never empty;
// extraction failures are reported as *ExtractionError.
type TextExtractor struct {
	ocr OCR
}

// OCR runs a text recognition pass over image bytes.
type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// New constructs a TextExtractor using the given OCR engine for image inputs.
func New(ocr OCR) *TextExtractor {
	return &TextExtractor{ocr: ocr}
}

var _ Extractor = (*TextExtractor)(nil)

func (e *TextExtractor) Extract(ctx context.Context, data []byte, filename, declaredType string) (string, error) {
	ft := Detect(filename, declaredType)
	switch ft.Kind {
	case KindPDF:
		return extractPDF(data)
	case KindImage:
		return e.ocr.Recognize(ctx, data)
	default:
		return "", errUnsupportedType(ft.MediaType)
	}
}
