package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TesseractOCR recognizes text in images by invoking the tesseract binary.
// Each call writes the image to a temporary file that is removed before the
// call returns, on every exit path; nothing is held across requests.
type TesseractOCR struct {
	binary    string
	languages string

	// run executes the OCR command and returns its stdout. Overridable in tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

var _ OCR = (*TesseractOCR)(nil)

// NewTesseractOCR builds an OCR engine around the given tesseract binary.
// languages uses tesseract's "+"-joined language pack syntax, e.g. "eng+por".
func NewTesseractOCR(binary, languages string) *TesseractOCR {
	return &TesseractOCR{
		binary:    binary,
		languages: languages,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

func (o *TesseractOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docqa-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	out, err := o.run(ctx, o.binary,
		tmp.Name(),
		"stdout",
		"-l", o.languages,
		"--oem", "3",
		"--psm", "3",
	)
	if err != nil {
		return "", errDecode("image", err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrNoTextInImage
	}
	return text, nil
}
