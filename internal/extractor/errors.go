package extractor

import "fmt"

// ExtractionError reports a failure to turn uploaded bytes into text.
// Its message is safe to surface to clients; pipelines match it with
// errors.As instead of inspecting message strings.
type ExtractionError struct {
	msg   string
	cause error
}

func (e *ExtractionError) Error() string { return e.msg }

func (e *ExtractionError) Unwrap() error { return e.cause }

var (
	// ErrNoTextInPDF is returned when a PDF decodes to empty or whitespace-only text.
	ErrNoTextInPDF = &ExtractionError{msg: "No text in PDF"}

	// ErrNoTextInImage is returned when OCR produces empty or whitespace-only output.
	ErrNoTextInImage = &ExtractionError{msg: "No text extracted from image"}
)

func errUnsupportedType(mediaType string) *ExtractionError {
	return &ExtractionError{msg: "Unsupported file type: " + mediaType}
}

func errDecode(what string, cause error) *ExtractionError {
	return &ExtractionError{msg: fmt.Sprintf("failed to decode %s: %v", what, cause), cause: cause}
}
