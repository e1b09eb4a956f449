package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline stage failure
type Kind string

const (
	// ImageAcquisition means the image could not be read or captured
	ImageAcquisition Kind = "IMAGE_ACQUISITION"
	// RecognitionFailed means the OCR service ran but could not parse the image
	RecognitionFailed Kind = "RECOGNITION_FAILED"
	// ServiceUnreachable covers transport failures and malformed responses
	ServiceUnreachable Kind = "SERVICE_UNREACHABLE"
	// LengthMismatch means a translation returned a different number of lines
	LengthMismatch Kind = "LENGTH_MISMATCH"
)

// Error is a classified stage error
type Error struct {
	Kind Kind
	Op   string // stage or operation that failed, e.g. "ocr.recognize"
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: k}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// New creates a classified error
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Acquisition wraps an image source I/O error
func Acquisition(op string, err error) *Error {
	return New(ImageAcquisition, op, err)
}

// Unreachable wraps a network or decoding error
func Unreachable(op string, err error) *Error {
	return New(ServiceUnreachable, op, err)
}

// Recognition reports an OCR parse failure with the service's exit code
func Recognition(op string, exitCode int, message string) *Error {
	if message == "" {
		message = "image could not be parsed"
	}
	return New(RecognitionFailed, op, fmt.Errorf("exit code %d: %s", exitCode, message))
}

// Mismatch reports a translation response whose length differs from the request
func Mismatch(op string, want, got int) *Error {
	return New(LengthMismatch, op, fmt.Errorf("requested %d lines, got %d", want, got))
}

// KindOf returns the kind of the first classified error in err's chain.
// The second result is false for unclassified errors.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}
