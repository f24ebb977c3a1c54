// Package recognition turns a receipt frame (a photo or a text file) into
// recognized text lines for the receipt parser.
package recognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ryanhu021/splitr/internal/receiptparse"
)

// ErrUnsupportedFrame is returned when a recognizer cannot read a frame's
// content type.
var ErrUnsupportedFrame = errors.New("unsupported frame")

// Recognizer extracts text lines from a frame. Implementations make at most
// one remote call per frame.
type Recognizer interface {
	// Name identifies the backend ("text", "azure", "gemini").
	Name() string
	Recognize(ctx context.Context, frame *Frame) ([]receiptparse.Line, error)
	Close() error
}

// Frame is one captured receipt: an image or a text document.
// The body is read at most once.
type Frame struct {
	ContentType string

	body io.ReadCloser
	data []byte
	read bool
	err  error
}

// NewFrame wraps a body. The frame owns it and closes it in Close.
func NewFrame(body io.ReadCloser, contentType string) *Frame {
	return &Frame{ContentType: normalizeContentType(contentType), body: body}
}

// BytesFrame is a frame over in-memory data.
func BytesFrame(data []byte, contentType string) *Frame {
	return NewFrame(io.NopCloser(bytes.NewReader(data)), contentType)
}

// Bytes reads the whole body on the first call and returns the same data
// afterwards.
func (f *Frame) Bytes() ([]byte, error) {
	if !f.read {
		f.read = true
		f.data, f.err = io.ReadAll(f.body)
		if f.err != nil {
			f.err = fmt.Errorf("reading frame: %w", f.err)
		}
	}
	return f.data, f.err
}

// IsText reports whether the frame holds plain text rather than an image.
func (f *Frame) IsText() bool {
	return strings.HasPrefix(f.ContentType, "text/")
}

// Close releases the body. It is safe to call more than once.
func (f *Frame) Close() error {
	if f.body == nil {
		return nil
	}
	err := f.body.Close()
	f.body = nil
	return err
}

func normalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType
}

// Options selects and configures a recognizer backend.
type Options struct {
	// Backend is "text", "azure" or "gemini".
	Backend string

	AzureEndpoint string
	AzureKey      string

	GeminiAPIKey string
	GeminiModel  string

	// Enhance runs the image clean-up pass before OCR.
	Enhance bool
}

// New builds the recognizer named by opts.Backend.
func New(opts Options) (Recognizer, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "text":
		return Text{}, nil
	case "azure":
		return NewAzure(opts.AzureEndpoint, opts.AzureKey, opts.Enhance)
	case "gemini":
		return NewGemini(opts.GeminiAPIKey, opts.GeminiModel)
	}
	return nil, fmt.Errorf("unknown recognizer backend %q", opts.Backend)
}
