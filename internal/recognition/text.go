package recognition

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ryanhu021/splitr/internal/receiptparse"
)

// Text reads frames that already hold receipt text, one line per line.
// It is used for pasted text, for tests and for offline runs.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Recognize(ctx context.Context, frame *Frame) ([]receiptparse.Line, error) {
	if frame.ContentType != "" && !frame.IsText() {
		return nil, fmt.Errorf("%w: text recognizer cannot read %s", ErrUnsupportedFrame, frame.ContentType)
	}
	data, err := frame.Bytes()
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: frame is not UTF-8 text", ErrUnsupportedFrame)
	}
	lines := receiptparse.TextLines(string(data))
	if lines == nil {
		lines = []receiptparse.Line{}
	}
	return lines, nil
}

func (Text) Close() error { return nil }
