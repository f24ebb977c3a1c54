package recognition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
	"github.com/disintegration/imaging"

	"github.com/ryanhu021/splitr/internal/receiptparse"
)

// Azure recognizes printed text with the Azure Computer Vision OCR API.
// Every OCR region becomes a block and every line keeps its bounding box.
type Azure struct {
	client  computervision.BaseClient
	enhance bool
}

// NewAzure creates a recognizer for the given Computer Vision endpoint.
func NewAzure(endpoint, apiKey string, enhance bool) (*Azure, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("azure endpoint and key are required")
	}
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &Azure{client: client, enhance: enhance}, nil
}

func (a *Azure) Name() string { return "azure" }

func (a *Azure) Recognize(ctx context.Context, frame *Frame) ([]receiptparse.Line, error) {
	data, err := frame.Bytes()
	if err != nil {
		return nil, err
	}
	img, err := prepareImage(data, frame.ContentType, a.enhance, imaging.JPEG)
	if err != nil {
		return nil, err
	}

	result, err := a.client.RecognizePrintedTextInStream(ctx, true, io.NopCloser(bytes.NewReader(img)), computervision.En)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	return linesFromOCR(result), nil
}

func (a *Azure) Close() error { return nil }

// linesFromOCR flattens the OCR regions into lines, in reading order.
func linesFromOCR(result computervision.OcrResult) []receiptparse.Line {
	lines := []receiptparse.Line{}
	if result.Regions == nil {
		return lines
	}
	for block, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			var text strings.Builder
			if line.Words != nil {
				for _, word := range *line.Words {
					if word.Text == nil {
						continue
					}
					if text.Len() > 0 {
						text.WriteByte(' ')
					}
					text.WriteString(*word.Text)
				}
			}
			lines = append(lines, receiptparse.Line{
				Text:  text.String(),
				Block: block,
				Box:   parseBoundingBox(line.BoundingBox),
			})
		}
	}
	return lines
}

// parseBoundingBox reads Azure's "x,y,width,height" string.
func parseBoundingBox(raw *string) *receiptparse.Box {
	if raw == nil {
		return nil
	}
	parts := strings.Split(*raw, ",")
	if len(parts) != 4 {
		return nil
	}
	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil
		}
		v[i] = n
	}
	return &receiptparse.Box{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
}
