package recognition

import (
	"context"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ryanhu021/splitr/internal/receiptparse"
)

const transcribePrompt = `Transcribe every line of printed text on this receipt, top to bottom.

Rules:
- Output one receipt line per output line, in the order they appear.
- Keep prices, quantities and markers such as "x" exactly as printed.
- Do not summarize, translate, reformat numbers or add commentary.
- Do not use markdown code blocks.`

// Gemini transcribes receipt images with a Google Gemini model. It reports
// no geometry, so the layout strategy falls back to line order.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini recognizer.
func NewGemini(apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Recognize(ctx context.Context, frame *Frame) ([]receiptparse.Line, error) {
	data, err := frame.Bytes()
	if err != nil {
		return nil, err
	}
	img, err := prepareImage(data, frame.ContentType, false, imaging.PNG)
	if err != nil {
		return nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.ImageData("png", img), genai.Text(transcribePrompt))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return transcriptLines(text.String()), nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// transcriptLines strips code fences the model sometimes adds anyway and
// splits the transcript into lines.
func transcriptLines(transcript string) []receiptparse.Line {
	transcript = strings.TrimSpace(transcript)
	transcript = strings.TrimPrefix(transcript, "```text")
	transcript = strings.TrimPrefix(transcript, "```")
	transcript = strings.TrimSuffix(transcript, "```")
	transcript = strings.Trim(transcript, "\r\n")

	lines := receiptparse.TextLines(transcript)
	if lines == nil {
		lines = []receiptparse.Line{}
	}
	return lines
}
