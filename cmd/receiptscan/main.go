// Command receiptscan parses a receipt file offline and prints the result as
// JSON. With --save the receipt is also written to the database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/ryanhu021/splitr/internal/receiptparse"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scan"
	"github.com/ryanhu021/splitr/internal/service"
	"github.com/ryanhu021/splitr/internal/storage/sqlite"
	"github.com/ryanhu021/splitr/pkg/api"
	"github.com/ryanhu021/splitr/pkg/logging"
)

type output struct {
	ReceiptID string             `json:"receiptId,omitempty"`
	Parsed    *api.ParsedReceipt `json:"parsed"`
}

func main() {
	fs := ff.NewFlagSet("receiptscan")
	var (
		strategy      = fs.StringLong("strategy", "", "Parser strategy: regex, cursor or layout (default regex)")
		backend       = fs.StringLong("recognizer", "text", "Recognizer for images: text, azure or gemini")
		azureEndpoint = fs.StringLong("azure-endpoint", "", "Azure Computer Vision endpoint")
		azureKey      = fs.StringLong("azure-key", "", "Azure Computer Vision key")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key")
		geminiModel   = fs.StringLong("gemini-model", "", "Google Gemini model name")
		enhance       = fs.BoolLong("enhance", "Clean up images before OCR")
		timeout       = fs.DurationLong("timeout", 30*time.Second, "Recognition timeout")
		save          = fs.BoolLong("save", "Store the parsed receipt")
		dbPath        = fs.StringLong("db", "./data/splitr.db", "Database file path, used with --save")
		logLevel      = fs.StringLong("log-level", "warn", "Log level: debug, info, warn, error")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SPLITR"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(*logLevel)

	args := fs.GetArgs()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: expected exactly one receipt file")
		os.Exit(2)
	}
	path := args[0]

	parsedStrategy, err := receiptparse.ParseStrategy(*strategy)
	if err != nil {
		slog.Error("Invalid strategy", "error", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read receipt", "path", path, "error", err)
		os.Exit(1)
	}
	frame := recognition.BytesFrame(data, contentType(path, data))

	var recognizer recognition.Recognizer = recognition.Text{}
	if !frame.IsText() {
		recognizer, err = recognition.New(recognition.Options{
			Backend:       *backend,
			AzureEndpoint: *azureEndpoint,
			AzureKey:      *azureKey,
			GeminiAPIKey:  *geminiKey,
			GeminiModel:   *geminiModel,
			Enhance:       *enhance,
		})
		if err != nil {
			slog.Error("Failed to initialize recognizer", "error", err)
			os.Exit(1)
		}
	}
	defer recognizer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var out output
	if *save {
		store, err := sqlite.New(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		processor := scan.NewProcessor(recognizer, store,
			scan.WithStrategy(parsedStrategy),
			scan.WithRecognitionTimeout(*timeout),
		)
		result, err := processor.Process(ctx, frame, "")
		if err != nil {
			slog.Error("Failed to scan receipt", "path", path, "error", err)
			os.Exit(1)
		}
		out.ReceiptID = result.Saved.Receipt.ID
		out.Parsed = service.ToAPIParsed(result.Parsed)
	} else {
		processor := scan.NewProcessor(recognizer, nil,
			scan.WithStrategy(parsedStrategy),
			scan.WithRecognitionTimeout(*timeout),
		)
		parsed, err := processor.Preview(ctx, frame, "")
		if err != nil {
			slog.Error("Failed to scan receipt", "path", path, "error", err)
			os.Exit(1)
		}
		out.Parsed = service.ToAPIParsed(parsed)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}

// contentType guesses from the extension first, then from the bytes.
// HEIC has no registered extension on most systems.
func contentType(path string, data []byte) string {
	ext := filepath.Ext(path)
	switch ext {
	case ".heic", ".heif":
		return "image/heic"
	case ".txt":
		return "text/plain"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
