// Package scan runs the receipt pipeline: recognize a frame, parse the
// recognized lines, store the receipt and its items.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ryanhu021/splitr/internal/metrics"
	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/receiptparse"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scanarchive"
	"github.com/ryanhu021/splitr/internal/storage"
)

var (
	// ErrNoArchive is returned by Reparse when no recognized lines were kept.
	ErrNoArchive = errors.New("scan archive disabled")

	// ErrRecognition wraps every recognizer failure.
	ErrRecognition = errors.New("recognition failed")
)

// PartialSaveError reports a receipt row that was stored while its items
// were not. The receipt can be retried with the same ID or deleted.
type PartialSaveError struct {
	ReceiptID string
	Err       error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("receipt %s saved without items: %v", e.ReceiptID, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }

// Archive keeps recognized lines per receipt.
type Archive interface {
	Put(record *scanarchive.Record) error
	Get(receiptID string) (*scanarchive.Record, error)
	Delete(receiptID string) error
}

// Result is the outcome of processing one frame.
type Result struct {
	// Parsed is never nil, even when err is not.
	Parsed *models.ParsedReceipt

	// Saved is the stored receipt; nil unless every step succeeded.
	Saved *models.ReceiptWithItems
}

// Processor wires a recognizer and a store together.
type Processor struct {
	recognizer recognition.Recognizer
	store      storage.Store
	archive    Archive
	metrics    *metrics.Metrics
	strategy   receiptparse.Strategy
	timeout    time.Duration
}

// Option configures a Processor.
type Option func(*Processor)

// WithArchive keeps recognized lines so receipts can be reparsed.
func WithArchive(a Archive) Option {
	return func(p *Processor) { p.archive = a }
}

// WithMetrics counts scans and failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithStrategy sets the strategy used when a call does not name one.
func WithStrategy(s receiptparse.Strategy) Option {
	return func(p *Processor) { p.strategy = s }
}

// WithRecognitionTimeout bounds each recognition call.
func WithRecognitionTimeout(d time.Duration) Option {
	return func(p *Processor) { p.timeout = d }
}

// NewProcessor creates a Processor.
func NewProcessor(recognizer recognition.Recognizer, store storage.Store, opts ...Option) *Processor {
	p := &Processor{
		recognizer: recognizer,
		store:      store,
		strategy:   receiptparse.DefaultStrategy,
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithRecognizer returns a copy of p that reads frames with r. The store,
// archive and metrics are shared.
func (p *Processor) WithRecognizer(r recognition.Recognizer) *Processor {
	clone := *p
	clone.recognizer = r
	return &clone
}

// Strategy returns the default parsing strategy.
func (p *Processor) Strategy() receiptparse.Strategy {
	return p.strategy
}

// Process recognizes, parses and stores one frame, in that order. The frame
// is closed on every path. On failure the returned Result still carries a
// parse result (the default one if recognition failed).
func (p *Processor) Process(ctx context.Context, frame *recognition.Frame, strategy receiptparse.Strategy) (*Result, error) {
	defer frame.Close()
	strategy = p.pick(strategy)

	lines, err := p.recognize(ctx, frame)
	if err != nil {
		return &Result{Parsed: receiptparse.Empty(strategy)}, err
	}

	parsed := receiptparse.Parse(strategy, lines)
	p.metrics.Scanned(p.recognizer.Name(), parsed.Strategy, len(parsed.Items))
	slog.Debug("Receipt parsed",
		"strategy", parsed.Strategy,
		"store", parsed.StoreName,
		"items", len(parsed.Items),
		"total", parsed.TotalAmount,
	)

	saved, err := p.persist(ctx, parsed)
	if err != nil {
		return &Result{Parsed: parsed}, err
	}

	p.keep(saved.Receipt.ID, strategy, lines)
	return &Result{Parsed: parsed, Saved: saved}, nil
}

// Preview recognizes and parses a frame without storing anything.
func (p *Processor) Preview(ctx context.Context, frame *recognition.Frame, strategy receiptparse.Strategy) (*models.ParsedReceipt, error) {
	defer frame.Close()
	strategy = p.pick(strategy)

	lines, err := p.recognize(ctx, frame)
	if err != nil {
		return receiptparse.Empty(strategy), err
	}
	parsed := receiptparse.Parse(strategy, lines)
	p.metrics.Scanned(p.recognizer.Name(), parsed.Strategy, len(parsed.Items))
	return parsed, nil
}

// Reparse parses a stored receipt's archived lines again and replaces its
// items with the new result. Item assignments are dropped with the old
// items; the receipt's name and date are kept.
func (p *Processor) Reparse(ctx context.Context, receiptID string, strategy receiptparse.Strategy) (*Result, error) {
	strategy = p.pick(strategy)
	if p.archive == nil {
		return &Result{Parsed: receiptparse.Empty(strategy)}, ErrNoArchive
	}

	record, err := p.archive.Get(receiptID)
	if err != nil {
		return &Result{Parsed: receiptparse.Empty(strategy)}, fmt.Errorf("failed to load scan: %w", err)
	}

	parsed := receiptparse.Parse(strategy, record.Lines)
	_, items := parsed.Receipt()
	if err := p.store.ReplaceItems(ctx, receiptID, items); err != nil {
		p.metrics.ScanFailed(metrics.StagePersist)
		slog.Error("Failed to replace items", "receipt_id", receiptID, "error", err)
		return &Result{Parsed: parsed}, fmt.Errorf("failed to replace items: %w", err)
	}

	record.Strategy = string(strategy)
	if err := p.archive.Put(record); err != nil {
		p.metrics.ScanFailed(metrics.StageArchive)
		slog.Warn("Failed to update scan record", "receipt_id", receiptID, "error", err)
	}

	saved, err := p.store.GetReceiptWithItems(ctx, receiptID)
	if err != nil {
		return &Result{Parsed: parsed}, fmt.Errorf("failed to reload receipt: %w", err)
	}
	slog.Info("Receipt reparsed", "receipt_id", receiptID, "strategy", strategy, "items", len(saved.Items))
	return &Result{Parsed: parsed, Saved: saved}, nil
}

// Forget drops a receipt's archived lines. Missing records are ignored.
func (p *Processor) Forget(receiptID string) {
	if p.archive == nil {
		return
	}
	if err := p.archive.Delete(receiptID); err != nil {
		p.metrics.ScanFailed(metrics.StageArchive)
		slog.Warn("Failed to delete scan record", "receipt_id", receiptID, "error", err)
	}
}

func (p *Processor) pick(strategy receiptparse.Strategy) receiptparse.Strategy {
	if strategy == "" {
		return p.strategy
	}
	return strategy
}

func (p *Processor) recognize(ctx context.Context, frame *recognition.Frame) ([]receiptparse.Line, error) {
	start := time.Now()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	lines, err := p.recognizer.Recognize(ctx, frame)
	p.metrics.ObserveStage(metrics.StageRecognize, time.Since(start).Seconds())
	if err != nil {
		p.metrics.ScanFailed(metrics.StageRecognize)
		slog.Error("Recognition failed",
			"recognizer", p.recognizer.Name(),
			"content_type", frame.ContentType,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}
	return lines, nil
}

// persist stores the receipt row and then its items. The total is
// recomputed by the store from the items.
func (p *Processor) persist(ctx context.Context, parsed *models.ParsedReceipt) (*models.ReceiptWithItems, error) {
	start := time.Now()
	defer func() { p.metrics.ObserveStage(metrics.StagePersist, time.Since(start).Seconds()) }()

	receipt, items := parsed.Receipt()
	if err := p.store.CreateReceipt(ctx, receipt); err != nil {
		p.metrics.ScanFailed(metrics.StagePersist)
		slog.Error("Failed to save receipt", "store", parsed.StoreName, "error", err)
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	if err := p.store.CreateItems(ctx, receipt.ID, items); err != nil {
		p.metrics.ScanFailed(metrics.StagePersist)
		slog.Error("Failed to save items", "receipt_id", receipt.ID, "items", len(items), "error", err)
		return nil, &PartialSaveError{ReceiptID: receipt.ID, Err: err}
	}

	saved, err := p.store.GetReceiptWithItems(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload receipt: %w", err)
	}
	slog.Info("Receipt saved", "receipt_id", receipt.ID, "items", len(saved.Items), "total", saved.Receipt.TotalAmount)
	return saved, nil
}

// keep archives the recognized lines. Archive failures are logged and
// counted but do not fail the scan.
func (p *Processor) keep(receiptID string, strategy receiptparse.Strategy, lines []receiptparse.Line) {
	if p.archive == nil {
		return
	}
	err := p.archive.Put(&scanarchive.Record{
		ReceiptID:  receiptID,
		Recognizer: p.recognizer.Name(),
		Strategy:   string(strategy),
		Lines:      lines,
	})
	if err != nil {
		p.metrics.ScanFailed(metrics.StageArchive)
		slog.Warn("Failed to archive scan", "receipt_id", receiptID, "error", err)
	}
}
