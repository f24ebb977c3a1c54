// Package receiptparse turns recognized receipt text into a structured receipt.
//
// Three strategies are available. StrategyRegex (the default) classifies
// every line independently and requires each item on one self-contained
// "<name> <price> x <quantity>" line. StrategyCursor is a stateful scan that
// pairs price lines with the name lines that follow them, for receipts whose
// layout splits prices and names across physical lines. StrategyLayout uses
// the recognizer's bounding boxes to pair each price with the closest text
// to its left.
//
// Parsing is pure: no I/O and no shared state, and Parse never panics.
// Malformed or empty input degrades to UnknownStore, UnknownDate, an empty
// item list and a zero total.
package receiptparse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ryanhu021/splitr/internal/models"
)

// Strategy selects the parsing algorithm.
type Strategy string

const (
	StrategyRegex  Strategy = "regex"
	StrategyCursor Strategy = "cursor"
	StrategyLayout Strategy = "layout"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyRegex

// ParseStrategy validates a strategy name. The empty string selects DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultStrategy, nil
	case StrategyRegex:
		return StrategyRegex, nil
	case StrategyCursor:
		return StrategyCursor, nil
	case StrategyLayout:
		return StrategyLayout, nil
	}
	return "", fmt.Errorf("unknown parser strategy %q (want regex, cursor or layout)", name)
}

// Box is a line's bounding box in image pixels.
type Box struct {
	X, Y, Width, Height int
}

func (b Box) centerX() float64 { return float64(b.X) + float64(b.Width)/2 }
func (b Box) centerY() float64 { return float64(b.Y) + float64(b.Height)/2 }

// Line is one recognized text line.
type Line struct {
	Text string

	// Block is the index of the recognizer block the line belongs to.
	Block int

	// Box is nil when the recognizer reports no geometry.
	Box *Box
}

// TextLines splits a text block into lines without geometry.
func TextLines(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]Line, len(raw))
	for i, t := range raw {
		lines[i] = Line{Text: t}
	}
	return lines
}

// Texts returns the text of every line, in order.
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return texts
}

// Parse parses recognized lines with the given strategy.
// It never panics and never returns nil.
func Parse(strategy Strategy, lines []Line) (result *models.ParsedReceipt) {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	defer func() {
		if r := recover(); r != nil {
			result = Empty(strategy)
		}
	}()

	switch strategy {
	case StrategyCursor:
		result = parseCursor(lines)
	case StrategyLayout:
		result = parseLayout(lines)
	default:
		strategy = StrategyRegex
		result = parseRegex(lines)
	}
	result.Strategy = string(strategy)
	return result
}

// ParseText parses a newline-separated text block.
func ParseText(strategy Strategy, text string) *models.ParsedReceipt {
	return Parse(strategy, TextLines(text))
}

// Empty returns the default result for input that yields nothing.
func Empty(strategy Strategy) *models.ParsedReceipt {
	return &models.ParsedReceipt{
		StoreName: UnknownStore,
		Date:      UnknownDate,
		Items:     []models.ParsedItem{},
		Strategy:  string(strategy),
	}
}

// newResult fills the fields every strategy derives the same way:
// the store name and the first date.
func newResult(texts []string) *models.ParsedReceipt {
	result := &models.ParsedReceipt{
		StoreName: StoreName(texts),
		Date:      UnknownDate,
		Items:     []models.ParsedItem{},
	}
	for _, text := range texts {
		if date, ok := MatchDate(text); ok {
			result.Date = date
			break
		}
	}
	return result
}

func trimmed(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = strings.TrimSpace(line.Text)
	}
	return texts
}

func sumItems(items []models.ParsedItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}
