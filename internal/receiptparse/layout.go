package receiptparse

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ryanhu021/splitr/internal/models"
)

var layoutPricePattern = regexp.MustCompile(`(?:^|[-–—])\$?\d{1,3}[.,]\d{2}[-–—]?`)

type placedLine struct {
	text   string
	index  int
	cx, cy float64
}

// parseLayout pairs every price on the receipt with the vertically closest
// line to its left. The bottom-most price is the total; copies of it just
// above are repeats of the total and are dropped. A negative price is a
// discount folded into the previous item.
func parseLayout(lines []Line) *models.ParsedReceipt {
	texts := trimmed(lines)
	result := newResult(texts)

	var placed, prices []placedLine
	for i, line := range lines {
		if texts[i] == "" {
			continue
		}
		p := placedLine{text: texts[i], index: i, cy: float64(i)}
		if line.Box != nil {
			p.cx, p.cy = line.Box.centerX(), line.Box.centerY()
		}
		placed = append(placed, p)
		if _, ok := layoutPrice(p.text); ok {
			prices = append(prices, p)
		}
	}
	if len(prices) == 0 {
		return result
	}

	sort.SliceStable(prices, func(i, j int) bool { return prices[i].cy < prices[j].cy })

	total, _ := layoutPrice(prices[len(prices)-1].text)
	prices = prices[:len(prices)-1]
	for i := len(prices) - 1; i >= 1; i-- {
		if p, _ := layoutPrice(prices[i].text); !p.Equal(total) {
			break
		}
		prices = prices[:i]
	}
	result.TotalAmount = total.InexactFloat64()

	for _, price := range prices {
		value, _ := layoutPrice(price.text)
		if value.IsNegative() {
			if n := len(result.Items); n > 0 {
				discounted := decimal.NewFromFloat(result.Items[n-1].Price).Add(value).Round(2)
				result.Items[n-1].Price = discounted.InexactFloat64()
			}
			continue
		}
		result.Items = append(result.Items, models.ParsedItem{
			Name:     nameForPrice(price, placed),
			Price:    value.InexactFloat64(),
			Quantity: 1,
		})
	}

	return result
}

// nameForPrice finds the line left of price with the closest vertical center.
// Without geometry nothing is left of anything, so the nearest preceding
// non-price line is used instead.
func nameForPrice(price placedLine, placed []placedLine) string {
	best := -1
	bestDistance := math.MaxFloat64
	for i, line := range placed {
		if line.index == price.index || line.cx >= price.cx {
			continue
		}
		if d := math.Abs(line.cy - price.cy); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best >= 0 {
		return placed[best].text
	}

	for i := len(placed) - 1; i >= 0; i-- {
		line := placed[i]
		if line.index >= price.index {
			continue
		}
		if _, ok := layoutPrice(line.text); !ok {
			return line.text
		}
	}
	return ""
}

// layoutPrice extracts a price from a line with whitespace removed. A dash
// anywhere on the line makes the price negative.
func layoutPrice(text string) (decimal.Decimal, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	match := layoutPricePattern.FindString(compact)
	if match == "" {
		return decimal.Zero, false
	}
	clean := strings.NewReplacer("$", "", ",", ".", "-", "", "–", "", "—", "").Replace(match)
	value, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	if strings.ContainsAny(compact, "-–—") {
		value = value.Neg()
	}
	return value, true
}
