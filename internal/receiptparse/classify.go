package receiptparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ryanhu021/splitr/internal/models"
)

const (
	// UnknownStore is the store name used when the receipt has no non-blank line.
	UnknownStore = "Unknown Store"
	// UnknownDate is the date used when no line carries a recognizable date.
	UnknownDate = "Unknown Date"
)

// amountPattern is a run of digits with "." or "," separators inside it.
const amountPattern = `\d(?:[\d.,]*\d)?`

var (
	datePattern   = regexp.MustCompile(`\b(?:\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2})\b`)
	totalPattern  = regexp.MustCompile(`(?i)\b(?:total|amount)\b\s*:?\s*[$€£]?\s*(` + amountPattern + `)`)
	itemPattern   = regexp.MustCompile(`^(.+?)\s+[$€£]?(` + amountPattern + `)\s*[xX]\s*(\d+)(?:\s+\S{1,4})?$`)
	markerPattern = regexp.MustCompile(`(?i)(?:^|[\s\d])(x)(?:\s|$)`)
	numberPattern = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

	// groupedPattern matches an integer with thousands separators.
	groupedPattern = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d{1,3}(?:\.\d{3})+)$`)

	maxAmount = decimal.NewFromInt(1_000_000_000)

	excludedKeywords = []string{"discount", "total"}
	currencyTokens   = map[string]bool{"lei": true, "lel": true}
)

// MatchDate returns the first DD/MM/YYYY or YYYY-MM-DD token in line.
func MatchDate(line string) (string, bool) {
	date := datePattern.FindString(line)
	return date, date != ""
}

// MatchTotal returns the amount following a "total" or "amount" keyword.
func MatchTotal(line string) (float64, bool) {
	m := totalPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return 0, false
	}
	return amount.InexactFloat64(), true
}

// MatchItem parses a self-contained "<name> <price> x <quantity>" line. One
// short trailing token, such as a tax class or currency code, is allowed
// after the quantity. Lines whose numbers do not parse, whose quantity is below 1, or whose
// name is an excluded keyword do not match.
func MatchItem(line string) (models.ParsedItem, bool) {
	m := itemPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return models.ParsedItem{}, false
	}

	name := strings.TrimSpace(m[1])
	if name == "" || IsExcluded(name) {
		return models.ParsedItem{}, false
	}
	price, ok := parseAmount(m[2])
	if !ok {
		return models.ParsedItem{}, false
	}
	quantity, err := strconv.Atoi(m[3])
	if err != nil || quantity < 1 {
		return models.ParsedItem{}, false
	}

	return models.ParsedItem{
		Name:     name,
		Price:    price.InexactFloat64(),
		Quantity: quantity,
	}, true
}

// StoreName returns the first non-blank line, or UnknownStore.
func StoreName(lines []string) string {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return UnknownStore
}

// IsExcluded reports whether line can never be an item name: it mentions a
// discount or a total, or it is a bare currency unit.
func IsExcluded(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, keyword := range excludedKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return currencyTokens[lower]
}

// IsTerminator reports whether line ends the item section of a receipt.
func IsTerminator(line string) bool {
	return strings.Contains(strings.ToLower(line), "total") || strings.Contains(line, "*")
}

// HasQuantityMarker reports whether line carries a standalone "x" marker,
// as in "2 x 3.50", "3.50 x" or "x 12.50".
func HasQuantityMarker(line string) bool {
	return markerPattern.MatchString(line)
}

// QuantityMarkerPrice extracts the per-unit price and quantity from a line
// with a quantity marker. The token after the marker is the price when it
// parses; an integer before it is then the quantity. Otherwise the last
// token before the marker is the price and the quantity is 1. Negative
// prices do not count.
func QuantityMarkerPrice(line string) (float64, int, bool) {
	loc := markerPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	before := strings.TrimSpace(line[:loc[2]])
	after := strings.TrimSpace(line[loc[3]:])

	if price, ok := parseAmount(after); ok {
		if price.IsNegative() {
			return 0, 0, false
		}
		quantity := 1
		if q, err := strconv.Atoi(before); err == nil && q >= 1 {
			quantity = q
		}
		return price.InexactFloat64(), quantity, true
	}

	fields := strings.Fields(before)
	if len(fields) == 0 {
		return 0, 0, false
	}
	if price, ok := parseAmount(fields[len(fields)-1]); ok && !price.IsNegative() {
		return price.InexactFloat64(), 1, true
	}
	return 0, 0, false
}

// parseAmount parses a decimal token, tolerating a leading currency symbol,
// a comma decimal separator and thousands separators. Exponents, ambiguous
// separators and absurdly large amounts are rejected.
func parseAmount(token string) (decimal.Decimal, bool) {
	token = strings.TrimSpace(token)
	token = strings.TrimLeft(token, "$€£")
	token, ok := normalizeSeparators(token)
	if !ok || !numberPattern.MatchString(token) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil || d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeSeparators rewrites an amount so "." is its only separator.
// The last separator is the decimal one unless the token is a grouped
// integer: "1,234.56", "1.234,56", "1,234" and "1.234.567" keep their value,
// "12,50" becomes "12.50" and "1.234.56" is rejected.
func normalizeSeparators(token string) (string, bool) {
	sign := ""
	if strings.HasPrefix(token, "-") {
		sign, token = "-", token[1:]
	}

	last := strings.LastIndexAny(token, ".,")
	if last < 0 {
		return sign + token, true
	}
	whole, frac := token[:last], token[last+1:]

	if strings.IndexByte(whole, token[last]) >= 0 {
		if !groupedPattern.MatchString(token) {
			return "", false
		}
		return sign + stripSeparators(token), true
	}
	if strings.ContainsAny(whole, ".,") {
		if !groupedPattern.MatchString(whole) {
			return "", false
		}
		return sign + stripSeparators(whole) + "." + frac, true
	}
	if token[last] == ',' && len(frac) == 3 {
		return sign + whole + frac, true
	}
	return sign + whole + "." + frac, true
}

func stripSeparators(s string) string {
	return strings.NewReplacer(",", "", ".", "").Replace(s)
}

func startsWithDigit(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9'
}
