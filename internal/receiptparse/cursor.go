package receiptparse

import "github.com/ryanhu021/splitr/internal/models"

// parseCursor walks the lines with two cursors. Price lines (those with a
// quantity marker) and name lines are paired by ordinal: the n-th price goes
// with the n-th name, whichever arrives first. Name lines only count once a
// price has been seen, so the header is skipped. The scan stops at the first
// line mentioning "total" or containing "*".
func parseCursor(lines []Line) *models.ParsedReceipt {
	texts := trimmed(lines)
	result := newResult(texts)

	var (
		items       []models.ParsedItem
		priceCursor int
		nameCursor  int
		started     bool
	)

	for _, text := range texts {
		if text == "" {
			continue
		}
		if IsTerminator(text) {
			break
		}

		if HasQuantityMarker(text) {
			price, quantity, ok := QuantityMarkerPrice(text)
			if !ok {
				continue
			}
			if priceCursor < len(items) {
				items[priceCursor].Price = price
				items[priceCursor].Quantity = quantity
			} else {
				items = append(items, models.ParsedItem{Price: price, Quantity: quantity})
			}
			priceCursor++
			started = true
			continue
		}

		if !started || startsWithDigit(text) || IsExcluded(text) {
			continue
		}
		if nameCursor < len(items) {
			items[nameCursor].Name = text
		} else {
			items = append(items, models.ParsedItem{Name: text, Quantity: 1})
		}
		nameCursor++
	}

	if items != nil {
		result.Items = items
	}
	result.TotalAmount = sumItems(result.Items)
	return result
}
