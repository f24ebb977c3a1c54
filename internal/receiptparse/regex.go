package receiptparse

import "github.com/ryanhu021/splitr/internal/models"

// parseRegex classifies each line on its own. Lines that do not match the
// item pattern are skipped; the total is the first "total"/"amount" line.
func parseRegex(lines []Line) *models.ParsedReceipt {
	texts := trimmed(lines)
	result := newResult(texts)

	for _, text := range texts {
		if total, ok := MatchTotal(text); ok {
			result.TotalAmount = total
			break
		}
	}

	for _, text := range texts {
		if item, ok := MatchItem(text); ok {
			result.Items = append(result.Items, item)
		}
	}

	return result
}
