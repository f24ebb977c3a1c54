package models

import "github.com/shopspring/decimal"

// ParsedItem is one line item extracted by the receipt parser.
type ParsedItem struct {
	Name     string
	Price    float64 // per unit
	Quantity int
}

// ParsedReceipt is the structured output of the receipt parser.
// It is not persisted until written through the store.
type ParsedReceipt struct {
	StoreName   string
	Date        string
	TotalAmount float64
	Items       []ParsedItem

	// Strategy names the parsing strategy that produced this result.
	Strategy string
}

// ItemsTotal returns the sum of Price × Quantity over the parsed items,
// independent of any total printed on the receipt.
func (p *ParsedReceipt) ItemsTotal() float64 {
	sum := decimal.Zero
	for _, item := range p.Items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}

// Receipt converts the parse result into an unsaved receipt and its items.
func (p *ParsedReceipt) Receipt() (*Receipt, []*Item) {
	receipt := &Receipt{
		Name:        p.StoreName,
		Date:        p.Date,
		TotalAmount: p.TotalAmount,
	}
	items := make([]*Item, 0, len(p.Items))
	for _, parsed := range p.Items {
		items = append(items, &Item{
			Name:     parsed.Name,
			Price:    parsed.Price,
			Quantity: parsed.Quantity,
		})
	}
	return receipt, items
}
