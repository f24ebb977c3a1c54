package receiptparse_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/receiptparse"
)

var _ = Describe("line classifier", func() {
	DescribeTable("MatchDate",
		func(line, want string, wantOK bool) {
			date, ok := receiptparse.MatchDate(line)
			Expect(ok).To(Equal(wantOK))
			Expect(date).To(Equal(want))
		},
		Entry("ISO date", "2025-02-18", "2025-02-18", true),
		Entry("day first", "18/02/2025", "18/02/2025", true),
		Entry("date inside a line", "Date: 2025-02-18 14:02", "2025-02-18", true),
		Entry("no date", "Costco Wholesale", "", false),
		Entry("short year", "18/02/25", "", false),
	)

	DescribeTable("MatchTotal",
		func(line string, want float64, wantOK bool) {
			total, ok := receiptparse.MatchTotal(line)
			Expect(ok).To(Equal(wantOK))
			Expect(total).To(BeNumerically("~", want, 0.001))
		},
		Entry("currency symbol after colon", "Total: $18.99", 18.99, true),
		Entry("upper case", "TOTAL 42.10", 42.10, true),
		Entry("amount keyword", "Amount $7", 7.0, true),
		Entry("comma separator", "Total 12,50", 12.50, true),
		Entry("subtotal is not a total", "Subtotal 15.00", 0.0, false),
		Entry("keyword without number", "Total", 0.0, false),
		Entry("thousands separator", "Total: $1,234.56", 1234.56, true),
		Entry("dot thousands with comma decimals", "TOTAL 1.234,56", 1234.56, true),
		Entry("grouped integer", "Total 1,234", 1234.0, true),
		Entry("repeated decimal separator", "Total 1.234.56", 0.0, false),
		Entry("sentence full stop", "Total 18.99.", 18.99, true),
	)

	DescribeTable("MatchItem",
		func(line string, want models.ParsedItem, wantOK bool) {
			item, ok := receiptparse.MatchItem(line)
			Expect(ok).To(Equal(wantOK))
			if wantOK {
				Expect(item.Name).To(Equal(want.Name))
				Expect(item.Price).To(BeNumerically("~", want.Price, 0.001))
				Expect(item.Quantity).To(Equal(want.Quantity))
			}
		},
		Entry("single unit", "Pizza 12.99 x 1", models.ParsedItem{Name: "Pizza", Price: 12.99, Quantity: 1}, true),
		Entry("multi-word name", "Orange Soda 2.50 x 2", models.ParsedItem{Name: "Orange Soda", Price: 2.50, Quantity: 2}, true),
		Entry("no spaces around x", "Milk 1.20x3", models.ParsedItem{Name: "Milk", Price: 1.20, Quantity: 3}, true),
		Entry("zero quantity", "Pizza 12.99 x 0", models.ParsedItem{}, false),
		Entry("excluded name", "Discount 2.00 x 1", models.ParsedItem{}, false),
		Entry("price only", "x 12.50", models.ParsedItem{}, false),
		Entry("plain text", "Thank you", models.ParsedItem{}, false),
		Entry("tax class after quantity", "Pizza 12.99 x 1 A", models.ParsedItem{Name: "Pizza", Price: 12.99, Quantity: 1}, true),
		Entry("currency code after quantity", "Soda 2.50 X 2 EUR", models.ParsedItem{Name: "Soda", Price: 2.50, Quantity: 2}, true),
		Entry("grouped price", "Television 1,299.00 x 1", models.ParsedItem{Name: "Television", Price: 1299.00, Quantity: 1}, true),
		Entry("words after quantity", "Pizza 12.99 x 1 extra cheese", models.ParsedItem{}, false),
		Entry("repeated decimal separator", "Pizza 1.2.3 x 1", models.ParsedItem{}, false),
	)

	Describe("StoreName", func() {
		It("returns the first non-blank line", func() {
			Expect(receiptparse.StoreName([]string{"", "  ", " Costco ", "Aldi"})).To(Equal("Costco"))
		})

		It("falls back to Unknown Store", func() {
			Expect(receiptparse.StoreName(nil)).To(Equal(receiptparse.UnknownStore))
		})
	})

	DescribeTable("IsExcluded",
		func(line string, want bool) {
			Expect(receiptparse.IsExcluded(line)).To(Equal(want))
		},
		Entry("discount", "DISCOUNT CARD", true),
		Entry("total", "Subtotal", true),
		Entry("currency unit", "lei", true),
		Entry("misread currency unit", "LEL", true),
		Entry("word containing a currency unit", "Leite", false),
		Entry("item name", "Apple", false),
	)

	DescribeTable("QuantityMarkerPrice",
		func(line string, wantPrice float64, wantQuantity int, wantOK bool) {
			Expect(receiptparse.HasQuantityMarker(line)).To(BeTrue())
			price, quantity, ok := receiptparse.QuantityMarkerPrice(line)
			Expect(ok).To(Equal(wantOK))
			Expect(price).To(BeNumerically("~", wantPrice, 0.001))
			Expect(quantity).To(Equal(wantQuantity))
		},
		Entry("price before marker", "3.50 x", 3.50, 1, true),
		Entry("price after marker", "x 12.50", 12.50, 1, true),
		Entry("quantity and unit price", "2 x 3.50", 3.50, 2, true),
		Entry("glued quantity", "3x 1.25", 1.25, 3, true),
		Entry("unit before marker", "2.000 BUC x 4.99", 4.99, 1, true),
		Entry("nothing numeric", "abc x def", 0.0, 0, false),
		Entry("negative price after marker", "x -3.00", 0.0, 0, false),
		Entry("negative price before marker", "-3.00 x", 0.0, 0, false),
		Entry("grouped price", "x 1,250.00", 1250.0, 1, true),
	)

	It("does not see a marker inside words", func() {
		Expect(receiptparse.HasQuantityMarker("Box 2")).To(BeFalse())
		Expect(receiptparse.HasQuantityMarker("Xbox")).To(BeFalse())
	})
})
