package receiptparse_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/receiptparse"
)

func lines(texts ...string) []receiptparse.Line {
	out := make([]receiptparse.Line, len(texts))
	for i, t := range texts {
		out[i] = receiptparse.Line{Text: t}
	}
	return out
}

func boxed(text string, x, y, w, h int) receiptparse.Line {
	return receiptparse.Line{Text: text, Box: &receiptparse.Box{X: x, Y: y, Width: w, Height: h}}
}

func item(name string, price float64, quantity int) models.ParsedItem {
	return models.ParsedItem{Name: name, Price: price, Quantity: quantity}
}

var allStrategies = []receiptparse.Strategy{
	receiptparse.StrategyRegex,
	receiptparse.StrategyCursor,
	receiptparse.StrategyLayout,
}

var _ = Describe("Parse", func() {
	Describe("regex strategy", func() {
		var result *models.ParsedReceipt

		It("parses a receipt with self-contained item lines", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines(
				"Costco", "2025-02-18", "Pizza 12.99 x 1", "Soda 2.50 x 2", "Total: $18.99",
			))

			Expect(result.StoreName).To(Equal("Costco"))
			Expect(result.Date).To(Equal("2025-02-18"))
			Expect(result.Items).To(Equal([]models.ParsedItem{
				item("Pizza", 12.99, 1),
				item("Soda", 2.50, 2),
			}))
			Expect(result.TotalAmount).To(BeNumerically("~", 18.99, 0.001))
			Expect(result.Strategy).To(Equal("regex"))
		})

		It("keeps the printed total consistent with the items", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines(
				"Bakery", "Bread 2.00 x 2", "Milk 1.25 x 4", "Total: $9.00",
			))

			Expect(result.ItemsTotal()).To(BeNumerically("~", result.TotalAmount, 0.005))
		})

		It("computes the item sum when no total is printed", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines("Bakery", "Bread 2.00 x 2", "Milk 1.25 x 4"))

			Expect(result.TotalAmount).To(BeZero())
			Expect(result.ItemsTotal()).To(BeNumerically("~", 9.00, 0.001))
		})

		It("ignores a price with no name", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines("x 12.50"))

			Expect(result.Items).To(BeEmpty())
		})

		It("skips lines whose numbers do not parse", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines("Shop", "Pizza 1.2.3 x 1", "Soda 2.50 x 2"))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("Soda", 2.50, 2)}))
		})

		It("matches the printed total above a thousand", func() {
			result = receiptparse.Parse(receiptparse.StrategyRegex, lines("Electronics", "Television 1,199.00 x 1", "Cable 17.50 x 2", "Total: $1,234.00"))

			Expect(result.TotalAmount).To(BeNumerically("~", 1234.00, 0.001))
			Expect(result.ItemsTotal()).To(BeNumerically("~", result.TotalAmount, 0.001))
		})

		It("parses a text block split on newlines", func() {
			result = receiptparse.ParseText(receiptparse.StrategyRegex, "Aldi\r\n18/02/2025\nEggs 3.10 x 1\n")

			Expect(result.StoreName).To(Equal("Aldi"))
			Expect(result.Date).To(Equal("18/02/2025"))
			Expect(result.Items).To(Equal([]models.ParsedItem{item("Eggs", 3.10, 1)}))
		})
	})

	Describe("cursor strategy", func() {
		var result *models.ParsedReceipt

		It("pairs a price line with the name line after it and stops at the total", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines("3.50 x", "Apple", "Total", "Pear"))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("Apple", 3.50, 1)}))
			Expect(result.TotalAmount).To(BeNumerically("~", 3.50, 0.001))
			Expect(result.Strategy).To(Equal("cursor"))
		})

		It("keeps a price with no name as an unnamed item", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines("x 12.50"))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("", 12.50, 1)}))
		})

		It("ignores header lines before the first price", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines(
				"Mega Image", "Str. Lunga 4", "1 x 4.20", "Paine", "2 x 1.10", "Lapte",
			))

			Expect(result.StoreName).To(Equal("Mega Image"))
			Expect(result.Items).To(Equal([]models.ParsedItem{
				item("Paine", 4.20, 1),
				item("Lapte", 1.10, 2),
			}))
			Expect(result.TotalAmount).To(BeNumerically("~", 6.40, 0.001))
		})

		It("fills a price into a name that arrived first", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines("1.00 x", "Bread", "Milk", "2.00 x"))

			Expect(result.Items).To(Equal([]models.ParsedItem{
				item("Bread", 1.00, 1),
				item("Milk", 2.00, 1),
			}))
		})

		It("skips currency units, discounts and lines starting with a digit", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines(
				"1 x 5.00", "lei", "DISCOUNT", "5901234123457", "Cafea",
			))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("Cafea", 5.00, 1)}))
		})

		It("does not turn a negative amount into an item", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines("Shop", "x -3.00", "Refund", "2.50 x", "Bread"))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("Bread", 2.50, 1)}))
			Expect(result.TotalAmount).To(BeNumerically("~", 2.50, 0.001))
		})

		It("stops at a line with an asterisk", func() {
			result = receiptparse.Parse(receiptparse.StrategyCursor, lines("1 x 2.00", "Tea", "*****", "1 x 9.00", "Cake"))

			Expect(result.Items).To(Equal([]models.ParsedItem{item("Tea", 2.00, 1)}))
		})
	})

	Describe("layout strategy", func() {
		It("pairs prices with the text to their left and folds discounts", func() {
			result := receiptparse.Parse(receiptparse.StrategyLayout, []receiptparse.Line{
				boxed("Corner Shop", 10, 10, 200, 20),
				boxed("2025-02-18", 10, 40, 100, 20),
				boxed("Bread", 10, 100, 80, 20),
				boxed("2.50", 300, 100, 50, 20),
				boxed("Milk", 10, 130, 80, 20),
				boxed("1.20", 300, 130, 50, 20),
				boxed("Coupon", 10, 160, 80, 20),
				boxed("-0.20", 300, 160, 50, 20),
				boxed("TOTAL", 10, 200, 80, 20),
				boxed("3.50", 300, 200, 50, 20),
				boxed("CARD", 10, 230, 80, 20),
				boxed("3.50", 300, 230, 50, 20),
			})

			Expect(result.StoreName).To(Equal("Corner Shop"))
			Expect(result.Date).To(Equal("2025-02-18"))
			Expect(result.Items).To(Equal([]models.ParsedItem{
				item("Bread", 2.50, 1),
				item("Milk", 1.00, 1),
			}))
			Expect(result.TotalAmount).To(BeNumerically("~", 3.50, 0.001))
		})

		It("uses line order when there is no geometry", func() {
			result := receiptparse.ParseText(receiptparse.StrategyLayout, "Shop\nBread\n2.50\nMilk\n1.20\nTotal\n3.70")

			Expect(result.Items).To(Equal([]models.ParsedItem{
				item("Bread", 2.50, 1),
				item("Milk", 1.20, 1),
			}))
			Expect(result.TotalAmount).To(BeNumerically("~", 3.70, 0.001))
		})
	})

	Describe("degenerate input", func() {
		for _, strategy := range allStrategies {
			strategy := strategy

			It("returns defaults for empty input with "+string(strategy), func() {
				result := receiptparse.Parse(strategy, nil)

				Expect(result).NotTo(BeNil())
				Expect(result.StoreName).To(Equal(receiptparse.UnknownStore))
				Expect(result.Date).To(Equal(receiptparse.UnknownDate))
				Expect(result.Items).NotTo(BeNil())
				Expect(result.Items).To(BeEmpty())
				Expect(result.TotalAmount).To(BeZero())
			})

			It("never fails and is idempotent with "+string(strategy), func() {
				inputs := [][]string{
					{""},
					{"   ", "\t"},
					{"*", "x", "X x X"},
					{"Total: $", "Amount:", "$$$ x x x"},
					{"ÿþ€€€", "日本語 1.00 x 1", "-", "–—"},
					{strings.Repeat("9", 400) + " x " + strings.Repeat("9", 400)},
					{"1e9 x 1", "NaN x 2", "Inf 1.00 x 99999999999999999999"},
				}
				for _, input := range inputs {
					first := receiptparse.Parse(strategy, lines(input...))
					second := receiptparse.Parse(strategy, lines(input...))

					Expect(first.StoreName).NotTo(BeEmpty())
					Expect(first.Date).NotTo(BeEmpty())
					Expect(first.Items).NotTo(BeNil())
					Expect(second).To(Equal(first))
				}
			})
		}
	})
})

var _ = Describe("ParseStrategy", func() {
	It("defaults to the regex strategy", func() {
		Expect(receiptparse.ParseStrategy("")).To(Equal(receiptparse.StrategyRegex))
	})

	It("accepts known names case-insensitively", func() {
		Expect(receiptparse.ParseStrategy(" Cursor ")).To(Equal(receiptparse.StrategyCursor))
	})

	It("rejects unknown names", func() {
		_, err := receiptparse.ParseStrategy("ml")
		Expect(err).To(HaveOccurred())
	})
})
