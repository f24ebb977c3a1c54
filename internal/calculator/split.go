package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Item is one receipt line and the users splitting it.
type Item struct {
	ID           string
	Name         string
	Price        float64
	Quantity     int
	Contributors []string
}

// Cost returns price × quantity.
func (i Item) Cost() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemShare is one user's part of one item, rounded for display.
type ItemShare struct {
	ItemID string
	Name   string
	Amount float64
}

// Share is the amount one user owes.
type Share struct {
	UserID string
	Amount float64
	Items  []ItemShare
}

// Breakdown is the result of splitting a receipt.
type Breakdown struct {
	// Shares is sorted by user ID.
	Shares []Share

	// Unassigned is the cost of items nobody contributes to.
	Unassigned      float64
	UnassignedItems []string

	// Total is the cost of every item, assigned or not.
	Total float64
}

// ShareOf returns the amount owed by userID, zero if they owe nothing.
func (b *Breakdown) ShareOf(userID string) float64 {
	for _, s := range b.Shares {
		if s.UserID == userID {
			return s.Amount
		}
	}
	return 0
}

// CalculateShares divides each item's cost evenly among its distinct
// contributors. Amounts are accumulated exactly and each user's total is
// rounded to cents once, at the end.
func CalculateShares(items []Item) *Breakdown {
	totals := make(map[string]decimal.Decimal)
	perItem := make(map[string][]ItemShare)
	unassigned := decimal.Zero
	total := decimal.Zero
	breakdown := &Breakdown{UnassignedItems: []string{}}

	for _, item := range items {
		cost := item.Cost()
		total = total.Add(cost)

		contributors := distinct(item.Contributors)
		if len(contributors) == 0 {
			unassigned = unassigned.Add(cost)
			breakdown.UnassignedItems = append(breakdown.UnassignedItems, item.ID)
			continue
		}

		each := cost.Div(decimal.NewFromInt(int64(len(contributors))))
		for _, userID := range contributors {
			totals[userID] = totals[userID].Add(each)
			perItem[userID] = append(perItem[userID], ItemShare{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: each.Round(2).InexactFloat64(),
			})
		}
	}

	users := make([]string, 0, len(totals))
	for userID := range totals {
		users = append(users, userID)
	}
	sort.Strings(users)

	breakdown.Shares = make([]Share, 0, len(users))
	for _, userID := range users {
		breakdown.Shares = append(breakdown.Shares, Share{
			UserID: userID,
			Amount: totals[userID].Round(2).InexactFloat64(),
			Items:  perItem[userID],
		})
	}
	breakdown.Unassigned = unassigned.Round(2).InexactFloat64()
	breakdown.Total = total.Round(2).InexactFloat64()

	return breakdown
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
