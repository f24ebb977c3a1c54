package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateShares(t *testing.T) {
	tests := []struct {
		name           string
		items          []Item
		wantShares     map[string]float64
		wantUnassigned float64
		wantTotal      float64
	}{
		{
			name: "shared and single-contributor items",
			items: []Item{
				{ID: "pizza", Name: "Pizza", Price: 12.00, Quantity: 1, Contributors: []string{"u1", "u2"}},
				{ID: "soda", Name: "Soda", Price: 3.00, Quantity: 1, Contributors: []string{"u1"}},
			},
			wantShares: map[string]float64{"u1": 9.00, "u2": 6.00},
			wantTotal:  15.00,
		},
		{
			name: "quantity multiplies the unit price",
			items: []Item{
				{ID: "soda", Name: "Soda", Price: 2.50, Quantity: 2, Contributors: []string{"u1", "u2"}},
			},
			wantShares: map[string]float64{"u1": 2.50, "u2": 2.50},
			wantTotal:  5.00,
		},
		{
			name: "items without contributors are unassigned",
			items: []Item{
				{ID: "bread", Name: "Bread", Price: 4.00, Quantity: 1, Contributors: []string{"u1"}},
				{ID: "milk", Name: "Milk", Price: 1.20, Quantity: 3},
			},
			wantShares:     map[string]float64{"u1": 4.00},
			wantUnassigned: 3.60,
			wantTotal:      7.60,
		},
		{
			name: "thirds are rounded once per user",
			items: []Item{
				{ID: "a", Name: "A", Price: 1.00, Quantity: 1, Contributors: []string{"u1", "u2", "u3"}},
				{ID: "b", Name: "B", Price: 1.00, Quantity: 1, Contributors: []string{"u1", "u2", "u3"}},
			},
			wantShares: map[string]float64{"u1": 0.67, "u2": 0.67, "u3": 0.67},
			wantTotal:  2.00,
		},
		{
			name: "duplicate contributors count once",
			items: []Item{
				{ID: "a", Name: "A", Price: 10.00, Quantity: 1, Contributors: []string{"u1", "u1", "u2"}},
			},
			wantShares: map[string]float64{"u1": 5.00, "u2": 5.00},
			wantTotal:  10.00,
		},
		{
			name:       "no items",
			wantShares: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := CalculateShares(tt.items)
			require.NotNil(t, breakdown)

			got := make(map[string]float64, len(breakdown.Shares))
			for _, s := range breakdown.Shares {
				got[s.UserID] = s.Amount
			}
			assert.InDeltaMapValues(t, tt.wantShares, got, 0.001)
			assert.Len(t, got, len(tt.wantShares))
			assert.InDelta(t, tt.wantUnassigned, breakdown.Unassigned, 0.001)
			assert.InDelta(t, tt.wantTotal, breakdown.Total, 0.001)
		})
	}
}

func TestCalculateSharesExactSplitSumsToAssigned(t *testing.T) {
	items := []Item{
		{ID: "a", Price: 7.50, Quantity: 2, Contributors: []string{"u1", "u2", "u3"}},
		{ID: "b", Price: 4.20, Quantity: 1, Contributors: []string{"u2"}},
		{ID: "c", Price: 0.99, Quantity: 4},
	}

	breakdown := CalculateShares(items)

	sum := 0.0
	for _, s := range breakdown.Shares {
		sum += s.Amount
	}
	assert.InDelta(t, 19.20, sum, 0.001)
	assert.InDelta(t, breakdown.Total, sum+breakdown.Unassigned, 0.001)
	assert.Equal(t, []string{"c"}, breakdown.UnassignedItems)
}

func TestCalculateSharesPerItemDetail(t *testing.T) {
	breakdown := CalculateShares([]Item{
		{ID: "pizza", Name: "Pizza", Price: 12.00, Quantity: 1, Contributors: []string{"u2", "u1"}},
		{ID: "soda", Name: "Soda", Price: 3.00, Quantity: 1, Contributors: []string{"u1"}},
	})

	require.Len(t, breakdown.Shares, 2)
	assert.Equal(t, "u1", breakdown.Shares[0].UserID)
	assert.Equal(t, []ItemShare{
		{ItemID: "pizza", Name: "Pizza", Amount: 6.00},
		{ItemID: "soda", Name: "Soda", Amount: 3.00},
	}, breakdown.Shares[0].Items)
	assert.InDelta(t, 9.00, breakdown.ShareOf("u1"), 0.001)
	assert.InDelta(t, 6.00, breakdown.ShareOf("u2"), 0.001)
	assert.Zero(t, breakdown.ShareOf("nobody"))
}
