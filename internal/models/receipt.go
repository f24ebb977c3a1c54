package models

// Receipt represents one scanned shopping transaction.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	// Assigned by the store on creation.
	ID string

	// Name is the store name, usually the first line of the receipt.
	Name string

	// Date is the purchase date as printed on the receipt.
	// It is free text and is not validated as a calendar date.
	Date string

	// TotalAmount is the sum of Price × Quantity over the receipt's items.
	// The store recomputes it whenever items change.
	TotalAmount float64

	// CreatedAt is the Unix timestamp when the receipt was stored.
	CreatedAt int64
}

// Item represents a single priced line on a receipt.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// ReceiptID is the receipt that owns this item.
	ReceiptID string

	// Name is the item description (e.g., "Pizza", "Soda").
	Name string

	// Price is the per-unit price.
	Price float64

	// Quantity is the number of units, at least 1.
	Quantity int
}

// ReceiptWithItems is a receipt joined with its items.
type ReceiptWithItems struct {
	Receipt Receipt
	Items   []Item
}

// ItemWithUsers is an item joined with the users who share its cost.
type ItemWithUsers struct {
	Item  Item
	Users []User
}

// ReceiptWithItemsAndUsers is a receipt joined with its items and each item's contributors.
type ReceiptWithItemsAndUsers struct {
	Receipt        Receipt
	ItemsWithUsers []ItemWithUsers
}
