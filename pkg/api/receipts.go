package api

// Receipt is a stored receipt and its items.
type Receipt struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	TotalAmount float64 `json:"totalAmount"`
	CreatedAt   int64   `json:"createdAt"`
	Items       []*Item `json:"items"`
}

// Item is one priced line of a receipt. Contributors is filled only when
// the request asked for users.
type Item struct {
	ID           string  `json:"id"`
	ReceiptID    string  `json:"receiptId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Contributors []*User `json:"contributors,omitempty"`
}

// ParsedItem is an item as read from the receipt text.
type ParsedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ParsedReceipt is the parser output before it is stored.
type ParsedReceipt struct {
	StoreName   string        `json:"storeName"`
	Date        string        `json:"date"`
	TotalAmount float64       `json:"totalAmount"`
	ItemsTotal  float64       `json:"itemsTotal"`
	Items       []*ParsedItem `json:"items"`
	Strategy    string        `json:"strategy"`
}

type ScanReceiptRequest struct {
	// Image is the raw frame; base64 in JSON.
	Image       []byte `json:"image"`
	ContentType string `json:"contentType"`
	// Strategy is "regex", "cursor" or "layout"; empty uses the server default.
	Strategy string `json:"strategy,omitempty"`
}

type ScanReceiptResponse struct {
	Parsed  *ParsedReceipt `json:"parsed"`
	Receipt *Receipt       `json:"receipt"`
}

type ParseTextRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy,omitempty"`
	// Save stores the result; otherwise the text is only parsed.
	Save bool `json:"save,omitempty"`
}

type ParseTextResponse struct {
	Parsed  *ParsedReceipt `json:"parsed"`
	Receipt *Receipt       `json:"receipt,omitempty"`
}

type ReparseReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
	Strategy  string `json:"strategy,omitempty"`
}

type ReparseReceiptResponse struct {
	Parsed  *ParsedReceipt `json:"parsed"`
	Receipt *Receipt       `json:"receipt"`
}

type GetReceiptRequest struct {
	ReceiptID    string `json:"receiptId"`
	IncludeUsers bool   `json:"includeUsers,omitempty"`
}

type GetReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
}

type UpdateReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
	Name      string `json:"name"`
	Date      string `json:"date"`
}

type UpdateReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type DeleteReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type DeleteReceiptResponse struct{}

type UpdateItemRequest struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type UpdateItemResponse struct {
	Item         *Item   `json:"item"`
	ReceiptTotal float64 `json:"receiptTotal"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct{}

type GetBreakdownRequest struct {
	ReceiptID string `json:"receiptId"`
}

// ItemShare is one user's part of one item.
type ItemShare struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Share is what one user owes on a receipt.
type Share struct {
	UserID   string       `json:"userId"`
	UserName string       `json:"userName"`
	Amount   float64      `json:"amount"`
	Items    []*ItemShare `json:"items"`
}

type GetBreakdownResponse struct {
	ReceiptID         string   `json:"receiptId"`
	Shares            []*Share `json:"shares"`
	Unassigned        float64  `json:"unassigned"`
	UnassignedItemIDs []string `json:"unassignedItemIds"`
	Total             float64  `json:"total"`
}
