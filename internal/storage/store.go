// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ryanhu021/splitr/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for receipt, item and collaborator storage.
// Every mutation that touches more than one table runs in one transaction,
// and a receipt's TotalAmount is recomputed from its items in the same
// transaction as any item change.
type Store interface {
	// CreateReceipt persists a new receipt. receipt.ID and receipt.CreatedAt
	// are populated by the store when empty.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// UpdateReceipt changes a receipt's name and date. The total is derived
	// and cannot be set.
	UpdateReceipt(ctx context.Context, receipt *models.Receipt) error

	// DeleteReceipt removes a receipt together with its items, the item
	// assignments of those items and its collaborator links.
	DeleteReceipt(ctx context.Context, receiptID string) error

	GetReceiptWithItems(ctx context.Context, receiptID string) (*models.ReceiptWithItems, error)
	GetReceiptWithItemsAndUsers(ctx context.Context, receiptID string) (*models.ReceiptWithItemsAndUsers, error)

	// ListReceipts returns every receipt with its items, newest date first.
	ListReceipts(ctx context.Context) ([]*models.ReceiptWithItems, error)

	// CreateItems inserts items into an existing receipt and recomputes its
	// total. Item IDs are populated by the store.
	CreateItems(ctx context.Context, receiptID string, items []*models.Item) error

	// UpdateItem changes an item's name, price and quantity.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item and its assignments.
	DeleteItem(ctx context.Context, itemID string) error

	// ReplaceItems swaps all of a receipt's items for new ones, dropping
	// the old items' assignments.
	ReplaceItems(ctx context.Context, receiptID string, items []*models.Item) error

	// RecomputeTotal recalculates and stores a receipt's total.
	RecomputeTotal(ctx context.Context, receiptID string) (float64, error)

	CreateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user's item assignments, then their receipt
	// links, then the user. Items and receipts are left untouched.
	DeleteUser(ctx context.Context, userID string) error

	ListUsers(ctx context.Context) ([]*models.User, error)

	AddUserToItem(ctx context.Context, userID, itemID string) error
	RemoveUserFromItem(ctx context.Context, userID, itemID string) error
	AddUserToReceipt(ctx context.Context, userID, receiptID string) error
	RemoveUserFromReceipt(ctx context.Context, userID, receiptID string) error
	ListReceiptUsers(ctx context.Context, receiptID string) ([]*models.User, error)

	// RemoveCollaborator drops a user's assignments on the receipt's items,
	// then their link to the receipt.
	RemoveCollaborator(ctx context.Context, userID, receiptID string) error

	// Close releases any resources held by the store.
	Close() error
}
