package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/storage"
)

// CreateItems inserts items into an existing receipt and recomputes the
// receipt's total in the same transaction.
func (s *SQLiteStore) CreateItems(ctx context.Context, receiptID string, items []*models.Item) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, receiptID, items); err != nil {
			return err
		}
		_, err := recomputeTotal(ctx, tx, receiptID)
		return err
	})
}

// UpdateItem changes an item's name, price and quantity and recomputes the
// owning receipt's total.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		receiptID, err := itemReceipt(ctx, tx, item.ID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE items SET name = ?, price = ?, quantity = ? WHERE id = ?",
			item.Name, item.Price, normalizeQuantity(item.Quantity), item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		item.ReceiptID = receiptID
		item.Quantity = normalizeQuantity(item.Quantity)

		_, err = recomputeTotal(ctx, tx, receiptID)
		return err
	})
}

// DeleteItem removes an item's assignments, then the item, then recomputes
// the owning receipt's total.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		receiptID, err := itemReceipt(ctx, tx, itemID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM user_items WHERE item_id = ?", itemID); err != nil {
			return fmt.Errorf("failed to delete item assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		_, err = recomputeTotal(ctx, tx, receiptID)
		return err
	})
}

// ReplaceItems drops all of a receipt's items and their assignments and
// inserts the given items in their place.
func (s *SQLiteStore) ReplaceItems(ctx context.Context, receiptID string, items []*models.Item) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM user_items WHERE item_id IN (SELECT id FROM items WHERE receipt_id = ?)", receiptID,
		); err != nil {
			return fmt.Errorf("failed to delete item assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE receipt_id = ?", receiptID); err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}

		if err := insertItems(ctx, tx, receiptID, items); err != nil {
			return err
		}
		_, err := recomputeTotal(ctx, tx, receiptID)
		return err
	})
}

// RecomputeTotal recalculates a receipt's total from its items.
func (s *SQLiteStore) RecomputeTotal(ctx context.Context, receiptID string) (float64, error) {
	var total float64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}
		var err error
		total, err = recomputeTotal(ctx, tx, receiptID)
		return err
	})
	return total, err
}

func insertItems(ctx context.Context, tx *sql.Tx, receiptID string, items []*models.Item) error {
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ReceiptID = receiptID
		item.Quantity = normalizeQuantity(item.Quantity)

		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, receipt_id, name, price, quantity) VALUES (?, ?, ?, ?, ?)",
			item.ID, receiptID, item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}
	return nil
}

// recomputeTotal sets total_amount from the item rows visible to tx.
func recomputeTotal(ctx context.Context, tx *sql.Tx, receiptID string) (float64, error) {
	_, err := tx.ExecContext(ctx, `
		UPDATE receipts
		SET total_amount = (
			SELECT ROUND(COALESCE(SUM(price * quantity), 0), 2) FROM items WHERE receipt_id = ?
		)
		WHERE id = ?
	`, receiptID, receiptID)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute total: %w", err)
	}

	var total float64
	if err := tx.QueryRowContext(ctx, "SELECT total_amount FROM receipts WHERE id = ?", receiptID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to read total: %w", err)
	}
	return total, nil
}

func itemReceipt(ctx context.Context, q queryer, itemID string) (string, error) {
	var receiptID string
	err := q.QueryRowContext(ctx, "SELECT receipt_id FROM items WHERE id = ?", itemID).Scan(&receiptID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up item: %w", err)
	}
	return receiptID, nil
}

func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
