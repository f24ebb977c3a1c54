package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// AddUserToItem assigns an item to a user. The user also becomes a
// collaborator on the item's receipt. Assigning twice is a no-op.
func (s *SQLiteStore) AddUserToItem(ctx context.Context, userID, itemID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "users", userID); err != nil {
			return err
		}
		receiptID, err := itemReceipt(ctx, tx, itemID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_items (user_id, item_id) VALUES (?, ?)", userID, itemID,
		); err != nil {
			return fmt.Errorf("failed to add user to item: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_receipts (user_id, receipt_id) VALUES (?, ?)", userID, receiptID,
		); err != nil {
			return fmt.Errorf("failed to add user to receipt: %w", err)
		}
		return nil
	})
}

// RemoveUserFromItem removes one assignment.
func (s *SQLiteStore) RemoveUserFromItem(ctx context.Context, userID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_items WHERE user_id = ? AND item_id = ?", userID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove user from item: %w", err)
	}
	return expectAffected(res, "assignment", userID+"/"+itemID)
}

// AddUserToReceipt links a user to a receipt. Linking twice is a no-op.
func (s *SQLiteStore) AddUserToReceipt(ctx context.Context, userID, receiptID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "users", userID); err != nil {
			return err
		}
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_receipts (user_id, receipt_id) VALUES (?, ?)", userID, receiptID,
		); err != nil {
			return fmt.Errorf("failed to add user to receipt: %w", err)
		}
		return nil
	})
}

// RemoveUserFromReceipt removes only the receipt link. Item assignments are
// kept; use RemoveCollaborator to drop both.
func (s *SQLiteStore) RemoveUserFromReceipt(ctx context.Context, userID, receiptID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_receipts WHERE user_id = ? AND receipt_id = ?", userID, receiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove user from receipt: %w", err)
	}
	return expectAffected(res, "collaborator", userID+"/"+receiptID)
}

// RemoveCollaborator drops the user's assignments on the receipt's items,
// then the receipt link.
func (s *SQLiteStore) RemoveCollaborator(ctx context.Context, userID, receiptID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "users", userID); err != nil {
			return err
		}
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM user_items
			WHERE user_id = ? AND item_id IN (SELECT id FROM items WHERE receipt_id = ?)
		`, userID, receiptID); err != nil {
			return fmt.Errorf("failed to delete user items: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM user_receipts WHERE user_id = ? AND receipt_id = ?", userID, receiptID,
		); err != nil {
			return fmt.Errorf("failed to delete user receipt: %w", err)
		}
		return nil
	})
}
