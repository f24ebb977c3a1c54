// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// Pragmas are applied by the driver to every connection it opens.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serializes writers; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// inTx runs fn in a transaction, committing when it returns nil.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// exists reports an ErrNotFound-wrapped error when id is missing from table.
// table is always one of the package's own table names.
func exists(ctx context.Context, q queryer, table, id string) error {
	var found int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", singular(table), id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", singular(table), err)
	}
	return nil
}

func singular(table string) string {
	switch table {
	case "receipts":
		return "receipt"
	case "items":
		return "item"
	case "users":
		return "user"
	}
	return table
}

// expectAffected turns a zero-row result into ErrNotFound.
func expectAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

// CreateReceipt persists a new receipt with a zero total. The total follows
// from the items added later.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	// Generate IDs if not set
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	receipt.TotalAmount = 0

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO receipts (id, name, date, total_amount, created_at) VALUES (?, ?, ?, 0, ?)",
		receipt.ID, receipt.Name, receipt.Date, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

// UpdateReceipt changes a receipt's name and date.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE receipts SET name = ?, date = ? WHERE id = ?",
		receipt.Name, receipt.Date, receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	return expectAffected(res, "receipt", receipt.ID)
}

// DeleteReceipt removes a receipt, its items, their assignments and the
// receipt's collaborator links, in that order.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "receipts", receiptID); err != nil {
			return err
		}

		steps := []struct {
			what  string
			query string
		}{
			{"item assignments", "DELETE FROM user_items WHERE item_id IN (SELECT id FROM items WHERE receipt_id = ?)"},
			{"items", "DELETE FROM items WHERE receipt_id = ?"},
			{"collaborators", "DELETE FROM user_receipts WHERE receipt_id = ?"},
			{"receipt", "DELETE FROM receipts WHERE id = ?"},
		}
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step.query, receiptID); err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.what, err)
			}
		}
		return nil
	})
}

// GetReceiptWithItems retrieves a receipt and its items in insertion order.
func (s *SQLiteStore) GetReceiptWithItems(ctx context.Context, receiptID string) (*models.ReceiptWithItems, error) {
	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, receipt_id, name, price, quantity FROM items WHERE receipt_id = ? ORDER BY rowid",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	result := &models.ReceiptWithItems{Receipt: *receipt, Items: []models.Item{}}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return result, nil
}

// GetReceiptWithItemsAndUsers retrieves a receipt, its items and each
// item's contributors with one join.
func (s *SQLiteStore) GetReceiptWithItemsAndUsers(ctx context.Context, receiptID string) (*models.ReceiptWithItemsAndUsers, error) {
	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.receipt_id, i.name, i.price, i.quantity, u.id, u.name, u.created_at
		FROM items i
		LEFT JOIN user_items ui ON ui.item_id = i.id
		LEFT JOIN users u ON u.id = ui.user_id
		WHERE i.receipt_id = ?
		ORDER BY i.rowid, u.name, u.id
	`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items with users: %w", err)
	}
	defer rows.Close()

	result := &models.ReceiptWithItemsAndUsers{Receipt: *receipt, ItemsWithUsers: []models.ItemWithUsers{}}
	for rows.Next() {
		var (
			item          models.Item
			userID, name  sql.NullString
			userCreatedAt sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Price, &item.Quantity,
			&userID, &name, &userCreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		n := len(result.ItemsWithUsers)
		if n == 0 || result.ItemsWithUsers[n-1].Item.ID != item.ID {
			result.ItemsWithUsers = append(result.ItemsWithUsers, models.ItemWithUsers{Item: item, Users: []models.User{}})
			n++
		}
		if userID.Valid {
			result.ItemsWithUsers[n-1].Users = append(result.ItemsWithUsers[n-1].Users, models.User{
				ID:        userID.String,
				Name:      name.String,
				CreatedAt: userCreatedAt.Int64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return result, nil
}

// ListReceipts returns every receipt with its items, newest date first.
func (s *SQLiteStore) ListReceipts(ctx context.Context) ([]*models.ReceiptWithItems, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, date, total_amount, created_at FROM receipts ORDER BY date DESC, created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	var receipts []*models.ReceiptWithItems
	byID := make(map[string]*models.ReceiptWithItems)
	for rows.Next() {
		r := &models.ReceiptWithItems{Items: []models.Item{}}
		if err := rows.Scan(&r.Receipt.ID, &r.Receipt.Name, &r.Receipt.Date, &r.Receipt.TotalAmount, &r.Receipt.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, r)
		byID[r.Receipt.ID] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	if len(receipts) == 0 {
		return []*models.ReceiptWithItems{}, nil
	}

	// The pool has one connection, so the receipt rows are closed before
	// the items are read.
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, receipt_id, name, price, quantity FROM items ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if r, ok := byID[item.ReceiptID]; ok {
			r.Items = append(r.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return receipts, nil
}

func (s *SQLiteStore) getReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, date, total_amount, created_at FROM receipts WHERE id = ?",
		receiptID,
	).Scan(&receipt.ID, &receipt.Name, &receipt.Date, &receipt.TotalAmount, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}
