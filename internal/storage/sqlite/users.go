package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ryanhu021/splitr/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)",
		user.ID, user.Name, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// DeleteUser removes the user's item assignments, then their receipt links,
// then the user. Items and receipts survive.
func (s *SQLiteStore) DeleteUser(ctx context.Context, userID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "users", userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM user_items WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete user items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM user_receipts WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete user receipts: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// ListUsers returns all users ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.queryUsers(ctx, "SELECT id, name, created_at FROM users ORDER BY name, id")
}

// ListReceiptUsers returns the collaborators linked to a receipt.
func (s *SQLiteStore) ListReceiptUsers(ctx context.Context, receiptID string) ([]*models.User, error) {
	if err := exists(ctx, s.db, "receipts", receiptID); err != nil {
		return nil, err
	}
	return s.queryUsers(ctx, `
		SELECT u.id, u.name, u.created_at
		FROM users u
		JOIN user_receipts ur ON ur.user_id = u.id
		WHERE ur.receipt_id = ?
		ORDER BY u.name, u.id
	`, receiptID)
}

func (s *SQLiteStore) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
