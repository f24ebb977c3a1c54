package models

// User represents a collaborator who can be linked to receipts and items.
// Users have their own lifecycle and are not owned by any receipt.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}
