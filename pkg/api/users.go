package api

// User is a collaborator.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

type DeleteUserResponse struct{}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type AddToReceiptRequest struct {
	UserID    string `json:"userId"`
	ReceiptID string `json:"receiptId"`
}

type AddToReceiptResponse struct{}

// RemoveFromReceiptRequest removes a collaborator and their item
// assignments on the receipt.
type RemoveFromReceiptRequest struct {
	UserID    string `json:"userId"`
	ReceiptID string `json:"receiptId"`
}

type RemoveFromReceiptResponse struct{}

type AssignItemRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

type AssignItemResponse struct{}

type UnassignItemRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

type UnassignItemResponse struct{}

type ListReceiptUsersRequest struct {
	ReceiptID string `json:"receiptId"`
}

type ListReceiptUsersResponse struct {
	Users []*User `json:"users"`
}
