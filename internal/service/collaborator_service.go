package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/storage"
	"github.com/ryanhu021/splitr/pkg/api"
	"github.com/ryanhu021/splitr/pkg/api/apiconnect"
)

// CollaboratorService implements the Connect CollaboratorService
type CollaboratorService struct {
	apiconnect.UnimplementedCollaboratorServiceHandler
	store storage.Store
}

// NewCollaboratorService creates a new CollaboratorService with the given storage backend.
func NewCollaboratorService(store storage.Store) *CollaboratorService {
	return &CollaboratorService{store: store}
}

// CreateUser creates a new user.
func (s *CollaboratorService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	slog.Info("CreateUser request received", "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	user := &models.User{Name: name}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("User created", "user_id", user.ID)
	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// DeleteUser removes a user and all of their links. Items and receipts are kept.
func (s *CollaboratorService) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	slog.Info("DeleteUser request received", "user_id", req.Msg.UserID)

	if err := s.store.DeleteUser(ctx, req.Msg.UserID); err != nil {
		slog.Error("DeleteUser failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("User deleted", "user_id", req.Msg.UserID)
	return connect.NewResponse(&api.DeleteUserResponse{}), nil
}

// ListUsers returns every user.
func (s *CollaboratorService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: toAPIUsers(users)}), nil
}

// AddToReceipt makes a user a collaborator on a receipt.
func (s *CollaboratorService) AddToReceipt(ctx context.Context, req *connect.Request[api.AddToReceiptRequest]) (*connect.Response[api.AddToReceiptResponse], error) {
	slog.Info("AddToReceipt request received", "user_id", req.Msg.UserID, "receipt_id", req.Msg.ReceiptID)

	if err := s.store.AddUserToReceipt(ctx, req.Msg.UserID, req.Msg.ReceiptID); err != nil {
		slog.Error("AddToReceipt failed", "user_id", req.Msg.UserID, "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddToReceiptResponse{}), nil
}

// RemoveFromReceipt removes a collaborator together with their item
// assignments on that receipt.
func (s *CollaboratorService) RemoveFromReceipt(ctx context.Context, req *connect.Request[api.RemoveFromReceiptRequest]) (*connect.Response[api.RemoveFromReceiptResponse], error) {
	slog.Info("RemoveFromReceipt request received", "user_id", req.Msg.UserID, "receipt_id", req.Msg.ReceiptID)

	if err := s.store.RemoveCollaborator(ctx, req.Msg.UserID, req.Msg.ReceiptID); err != nil {
		slog.Error("RemoveFromReceipt failed", "user_id", req.Msg.UserID, "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveFromReceiptResponse{}), nil
}

// AssignItem adds a user to the contributors of an item.
func (s *CollaboratorService) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	slog.Info("AssignItem request received", "user_id", req.Msg.UserID, "item_id", req.Msg.ItemID)

	if err := s.store.AddUserToItem(ctx, req.Msg.UserID, req.Msg.ItemID); err != nil {
		slog.Error("AssignItem failed", "user_id", req.Msg.UserID, "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AssignItemResponse{}), nil
}

// UnassignItem removes a user from the contributors of an item.
func (s *CollaboratorService) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.UnassignItemResponse], error) {
	slog.Info("UnassignItem request received", "user_id", req.Msg.UserID, "item_id", req.Msg.ItemID)

	if err := s.store.RemoveUserFromItem(ctx, req.Msg.UserID, req.Msg.ItemID); err != nil {
		slog.Error("UnassignItem failed", "user_id", req.Msg.UserID, "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UnassignItemResponse{}), nil
}

// ListReceiptUsers returns a receipt's collaborators.
func (s *CollaboratorService) ListReceiptUsers(ctx context.Context, req *connect.Request[api.ListReceiptUsersRequest]) (*connect.Response[api.ListReceiptUsersResponse], error) {
	users, err := s.store.ListReceiptUsers(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("ListReceiptUsers failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListReceiptUsersResponse{Users: toAPIUsers(users)}), nil
}
