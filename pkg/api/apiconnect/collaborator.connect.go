package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/ryanhu021/splitr/pkg/api"
)

// CollaboratorServiceName is the fully-qualified name of the CollaboratorService service.
const CollaboratorServiceName = "splitr.v1.CollaboratorService"

// Procedure paths, as used in the HTTP route and in interceptors.
const (
	CollaboratorServiceCreateUserProcedure        = "/splitr.v1.CollaboratorService/CreateUser"
	CollaboratorServiceDeleteUserProcedure        = "/splitr.v1.CollaboratorService/DeleteUser"
	CollaboratorServiceListUsersProcedure         = "/splitr.v1.CollaboratorService/ListUsers"
	CollaboratorServiceAddToReceiptProcedure      = "/splitr.v1.CollaboratorService/AddToReceipt"
	CollaboratorServiceRemoveFromReceiptProcedure = "/splitr.v1.CollaboratorService/RemoveFromReceipt"
	CollaboratorServiceAssignItemProcedure        = "/splitr.v1.CollaboratorService/AssignItem"
	CollaboratorServiceUnassignItemProcedure      = "/splitr.v1.CollaboratorService/UnassignItem"
	CollaboratorServiceListReceiptUsersProcedure  = "/splitr.v1.CollaboratorService/ListReceiptUsers"
)

// CollaboratorServiceClient is a client for the splitr.v1.CollaboratorService service, which
// manages users and links them to receipts and items.
type CollaboratorServiceClient interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	AddToReceipt(context.Context, *connect.Request[api.AddToReceiptRequest]) (*connect.Response[api.AddToReceiptResponse], error)
	RemoveFromReceipt(context.Context, *connect.Request[api.RemoveFromReceiptRequest]) (*connect.Response[api.RemoveFromReceiptResponse], error)
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error)
	UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.UnassignItemResponse], error)
	ListReceiptUsers(context.Context, *connect.Request[api.ListReceiptUsersRequest]) (*connect.Response[api.ListReceiptUsersResponse], error)
}

// NewCollaboratorServiceClient constructs a client for the CollaboratorService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewCollaboratorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CollaboratorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &collaboratorServiceClient{
		createUser:        connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](httpClient, baseURL+CollaboratorServiceCreateUserProcedure, opts...),
		deleteUser:        connect.NewClient[api.DeleteUserRequest, api.DeleteUserResponse](httpClient, baseURL+CollaboratorServiceDeleteUserProcedure, opts...),
		listUsers:         connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+CollaboratorServiceListUsersProcedure, opts...),
		addToReceipt:      connect.NewClient[api.AddToReceiptRequest, api.AddToReceiptResponse](httpClient, baseURL+CollaboratorServiceAddToReceiptProcedure, opts...),
		removeFromReceipt: connect.NewClient[api.RemoveFromReceiptRequest, api.RemoveFromReceiptResponse](httpClient, baseURL+CollaboratorServiceRemoveFromReceiptProcedure, opts...),
		assignItem:        connect.NewClient[api.AssignItemRequest, api.AssignItemResponse](httpClient, baseURL+CollaboratorServiceAssignItemProcedure, opts...),
		unassignItem:      connect.NewClient[api.UnassignItemRequest, api.UnassignItemResponse](httpClient, baseURL+CollaboratorServiceUnassignItemProcedure, opts...),
		listReceiptUsers:  connect.NewClient[api.ListReceiptUsersRequest, api.ListReceiptUsersResponse](httpClient, baseURL+CollaboratorServiceListReceiptUsersProcedure, opts...),
	}
}

type collaboratorServiceClient struct {
	createUser        *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	deleteUser        *connect.Client[api.DeleteUserRequest, api.DeleteUserResponse]
	listUsers         *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	addToReceipt      *connect.Client[api.AddToReceiptRequest, api.AddToReceiptResponse]
	removeFromReceipt *connect.Client[api.RemoveFromReceiptRequest, api.RemoveFromReceiptResponse]
	assignItem        *connect.Client[api.AssignItemRequest, api.AssignItemResponse]
	unassignItem      *connect.Client[api.UnassignItemRequest, api.UnassignItemResponse]
	listReceiptUsers  *connect.Client[api.ListReceiptUsersRequest, api.ListReceiptUsersResponse]
}

func (c *collaboratorServiceClient) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	return c.deleteUser.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) AddToReceipt(ctx context.Context, req *connect.Request[api.AddToReceiptRequest]) (*connect.Response[api.AddToReceiptResponse], error) {
	return c.addToReceipt.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) RemoveFromReceipt(ctx context.Context, req *connect.Request[api.RemoveFromReceiptRequest]) (*connect.Response[api.RemoveFromReceiptResponse], error) {
	return c.removeFromReceipt.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.UnassignItemResponse], error) {
	return c.unassignItem.CallUnary(ctx, req)
}

func (c *collaboratorServiceClient) ListReceiptUsers(ctx context.Context, req *connect.Request[api.ListReceiptUsersRequest]) (*connect.Response[api.ListReceiptUsersResponse], error) {
	return c.listReceiptUsers.CallUnary(ctx, req)
}

// CollaboratorServiceHandler is an implementation of the splitr.v1.CollaboratorService service.
type CollaboratorServiceHandler interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	AddToReceipt(context.Context, *connect.Request[api.AddToReceiptRequest]) (*connect.Response[api.AddToReceiptResponse], error)
	RemoveFromReceipt(context.Context, *connect.Request[api.RemoveFromReceiptRequest]) (*connect.Response[api.RemoveFromReceiptResponse], error)
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error)
	UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.UnassignItemResponse], error)
	ListReceiptUsers(context.Context, *connect.Request[api.ListReceiptUsersRequest]) (*connect.Response[api.ListReceiptUsersResponse], error)
}

// NewCollaboratorServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCollaboratorServiceHandler(svc CollaboratorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	createUserHandler := connect.NewUnaryHandler(CollaboratorServiceCreateUserProcedure, svc.CreateUser, opts...)
	deleteUserHandler := connect.NewUnaryHandler(CollaboratorServiceDeleteUserProcedure, svc.DeleteUser, opts...)
	listUsersHandler := connect.NewUnaryHandler(CollaboratorServiceListUsersProcedure, svc.ListUsers, opts...)
	addToReceiptHandler := connect.NewUnaryHandler(CollaboratorServiceAddToReceiptProcedure, svc.AddToReceipt, opts...)
	removeFromReceiptHandler := connect.NewUnaryHandler(CollaboratorServiceRemoveFromReceiptProcedure, svc.RemoveFromReceipt, opts...)
	assignItemHandler := connect.NewUnaryHandler(CollaboratorServiceAssignItemProcedure, svc.AssignItem, opts...)
	unassignItemHandler := connect.NewUnaryHandler(CollaboratorServiceUnassignItemProcedure, svc.UnassignItem, opts...)
	listReceiptUsersHandler := connect.NewUnaryHandler(CollaboratorServiceListReceiptUsersProcedure, svc.ListReceiptUsers, opts...)
	return "/splitr.v1.CollaboratorService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CollaboratorServiceCreateUserProcedure:
			createUserHandler.ServeHTTP(w, r)
		case CollaboratorServiceDeleteUserProcedure:
			deleteUserHandler.ServeHTTP(w, r)
		case CollaboratorServiceListUsersProcedure:
			listUsersHandler.ServeHTTP(w, r)
		case CollaboratorServiceAddToReceiptProcedure:
			addToReceiptHandler.ServeHTTP(w, r)
		case CollaboratorServiceRemoveFromReceiptProcedure:
			removeFromReceiptHandler.ServeHTTP(w, r)
		case CollaboratorServiceAssignItemProcedure:
			assignItemHandler.ServeHTTP(w, r)
		case CollaboratorServiceUnassignItemProcedure:
			unassignItemHandler.ServeHTTP(w, r)
		case CollaboratorServiceListReceiptUsersProcedure:
			listReceiptUsersHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedCollaboratorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCollaboratorServiceHandler struct{}

func (UnimplementedCollaboratorServiceHandler) CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.CreateUser is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.DeleteUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.DeleteUser is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.ListUsers is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) AddToReceipt(context.Context, *connect.Request[api.AddToReceiptRequest]) (*connect.Response[api.AddToReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.AddToReceipt is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) RemoveFromReceipt(context.Context, *connect.Request[api.RemoveFromReceiptRequest]) (*connect.Response[api.RemoveFromReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.RemoveFromReceipt is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.AssignItem is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) UnassignItem(context.Context, *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.UnassignItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.UnassignItem is not implemented"))
}

func (UnimplementedCollaboratorServiceHandler) ListReceiptUsers(context.Context, *connect.Request[api.ListReceiptUsersRequest]) (*connect.Response[api.ListReceiptUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.CollaboratorService.ListReceiptUsers is not implemented"))
}
