// Package apiconnect holds the Connect handlers and clients of the splitr.v1
// services, written in the shape protoc-gen-connect-go produces.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/ryanhu021/splitr/pkg/api"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
const ReceiptServiceName = "splitr.v1.ReceiptService"

// Procedure paths, as used in the HTTP route and in interceptors.
const (
	ReceiptServiceScanReceiptProcedure    = "/splitr.v1.ReceiptService/ScanReceipt"
	ReceiptServiceParseTextProcedure      = "/splitr.v1.ReceiptService/ParseText"
	ReceiptServiceReparseReceiptProcedure = "/splitr.v1.ReceiptService/ReparseReceipt"
	ReceiptServiceGetReceiptProcedure     = "/splitr.v1.ReceiptService/GetReceipt"
	ReceiptServiceListReceiptsProcedure   = "/splitr.v1.ReceiptService/ListReceipts"
	ReceiptServiceUpdateReceiptProcedure  = "/splitr.v1.ReceiptService/UpdateReceipt"
	ReceiptServiceDeleteReceiptProcedure  = "/splitr.v1.ReceiptService/DeleteReceipt"
	ReceiptServiceUpdateItemProcedure     = "/splitr.v1.ReceiptService/UpdateItem"
	ReceiptServiceDeleteItemProcedure     = "/splitr.v1.ReceiptService/DeleteItem"
	ReceiptServiceGetBreakdownProcedure   = "/splitr.v1.ReceiptService/GetBreakdown"
)

// ReceiptServiceClient is a client for the splitr.v1.ReceiptService service, which
// scans, stores, edits and splits receipts.
type ReceiptServiceClient interface {
	ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error)
	ParseText(context.Context, *connect.Request[api.ParseTextRequest]) (*connect.Response[api.ParseTextResponse], error)
	ReparseReceipt(context.Context, *connect.Request[api.ReparseReceiptRequest]) (*connect.Response[api.ReparseReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error)
}

// NewReceiptServiceClient constructs a client for the ReceiptService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &receiptServiceClient{
		scanReceipt:    connect.NewClient[api.ScanReceiptRequest, api.ScanReceiptResponse](httpClient, baseURL+ReceiptServiceScanReceiptProcedure, opts...),
		parseText:      connect.NewClient[api.ParseTextRequest, api.ParseTextResponse](httpClient, baseURL+ReceiptServiceParseTextProcedure, opts...),
		reparseReceipt: connect.NewClient[api.ReparseReceiptRequest, api.ReparseReceiptResponse](httpClient, baseURL+ReceiptServiceReparseReceiptProcedure, opts...),
		getReceipt:     connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](httpClient, baseURL+ReceiptServiceGetReceiptProcedure, opts...),
		listReceipts:   connect.NewClient[api.ListReceiptsRequest, api.ListReceiptsResponse](httpClient, baseURL+ReceiptServiceListReceiptsProcedure, opts...),
		updateReceipt:  connect.NewClient[api.UpdateReceiptRequest, api.UpdateReceiptResponse](httpClient, baseURL+ReceiptServiceUpdateReceiptProcedure, opts...),
		deleteReceipt:  connect.NewClient[api.DeleteReceiptRequest, api.DeleteReceiptResponse](httpClient, baseURL+ReceiptServiceDeleteReceiptProcedure, opts...),
		updateItem:     connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+ReceiptServiceUpdateItemProcedure, opts...),
		deleteItem:     connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+ReceiptServiceDeleteItemProcedure, opts...),
		getBreakdown:   connect.NewClient[api.GetBreakdownRequest, api.GetBreakdownResponse](httpClient, baseURL+ReceiptServiceGetBreakdownProcedure, opts...),
	}
}

type receiptServiceClient struct {
	scanReceipt    *connect.Client[api.ScanReceiptRequest, api.ScanReceiptResponse]
	parseText      *connect.Client[api.ParseTextRequest, api.ParseTextResponse]
	reparseReceipt *connect.Client[api.ReparseReceiptRequest, api.ReparseReceiptResponse]
	getReceipt     *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
	listReceipts   *connect.Client[api.ListReceiptsRequest, api.ListReceiptsResponse]
	updateReceipt  *connect.Client[api.UpdateReceiptRequest, api.UpdateReceiptResponse]
	deleteReceipt  *connect.Client[api.DeleteReceiptRequest, api.DeleteReceiptResponse]
	updateItem     *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	deleteItem     *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	getBreakdown   *connect.Client[api.GetBreakdownRequest, api.GetBreakdownResponse]
}

func (c *receiptServiceClient) ScanReceipt(ctx context.Context, req *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	return c.scanReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ParseText(ctx context.Context, req *connect.Request[api.ParseTextRequest]) (*connect.Response[api.ParseTextResponse], error) {
	return c.parseText.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ReparseReceipt(ctx context.Context, req *connect.Request[api.ReparseReceiptRequest]) (*connect.Response[api.ReparseReceiptResponse], error) {
	return c.reparseReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

func (c *receiptServiceClient) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return c.updateReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	return c.getBreakdown.CallUnary(ctx, req)
}

// ReceiptServiceHandler is an implementation of the splitr.v1.ReceiptService service.
type ReceiptServiceHandler interface {
	ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error)
	ParseText(context.Context, *connect.Request[api.ParseTextRequest]) (*connect.Response[api.ParseTextResponse], error)
	ReparseReceipt(context.Context, *connect.Request[api.ReparseReceiptRequest]) (*connect.Response[api.ReparseReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	scanReceiptHandler := connect.NewUnaryHandler(ReceiptServiceScanReceiptProcedure, svc.ScanReceipt, opts...)
	parseTextHandler := connect.NewUnaryHandler(ReceiptServiceParseTextProcedure, svc.ParseText, opts...)
	reparseReceiptHandler := connect.NewUnaryHandler(ReceiptServiceReparseReceiptProcedure, svc.ReparseReceipt, opts...)
	getReceiptHandler := connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...)
	listReceiptsHandler := connect.NewUnaryHandler(ReceiptServiceListReceiptsProcedure, svc.ListReceipts, opts...)
	updateReceiptHandler := connect.NewUnaryHandler(ReceiptServiceUpdateReceiptProcedure, svc.UpdateReceipt, opts...)
	deleteReceiptHandler := connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...)
	updateItemHandler := connect.NewUnaryHandler(ReceiptServiceUpdateItemProcedure, svc.UpdateItem, opts...)
	deleteItemHandler := connect.NewUnaryHandler(ReceiptServiceDeleteItemProcedure, svc.DeleteItem, opts...)
	getBreakdownHandler := connect.NewUnaryHandler(ReceiptServiceGetBreakdownProcedure, svc.GetBreakdown, opts...)
	return "/splitr.v1.ReceiptService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReceiptServiceScanReceiptProcedure:
			scanReceiptHandler.ServeHTTP(w, r)
		case ReceiptServiceParseTextProcedure:
			parseTextHandler.ServeHTTP(w, r)
		case ReceiptServiceReparseReceiptProcedure:
			reparseReceiptHandler.ServeHTTP(w, r)
		case ReceiptServiceGetReceiptProcedure:
			getReceiptHandler.ServeHTTP(w, r)
		case ReceiptServiceListReceiptsProcedure:
			listReceiptsHandler.ServeHTTP(w, r)
		case ReceiptServiceUpdateReceiptProcedure:
			updateReceiptHandler.ServeHTTP(w, r)
		case ReceiptServiceDeleteReceiptProcedure:
			deleteReceiptHandler.ServeHTTP(w, r)
		case ReceiptServiceUpdateItemProcedure:
			updateItemHandler.ServeHTTP(w, r)
		case ReceiptServiceDeleteItemProcedure:
			deleteItemHandler.ServeHTTP(w, r)
		case ReceiptServiceGetBreakdownProcedure:
			getBreakdownHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedReceiptServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReceiptServiceHandler struct{}

func (UnimplementedReceiptServiceHandler) ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.ScanReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) ParseText(context.Context, *connect.Request[api.ParseTextRequest]) (*connect.Response[api.ParseTextResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.ParseText is not implemented"))
}

func (UnimplementedReceiptServiceHandler) ReparseReceipt(context.Context, *connect.Request[api.ReparseReceiptRequest]) (*connect.Response[api.ReparseReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.ReparseReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.GetReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.ListReceipts is not implemented"))
}

func (UnimplementedReceiptServiceHandler) UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.UpdateReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.DeleteReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.UpdateItem is not implemented"))
}

func (UnimplementedReceiptServiceHandler) DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.DeleteItem is not implemented"))
}

func (UnimplementedReceiptServiceHandler) GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitr.v1.ReceiptService.GetBreakdown is not implemented"))
}
