package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/ryanhu021/splitr/internal/calculator"
	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scan"
	"github.com/ryanhu021/splitr/internal/storage"
	"github.com/ryanhu021/splitr/pkg/api"
	"github.com/ryanhu021/splitr/pkg/api/apiconnect"
)

// maxFrameBytes bounds uploaded receipt frames.
const maxFrameBytes = 20 << 20

// ReceiptService implements the Connect ReceiptService
type ReceiptService struct {
	apiconnect.UnimplementedReceiptServiceHandler
	store   storage.Store
	scanner *scan.Processor
	texts   *scan.Processor
}

// NewReceiptService creates a ReceiptService. Image frames go through
// scanner; text frames and ParseText always use the plain-text recognizer.
func NewReceiptService(store storage.Store, scanner *scan.Processor) *ReceiptService {
	return &ReceiptService{
		store:   store,
		scanner: scanner,
		texts:   scanner.WithRecognizer(recognition.Text{}),
	}
}

// ScanReceipt recognizes, parses and stores an uploaded frame.
func (s *ReceiptService) ScanReceipt(ctx context.Context, req *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	slog.Info("ScanReceipt request received",
		"content_type", req.Msg.ContentType,
		"bytes", len(req.Msg.Image),
		"strategy", req.Msg.Strategy,
	)

	if len(req.Msg.Image) == 0 {
		return nil, invalidArgument("image is required")
	}
	if len(req.Msg.Image) > maxFrameBytes {
		return nil, invalidArgument("image is larger than %d bytes", maxFrameBytes)
	}
	strategy, cerr := parseStrategy(req.Msg.Strategy)
	if cerr != nil {
		return nil, cerr
	}

	frame := recognition.BytesFrame(req.Msg.Image, req.Msg.ContentType)
	processor := s.scanner
	if frame.IsText() {
		processor = s.texts
	}

	result, err := processor.Process(ctx, frame, strategy)
	if err != nil {
		var partial *scan.PartialSaveError
		if errors.As(err, &partial) {
			slog.Error("ScanReceipt saved receipt without items", "receipt_id", partial.ReceiptID, "error", partial.Err)
		} else {
			slog.Error("ScanReceipt failed", "error", err)
		}
		return nil, toConnectError(err)
	}

	slog.Info("Receipt scanned",
		"receipt_id", result.Saved.Receipt.ID,
		"strategy", result.Parsed.Strategy,
		"items", len(result.Saved.Items),
	)

	return connect.NewResponse(&api.ScanReceiptResponse{
		Parsed:  ToAPIParsed(result.Parsed),
		Receipt: toAPIReceipt(result.Saved),
	}), nil
}

// ParseText parses pasted receipt text and optionally stores it.
func (s *ReceiptService) ParseText(ctx context.Context, req *connect.Request[api.ParseTextRequest]) (*connect.Response[api.ParseTextResponse], error) {
	slog.Info("ParseText request received",
		"chars", len(req.Msg.Text),
		"strategy", req.Msg.Strategy,
		"save", req.Msg.Save,
	)

	if len(req.Msg.Text) > maxFrameBytes {
		return nil, invalidArgument("text is larger than %d bytes", maxFrameBytes)
	}
	strategy, cerr := parseStrategy(req.Msg.Strategy)
	if cerr != nil {
		return nil, cerr
	}

	frame := recognition.BytesFrame([]byte(req.Msg.Text), "text/plain")
	if !req.Msg.Save {
		parsed, err := s.texts.Preview(ctx, frame, strategy)
		if err != nil {
			slog.Error("ParseText failed", "error", err)
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&api.ParseTextResponse{Parsed: ToAPIParsed(parsed)}), nil
	}

	result, err := s.texts.Process(ctx, frame, strategy)
	if err != nil {
		slog.Error("ParseText failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Receipt saved from text", "receipt_id", result.Saved.Receipt.ID)

	return connect.NewResponse(&api.ParseTextResponse{
		Parsed:  ToAPIParsed(result.Parsed),
		Receipt: toAPIReceipt(result.Saved),
	}), nil
}

// ReparseReceipt parses a stored receipt's archived lines again, replacing
// its items.
func (s *ReceiptService) ReparseReceipt(ctx context.Context, req *connect.Request[api.ReparseReceiptRequest]) (*connect.Response[api.ReparseReceiptResponse], error) {
	slog.Info("ReparseReceipt request received", "receipt_id", req.Msg.ReceiptID, "strategy", req.Msg.Strategy)

	if req.Msg.ReceiptID == "" {
		return nil, invalidArgument("receipt_id is required")
	}
	strategy, cerr := parseStrategy(req.Msg.Strategy)
	if cerr != nil {
		return nil, cerr
	}

	result, err := s.scanner.Reparse(ctx, req.Msg.ReceiptID, strategy)
	if err != nil {
		slog.Error("ReparseReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ReparseReceiptResponse{
		Parsed:  ToAPIParsed(result.Parsed),
		Receipt: toAPIReceipt(result.Saved),
	}), nil
}

// GetReceipt retrieves a receipt by ID, optionally with each item's contributors.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	slog.Info("GetReceipt request received", "receipt_id", req.Msg.ReceiptID)

	if req.Msg.IncludeUsers {
		receipt, err := s.store.GetReceiptWithItemsAndUsers(ctx, req.Msg.ReceiptID)
		if err != nil {
			slog.Error("GetReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&api.GetReceiptResponse{Receipt: toAPIReceiptWithUsers(receipt)}), nil
	}

	receipt, err := s.store.GetReceiptWithItems(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("GetReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetReceiptResponse{Receipt: toAPIReceipt(receipt)}), nil
}

// ListReceipts returns every receipt, newest date first.
func (s *ReceiptService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	receipts, err := s.store.ListReceipts(ctx)
	if err != nil {
		slog.Error("ListReceipts failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Receipt, len(receipts))
	for i, r := range receipts {
		out[i] = toAPIReceipt(r)
	}
	slog.Debug("Listed receipts", "count", len(out))

	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: out}), nil
}

// UpdateReceipt renames a receipt or changes its date.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	slog.Info("UpdateReceipt request received", "receipt_id", req.Msg.ReceiptID)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}

	receipt := &models.Receipt{ID: req.Msg.ReceiptID, Name: name, Date: strings.TrimSpace(req.Msg.Date)}
	if err := s.store.UpdateReceipt(ctx, receipt); err != nil {
		slog.Error("UpdateReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetReceiptWithItems(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateReceiptResponse{Receipt: toAPIReceipt(updated)}), nil
}

// DeleteReceipt removes a receipt, its items, their assignments and its
// archived scan.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	slog.Info("DeleteReceipt request received", "receipt_id", req.Msg.ReceiptID)

	if err := s.store.DeleteReceipt(ctx, req.Msg.ReceiptID); err != nil {
		slog.Error("DeleteReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}
	s.scanner.Forget(req.Msg.ReceiptID)

	slog.Info("Receipt deleted", "receipt_id", req.Msg.ReceiptID)
	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}

// UpdateItem edits one item; the receipt total follows.
func (s *ReceiptService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	slog.Info("UpdateItem request received",
		"item_id", req.Msg.ItemID,
		"price", req.Msg.Price,
		"quantity", req.Msg.Quantity,
	)

	if req.Msg.Price < 0 {
		return nil, invalidArgument("price must not be negative")
	}
	if req.Msg.Quantity < 1 {
		return nil, invalidArgument("quantity must be at least 1")
	}

	item := &models.Item{
		ID:       req.Msg.ItemID,
		Name:     strings.TrimSpace(req.Msg.Name),
		Price:    req.Msg.Price,
		Quantity: req.Msg.Quantity,
	}
	if err := s.store.UpdateItem(ctx, item); err != nil {
		slog.Error("UpdateItem failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}

	receipt, err := s.store.GetReceiptWithItems(ctx, item.ReceiptID)
	if err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Item updated", "item_id", item.ID, "receipt_total", receipt.Receipt.TotalAmount)

	return connect.NewResponse(&api.UpdateItemResponse{
		Item:         toAPIItem(item, nil),
		ReceiptTotal: receipt.Receipt.TotalAmount,
	}), nil
}

// DeleteItem removes an item and its assignments.
func (s *ReceiptService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	slog.Info("DeleteItem request received", "item_id", req.Msg.ItemID)

	if err := s.store.DeleteItem(ctx, req.Msg.ItemID); err != nil {
		slog.Error("DeleteItem failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// GetBreakdown computes what each contributor owes on a receipt.
func (s *ReceiptService) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	slog.Info("GetBreakdown request received", "receipt_id", req.Msg.ReceiptID)

	receipt, err := s.store.GetReceiptWithItemsAndUsers(ctx, req.Msg.ReceiptID)
	if err != nil {
		slog.Error("GetBreakdown failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, toConnectError(err)
	}

	names := make(map[string]string)
	items := make([]calculator.Item, len(receipt.ItemsWithUsers))
	for i, iu := range receipt.ItemsWithUsers {
		contributors := make([]string, len(iu.Users))
		for j, u := range iu.Users {
			contributors[j] = u.ID
			names[u.ID] = u.Name
		}
		items[i] = calculator.Item{
			ID:           iu.Item.ID,
			Name:         iu.Item.Name,
			Price:        iu.Item.Price,
			Quantity:     iu.Item.Quantity,
			Contributors: contributors,
		}
	}

	breakdown := calculator.CalculateShares(items)

	resp := &api.GetBreakdownResponse{
		ReceiptID:         receipt.Receipt.ID,
		Shares:            make([]*api.Share, len(breakdown.Shares)),
		Unassigned:        breakdown.Unassigned,
		UnassignedItemIDs: breakdown.UnassignedItems,
		Total:             breakdown.Total,
	}
	for i, share := range breakdown.Shares {
		out := &api.Share{
			UserID:   share.UserID,
			UserName: names[share.UserID],
			Amount:   share.Amount,
			Items:    make([]*api.ItemShare, len(share.Items)),
		}
		for j, is := range share.Items {
			out.Items[j] = &api.ItemShare{ItemID: is.ItemID, Name: is.Name, Amount: is.Amount}
		}
		resp.Shares[i] = out
	}

	slog.Debug("Breakdown computed",
		"receipt_id", receipt.Receipt.ID,
		"shares", len(resp.Shares),
		"unassigned", resp.Unassigned,
	)
	return connect.NewResponse(resp), nil
}
