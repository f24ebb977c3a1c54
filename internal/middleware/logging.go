package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// Request messages that name a receipt, item, user or parser strategy.
type (
	receiptRequest  interface{ GetReceiptID() string }
	itemRequest     interface{ GetItemID() string }
	userRequest     interface{ GetUserID() string }
	strategyRequest interface{ GetStrategy() string }
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, duration and the receipt, item and user it targets. Failed
// calls also carry the Connect code and the peer address.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := append([]any{
				"procedure", req.Spec().Procedure,
				"duration_ms", time.Since(start).Milliseconds(),
			}, targetAttrs(req.Any())...)

			if err == nil {
				slog.Info("RPC ok", attrs...)
				return resp, nil
			}

			attrs = append(attrs, "peer", req.Peer().Addr)
			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				slog.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			} else {
				slog.Error("RPC failed", append(attrs, "code", connect.CodeOf(err), "error", err)...)
			}
			return resp, err
		}
	}
}

// targetAttrs returns the non-empty record IDs and strategy named by msg.
func targetAttrs(msg any) []any {
	var attrs []any
	if r, ok := msg.(receiptRequest); ok && r.GetReceiptID() != "" {
		attrs = append(attrs, "receipt_id", r.GetReceiptID())
	}
	if r, ok := msg.(itemRequest); ok && r.GetItemID() != "" {
		attrs = append(attrs, "item_id", r.GetItemID())
	}
	if r, ok := msg.(userRequest); ok && r.GetUserID() != "" {
		attrs = append(attrs, "user_id", r.GetUserID())
	}
	if r, ok := msg.(strategyRequest); ok && r.GetStrategy() != "" {
		attrs = append(attrs, "strategy", r.GetStrategy())
	}
	return attrs
}
