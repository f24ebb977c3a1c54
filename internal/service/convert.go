package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/receiptparse"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scan"
	"github.com/ryanhu021/splitr/internal/storage"
	"github.com/ryanhu021/splitr/pkg/api"
)

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, recognition.ErrUnsupportedFrame):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, scan.ErrNoArchive):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, scan.ErrRecognition):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func parseStrategy(name string) (receiptparse.Strategy, *connect.Error) {
	if name == "" {
		return "", nil
	}
	strategy, err := receiptparse.ParseStrategy(name)
	if err != nil {
		return "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	return strategy, nil
}

// ToAPIParsed converts a parse result to its wire form, including the sum
// of the parsed items next to the printed total.
func ToAPIParsed(p *models.ParsedReceipt) *api.ParsedReceipt {
	out := &api.ParsedReceipt{
		StoreName:   p.StoreName,
		Date:        p.Date,
		TotalAmount: p.TotalAmount,
		ItemsTotal:  p.ItemsTotal(),
		Items:       make([]*api.ParsedItem, len(p.Items)),
		Strategy:    p.Strategy,
	}
	for i, item := range p.Items {
		out.Items[i] = &api.ParsedItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity}
	}
	return out
}

func toAPIReceipt(r *models.ReceiptWithItems) *api.Receipt {
	out := receiptHeader(r.Receipt)
	for i := range r.Items {
		out.Items = append(out.Items, toAPIItem(&r.Items[i], nil))
	}
	return out
}

func toAPIReceiptWithUsers(r *models.ReceiptWithItemsAndUsers) *api.Receipt {
	out := receiptHeader(r.Receipt)
	for i := range r.ItemsWithUsers {
		iu := &r.ItemsWithUsers[i]
		item := toAPIItem(&iu.Item, iu.Users)
		if item.Contributors == nil {
			item.Contributors = []*api.User{}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func receiptHeader(r models.Receipt) *api.Receipt {
	return &api.Receipt{
		ID:          r.ID,
		Name:        r.Name,
		Date:        r.Date,
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt,
		Items:       []*api.Item{},
	}
}

func toAPIItem(item *models.Item, users []models.User) *api.Item {
	out := &api.Item{
		ID:        item.ID,
		ReceiptID: item.ReceiptID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
	}
	for i := range users {
		out.Contributors = append(out.Contributors, toAPIUser(&users[i]))
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toAPIUsers(users []*models.User) []*api.User {
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}
