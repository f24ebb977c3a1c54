package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanhu021/splitr/internal/models"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scan"
	"github.com/ryanhu021/splitr/internal/scanarchive"
	"github.com/ryanhu021/splitr/internal/storage/sqlite"
	"github.com/ryanhu021/splitr/pkg/api"
	"github.com/ryanhu021/splitr/pkg/api/apiconnect"
)

// setupTestServer creates a test server with both services on a fresh
// database and scan archive.
func setupTestServer(t *testing.T) (apiconnect.ReceiptServiceClient, apiconnect.CollaboratorServiceClient) {
	t.Helper()
	dir := t.TempDir()

	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err, "failed to create store")
	archive, err := scanarchive.Open(filepath.Join(dir, "scans.db"))
	require.NoError(t, err, "failed to open archive")

	scanner := scan.NewProcessor(recognition.Text{}, store, scan.WithArchive(archive))

	receiptPath, receiptHandler := apiconnect.NewReceiptServiceHandler(NewReceiptService(store, scanner))
	collaboratorPath, collaboratorHandler := apiconnect.NewCollaboratorServiceHandler(NewCollaboratorService(store))

	mux := http.NewServeMux()
	mux.Handle(receiptPath, receiptHandler)
	mux.Handle(collaboratorPath, collaboratorHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		archive.Close()
		store.Close()
	})

	return apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL),
		apiconnect.NewCollaboratorServiceClient(http.DefaultClient, server.URL)
}

func saveText(t *testing.T, client apiconnect.ReceiptServiceClient, text string) *api.Receipt {
	t.Helper()
	resp, err := client.ParseText(context.Background(), connect.NewRequest(&api.ParseTextRequest{Text: text, Save: true}))
	require.NoError(t, err)
	require.NotNil(t, resp.Msg.Receipt)
	return resp.Msg.Receipt
}

func createUser(t *testing.T, client apiconnect.CollaboratorServiceClient, name string) *api.User {
	t.Helper()
	resp, err := client.CreateUser(context.Background(), connect.NewRequest(&api.CreateUserRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.User
}

func TestParseText(t *testing.T) {
	receipts, _ := setupTestServer(t)
	ctx := context.Background()

	t.Run("parses without saving", func(t *testing.T) {
		resp, err := receipts.ParseText(ctx, connect.NewRequest(&api.ParseTextRequest{
			Text: "Costco\n2025-02-18\nPizza 12.99 x 1\nSoda 2.50 x 2\nTotal: $18.99",
		}))
		require.NoError(t, err)

		parsed := resp.Msg.Parsed
		assert.Equal(t, "Costco", parsed.StoreName)
		assert.Equal(t, "2025-02-18", parsed.Date)
		assert.InDelta(t, 18.99, parsed.TotalAmount, 0.001)
		assert.InDelta(t, 17.99, parsed.ItemsTotal, 0.001)
		require.Len(t, parsed.Items, 2)
		assert.Equal(t, &api.ParsedItem{Name: "Soda", Price: 2.50, Quantity: 2}, parsed.Items[1])
		assert.Nil(t, resp.Msg.Receipt)

		list, err := receipts.ListReceipts(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
		require.NoError(t, err)
		assert.Empty(t, list.Msg.Receipts)
	})

	t.Run("cursor strategy", func(t *testing.T) {
		resp, err := receipts.ParseText(ctx, connect.NewRequest(&api.ParseTextRequest{
			Text:     "3.50 x\nApple\nTotal",
			Strategy: "cursor",
		}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Parsed.Items, 1)
		assert.Equal(t, "Apple", resp.Msg.Parsed.Items[0].Name)
		assert.Equal(t, "cursor", resp.Msg.Parsed.Strategy)
	})

	t.Run("empty text yields defaults", func(t *testing.T) {
		resp, err := receipts.ParseText(ctx, connect.NewRequest(&api.ParseTextRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "Unknown Store", resp.Msg.Parsed.StoreName)
		assert.Equal(t, "Unknown Date", resp.Msg.Parsed.Date)
		assert.NotNil(t, resp.Msg.Parsed.Items)
		assert.Empty(t, resp.Msg.Parsed.Items)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := receipts.ParseText(ctx, connect.NewRequest(&api.ParseTextRequest{Text: "x", Strategy: "ocr"}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("saves and lists", func(t *testing.T) {
		receipt := saveText(t, receipts, "Costco\n2025-02-18\nPizza 12.99 x 1\nSoda 2.50 x 2")
		assert.NotEmpty(t, receipt.ID)
		assert.InDelta(t, 17.99, receipt.TotalAmount, 0.001)
		assert.Len(t, receipt.Items, 2)

		list, err := receipts.ListReceipts(ctx, connect.NewRequest(&api.ListReceiptsRequest{}))
		require.NoError(t, err)
		require.Len(t, list.Msg.Receipts, 1)
		assert.Equal(t, receipt.ID, list.Msg.Receipts[0].ID)
	})
}

func TestScanReceipt(t *testing.T) {
	receipts, _ := setupTestServer(t)
	ctx := context.Background()

	t.Run("text frame", func(t *testing.T) {
		resp, err := receipts.ScanReceipt(ctx, connect.NewRequest(&api.ScanReceiptRequest{
			Image:       []byte("Bakery\nBread 2.00 x 2\nMilk 1.25 x 4\nTotal: $9.00"),
			ContentType: "text/plain",
		}))
		require.NoError(t, err)
		assert.InDelta(t, 9.00, resp.Msg.Receipt.TotalAmount, 0.001)
		assert.InDelta(t, resp.Msg.Parsed.TotalAmount, resp.Msg.Parsed.ItemsTotal, 0.001)
	})

	t.Run("empty frame", func(t *testing.T) {
		_, err := receipts.ScanReceipt(ctx, connect.NewRequest(&api.ScanReceiptRequest{ContentType: "image/jpeg"}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("image the recognizer cannot read", func(t *testing.T) {
		_, err := receipts.ScanReceipt(ctx, connect.NewRequest(&api.ScanReceiptRequest{
			Image:       []byte{0x89, 'P', 'N', 'G'},
			ContentType: "image/png",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})
}

func TestReceiptEditing(t *testing.T) {
	receipts, _ := setupTestServer(t)
	ctx := context.Background()

	receipt := saveText(t, receipts, "Bakery\n2025-03-01\nBread 2.00 x 2\nMilk 1.25 x 4")

	t.Run("UpdateReceipt", func(t *testing.T) {
		resp, err := receipts.UpdateReceipt(ctx, connect.NewRequest(&api.UpdateReceiptRequest{
			ReceiptID: receipt.ID, Name: "Corner Bakery", Date: "2025-03-02",
		}))
		require.NoError(t, err)
		assert.Equal(t, "Corner Bakery", resp.Msg.Receipt.Name)
		assert.Equal(t, "2025-03-02", resp.Msg.Receipt.Date)

		_, err = receipts.UpdateReceipt(ctx, connect.NewRequest(&api.UpdateReceiptRequest{ReceiptID: receipt.ID, Name: " "}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("UpdateItem recomputes the total", func(t *testing.T) {
		resp, err := receipts.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{
			ItemID: receipt.Items[1].ID, Name: "Milk", Price: 1.50, Quantity: 4,
		}))
		require.NoError(t, err)
		assert.InDelta(t, 10.00, resp.Msg.ReceiptTotal, 0.001)
		assert.Equal(t, receipt.ID, resp.Msg.Item.ReceiptID)

		_, err = receipts.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{ItemID: receipt.Items[1].ID, Price: 1, Quantity: 0}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		_, err = receipts.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{ItemID: "missing", Price: 1, Quantity: 1}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("DeleteItem", func(t *testing.T) {
		_, err := receipts.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ItemID: receipt.Items[0].ID}))
		require.NoError(t, err)

		got, err := receipts.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: receipt.ID}))
		require.NoError(t, err)
		assert.Len(t, got.Msg.Receipt.Items, 1)
		assert.InDelta(t, 6.00, got.Msg.Receipt.TotalAmount, 0.001)
	})

	t.Run("DeleteReceipt", func(t *testing.T) {
		_, err := receipts.DeleteReceipt(ctx, connect.NewRequest(&api.DeleteReceiptRequest{ReceiptID: receipt.ID}))
		require.NoError(t, err)

		_, err = receipts.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: receipt.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

		_, err = receipts.ReparseReceipt(ctx, connect.NewRequest(&api.ReparseReceiptRequest{ReceiptID: receipt.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestReparseReceipt(t *testing.T) {
	receipts, _ := setupTestServer(t)
	ctx := context.Background()

	receipt := saveText(t, receipts, "Market\n3.50 x\nApple\nTotal")
	assert.Empty(t, receipt.Items)

	resp, err := receipts.ReparseReceipt(ctx, connect.NewRequest(&api.ReparseReceiptRequest{
		ReceiptID: receipt.ID,
		Strategy:  "cursor",
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Receipt.Items, 1)
	assert.Equal(t, "Apple", resp.Msg.Receipt.Items[0].Name)
	assert.InDelta(t, 3.50, resp.Msg.Receipt.TotalAmount, 0.001)
	assert.Equal(t, "Market", resp.Msg.Receipt.Name)

	_, err = receipts.ReparseReceipt(ctx, connect.NewRequest(&api.ReparseReceiptRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestBreakdown(t *testing.T) {
	receipts, collaborators := setupTestServer(t)
	ctx := context.Background()

	receipt := saveText(t, receipts, "Diner\nPizza 12.00 x 1\nSoda 3.00 x 1\nFries 4.00 x 1")
	pizza, soda := receipt.Items[0], receipt.Items[1]
	u1 := createUser(t, collaborators, "Alice")
	u2 := createUser(t, collaborators, "Bob")

	for _, a := range []struct{ user, item string }{
		{u1.ID, pizza.ID},
		{u2.ID, pizza.ID},
		{u1.ID, soda.ID},
	} {
		_, err := collaborators.AssignItem(ctx, connect.NewRequest(&api.AssignItemRequest{UserID: a.user, ItemID: a.item}))
		require.NoError(t, err)
	}

	resp, err := receipts.GetBreakdown(ctx, connect.NewRequest(&api.GetBreakdownRequest{ReceiptID: receipt.ID}))
	require.NoError(t, err)

	owed := make(map[string]float64)
	for _, share := range resp.Msg.Shares {
		owed[share.UserName] = share.Amount
	}
	assert.InDelta(t, 9.00, owed["Alice"], 0.001)
	assert.InDelta(t, 6.00, owed["Bob"], 0.001)
	assert.InDelta(t, 4.00, resp.Msg.Unassigned, 0.001)
	assert.Equal(t, []string{receipt.Items[2].ID}, resp.Msg.UnassignedItemIDs)
	assert.InDelta(t, 19.00, resp.Msg.Total, 0.001)

	_, err = receipts.GetBreakdown(ctx, connect.NewRequest(&api.GetBreakdownRequest{ReceiptID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestCollaborators(t *testing.T) {
	receipts, collaborators := setupTestServer(t)
	ctx := context.Background()

	receipt := saveText(t, receipts, "Costco\nPizza 12.99 x 1")
	item := receipt.Items[0]

	t.Run("CreateUser requires a name", func(t *testing.T) {
		_, err := collaborators.CreateUser(ctx, connect.NewRequest(&api.CreateUserRequest{Name: "  "}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("AddToReceipt and ListReceiptUsers", func(t *testing.T) {
		carol := createUser(t, collaborators, "Carol")
		_, err := collaborators.AddToReceipt(ctx, connect.NewRequest(&api.AddToReceiptRequest{UserID: carol.ID, ReceiptID: receipt.ID}))
		require.NoError(t, err)

		users, err := collaborators.ListReceiptUsers(ctx, connect.NewRequest(&api.ListReceiptUsersRequest{ReceiptID: receipt.ID}))
		require.NoError(t, err)
		require.Len(t, users.Msg.Users, 1)
		assert.Equal(t, "Carol", users.Msg.Users[0].Name)

		_, err = collaborators.RemoveFromReceipt(ctx, connect.NewRequest(&api.RemoveFromReceiptRequest{UserID: carol.ID, ReceiptID: receipt.ID}))
		require.NoError(t, err)
		users, err = collaborators.ListReceiptUsers(ctx, connect.NewRequest(&api.ListReceiptUsersRequest{ReceiptID: receipt.ID}))
		require.NoError(t, err)
		assert.Empty(t, users.Msg.Users)
	})

	t.Run("UnassignItem", func(t *testing.T) {
		dave := createUser(t, collaborators, "Dave")
		_, err := collaborators.AssignItem(ctx, connect.NewRequest(&api.AssignItemRequest{UserID: dave.ID, ItemID: item.ID}))
		require.NoError(t, err)

		_, err = collaborators.UnassignItem(ctx, connect.NewRequest(&api.UnassignItemRequest{UserID: dave.ID, ItemID: item.ID}))
		require.NoError(t, err)

		_, err = collaborators.UnassignItem(ctx, connect.NewRequest(&api.UnassignItemRequest{UserID: dave.ID, ItemID: item.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("DeleteUser keeps the items", func(t *testing.T) {
		erin := createUser(t, collaborators, "Erin")
		_, err := collaborators.AssignItem(ctx, connect.NewRequest(&api.AssignItemRequest{UserID: erin.ID, ItemID: item.ID}))
		require.NoError(t, err)

		_, err = collaborators.DeleteUser(ctx, connect.NewRequest(&api.DeleteUserRequest{UserID: erin.ID}))
		require.NoError(t, err)

		got, err := receipts.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: receipt.ID, IncludeUsers: true}))
		require.NoError(t, err)
		require.Len(t, got.Msg.Receipt.Items, 1)
		assert.Equal(t, item.ID, got.Msg.Receipt.Items[0].ID)
		for _, u := range got.Msg.Receipt.Items[0].Contributors {
			assert.NotEqual(t, erin.ID, u.ID)
		}

		_, err = collaborators.DeleteUser(ctx, connect.NewRequest(&api.DeleteUserRequest{UserID: erin.ID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("ListUsers", func(t *testing.T) {
		resp, err := collaborators.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{}))
		require.NoError(t, err)
		names := make([]string, len(resp.Msg.Users))
		for i, u := range resp.Msg.Users {
			names[i] = u.Name
		}
		assert.Equal(t, []string{"Carol", "Dave"}, names)
	})
}

func TestToAPIParsed(t *testing.T) {
	parsed := &models.ParsedReceipt{
		StoreName:   "Costco",
		Date:        "2025-02-18",
		TotalAmount: 18.99,
		Items: []models.ParsedItem{
			{Name: "Pizza", Price: 12.99, Quantity: 1},
			{Name: "Soda", Price: 2.50, Quantity: 2},
		},
		Strategy: "regex",
	}

	got := ToAPIParsed(parsed)

	assert.Equal(t, "Costco", got.StoreName)
	assert.Equal(t, "2025-02-18", got.Date)
	assert.Equal(t, "regex", got.Strategy)
	assert.InDelta(t, 18.99, got.TotalAmount, 0.001)
	assert.InDelta(t, 17.99, got.ItemsTotal, 0.001)
	require.Len(t, got.Items, 2)
	assert.Equal(t, &api.ParsedItem{Name: "Soda", Price: 2.50, Quantity: 2}, got.Items[1])

	empty := ToAPIParsed(&models.ParsedReceipt{StoreName: "Unknown Store"})
	assert.NotNil(t, empty.Items, "items encode as [] rather than null")
	assert.Empty(t, empty.Items)
}
