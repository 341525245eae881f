package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/service"
	"github.com/ebolotov/itemvault/internal/store"
	"github.com/ebolotov/itemvault/models"
)

// ─────────────────────────────────────────────
// Mock ItemService
// ─────────────────────────────────────────────

type mockItemService struct {
	createFn func(ctx context.Context, item models.Item) (models.Item, error)
	listFn   func(ctx context.Context, userID int64) ([]models.Item, error)
	getFn    func(ctx context.Context, userID, itemID int64) (models.Item, error)
	updateFn func(ctx context.Context, item models.Item) (models.Item, error)
	deleteFn func(ctx context.Context, userID, itemID int64) error
}

func (m *mockItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	return m.createFn(ctx, item)
}

func (m *mockItemService) ListItems(ctx context.Context, userID int64) ([]models.Item, error) {
	return m.listFn(ctx, userID)
}

func (m *mockItemService) GetItem(ctx context.Context, userID, itemID int64) (models.Item, error) {
	return m.getFn(ctx, userID, itemID)
}

func (m *mockItemService) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	return m.updateFn(ctx, item)
}

func (m *mockItemService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	return m.deleteFn(ctx, userID, itemID)
}

// newHandlerWithItems builds a Handler with the given ItemService mock.
func newHandlerWithItems(t *testing.T, items service.ItemService) *Handler {
	t.Helper()
	svcs := &service.Services{
		ItemService: items,
	}
	return NewHandler(svcs, logger.Nop())
}

// authedItemRequest builds a request carrying the authenticated identity and,
// when itemID is non-empty, a chi route context with the item_id parameter.
func authedItemRequest(method, target, itemID, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := ctxWithUser(req.Context(), 42, "alice")
	if itemID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("item_id", itemID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

// ─────────────────────────────────────────────
// tests
// ─────────────────────────────────────────────

// TestCreateItemHandler_Success verifies that the owner id always comes from
// the token, never from the request body.
func TestCreateItemHandler_Success(t *testing.T) {
	items := &mockItemService{
		createFn: func(_ context.Context, item models.Item) (models.Item, error) {
			require.Equal(t, int64(42), item.UserID)
			item.ID = 7
			return item, nil
		},
	}

	h := newHandlerWithItems(t, items)
	req := authedItemRequest(http.MethodPost, "/api/items", "", `{"name":"laptop","user_id":999}`)
	rec := httptest.NewRecorder()

	h.createItem(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.ID)
}

func TestListItemsHandler_Empty(t *testing.T) {
	items := &mockItemService{
		listFn: func(_ context.Context, userID int64) ([]models.Item, error) {
			require.Equal(t, int64(42), userID)
			return []models.Item{}, nil
		},
	}

	h := newHandlerWithItems(t, items)
	req := authedItemRequest(http.MethodGet, "/api/items", "", "")
	rec := httptest.NewRecorder()

	h.listItems(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetItemHandler_InvalidID(t *testing.T) {
	h := newHandlerWithItems(t, &mockItemService{})
	req := authedItemRequest(http.MethodGet, "/api/items/abc", "abc", "")
	rec := httptest.NewRecorder()

	h.getItem(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItemHandler_NotFound(t *testing.T) {
	items := &mockItemService{
		getFn: func(_ context.Context, userID, itemID int64) (models.Item, error) {
			require.Equal(t, int64(42), userID)
			require.Equal(t, int64(7), itemID)
			return models.Item{}, store.ErrItemNotFound
		},
	}

	h := newHandlerWithItems(t, items)
	req := authedItemRequest(http.MethodGet, "/api/items/7", "7", "")
	rec := httptest.NewRecorder()

	h.getItem(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateItemHandler_Success(t *testing.T) {
	items := &mockItemService{
		updateFn: func(_ context.Context, item models.Item) (models.Item, error) {
			require.Equal(t, int64(42), item.UserID)
			require.Equal(t, int64(7), item.ID)
			return item, nil
		},
	}

	h := newHandlerWithItems(t, items)
	req := authedItemRequest(http.MethodPut, "/api/items/7", "7", `{"name":"laptop"}`)
	rec := httptest.NewRecorder()

	h.updateItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteItemHandler_Success(t *testing.T) {
	items := &mockItemService{
		deleteFn: func(_ context.Context, userID, itemID int64) error {
			require.Equal(t, int64(42), userID)
			require.Equal(t, int64(7), itemID)
			return nil
		},
	}

	h := newHandlerWithItems(t, items)
	req := authedItemRequest(http.MethodDelete, "/api/items/7", "7", "")
	rec := httptest.NewRecorder()

	h.deleteItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
