package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/logger"
	"github.com/ebolotov/itemvault/internal/utils"
	"github.com/ebolotov/itemvault/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register and returns the decoded registration response.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.RegisterResponse, error) {
	var registerResponse models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&registerResponse).
		Post("/api/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return registerResponse, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token from the response body is
// stored via SetToken and the full login response is returned.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.LoginResponse, error) {
	var loginResponse models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&loginResponse).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(loginResponse.Token)
	return loginResponse, nil
}

// Me implements [ServerAdapter]. It GETs /api/auth/me and decodes the public
// user projection. Requires a valid bearer token.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	var userResponse models.UserResponse
	if err = json.Unmarshal(resp.Body(), &userResponse); err != nil {
		return models.UserResponse{}, fmt.Errorf("decode me response: %w", err)
	}

	return userResponse, nil
}

// CreateItem implements [ServerAdapter]. It POSTs the item to
// POST /api/items and returns the stored record with its server-assigned id.
// Requires a valid bearer token.
func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		Post("/api/items")
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	var createdItem models.Item
	if err = json.Unmarshal(resp.Body(), &createdItem); err != nil {
		return models.Item{}, fmt.Errorf("decode create item response: %w", err)
	}

	return createdItem, nil
}

// ListItems implements [ServerAdapter]. It GETs /api/items and decodes the
// item slice. Requires a valid bearer token.
func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.Item, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.Item
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode list items response: %w", err)
	}

	return items, nil
}

// GetItem implements [ServerAdapter]. It GETs /api/items/{id} and decodes the
// item. Requires a valid bearer token.
func (h *httpServerAdapter) GetItem(ctx context.Context, itemID int64) (models.Item, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items/" + strconv.FormatInt(itemID, 10))
	if err != nil {
		return models.Item{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	var item models.Item
	if err = json.Unmarshal(resp.Body(), &item); err != nil {
		return models.Item{}, fmt.Errorf("decode get item response: %w", err)
	}

	return item, nil
}

// UpdateItem implements [ServerAdapter]. It PUTs the item to
// PUT /api/items/{id} and returns the updated record. Requires a valid bearer
// token.
func (h *httpServerAdapter) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		Put("/api/items/" + strconv.FormatInt(item.ID, 10))
	if err != nil {
		return models.Item{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	var updatedItem models.Item
	if err = json.Unmarshal(resp.Body(), &updatedItem); err != nil {
		return models.Item{}, fmt.Errorf("decode update item response: %w", err)
	}

	return updatedItem, nil
}

// DeleteItem implements [ServerAdapter]. It sends a DELETE request to
// DELETE /api/items/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID int64) error {
	resp, err := h.authedRequest(ctx).Delete("/api/items/" + strconv.FormatInt(itemID, 10))
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
