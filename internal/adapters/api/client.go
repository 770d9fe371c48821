package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// Client is the HTTP implementation of the Gateway port. Each call is a
// single attempt: no retries, no de-duplication, and no client-side timeout
// (a hung call stays pending until the server responds or the connection
// drops).
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a gateway client for the service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}
}

// BaseURL returns the configured service address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateWorkspace creates a workspace and returns the server record
func (c *Client) CreateWorkspace(ctx context.Context, name, description string) (*domain.Workspace, error) {
	body := map[string]string{"name": name, "description": description}
	var ws domain.Workspace
	if err := c.doJSON(ctx, http.MethodPost, "/workspaces/", body, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListWorkspaces returns all workspaces
func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	var out []domain.Workspace
	if err := c.doJSON(ctx, http.MethodGet, "/workspaces/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWorkspace fetches one workspace by id
func (c *Client) GetWorkspace(ctx context.Context, id string) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := c.doJSON(ctx, http.MethodGet, "/workspaces/"+url.PathEscape(id), nil, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// DeleteWorkspace deletes a workspace; the server cascades to its contents
func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/workspaces/"+url.PathEscape(id), nil, nil)
}

// CreateAsset submits a text/structured asset
func (c *Client) CreateAsset(ctx context.Context, workspaceID string, draft domain.AssetDraft) (*domain.Asset, error) {
	var asset domain.Asset
	if err := c.doJSON(ctx, http.MethodPost, "/assets/"+url.PathEscape(workspaceID), draft, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UploadAsset submits a binary asset as multipart form data carrying the
// file bytes plus name and description fields
func (c *Client) UploadAsset(ctx context.Context, workspaceID, name, description, filename string, r io.Reader) (*domain.Asset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := mw.WriteField("name", name); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.WriteField("description", description); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/assets/"+url.PathEscape(workspaceID)+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var asset domain.Asset
	if err := c.send(req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets returns all assets in a workspace
func (c *Client) ListAssets(ctx context.Context, workspaceID string) ([]domain.Asset, error) {
	var out []domain.Asset
	if err := c.doJSON(ctx, http.MethodGet, "/assets/"+url.PathEscape(workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadAsset fetches the raw bytes of an asset
func (c *Client) DownloadAsset(ctx context.Context, assetID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/assets/asset/"+url.PathEscape(assetID)+"/download", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, readError(res)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// DeleteAsset deletes a single asset
func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/assets/asset/"+url.PathEscape(assetID), nil, nil)
}

// CreateKit creates a kit, optionally seeded with asset ids
func (c *Client) CreateKit(ctx context.Context, workspaceID, name, description string, assetIDs []string) (*domain.Kit, error) {
	body := map[string]any{"name": name, "description": description}
	if len(assetIDs) > 0 {
		body["asset_ids"] = assetIDs
	}
	var kit domain.Kit
	if err := c.doJSON(ctx, http.MethodPost, "/kits/"+url.PathEscape(workspaceID), body, &kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

// ListKits returns all kits in a workspace with embedded membership
func (c *Client) ListKits(ctx context.Context, workspaceID string) ([]domain.Kit, error) {
	var out []domain.Kit
	if err := c.doJSON(ctx, http.MethodGet, "/kits/"+url.PathEscape(workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetKit fetches one kit by id
func (c *Client) GetKit(ctx context.Context, kitID string) (*domain.Kit, error) {
	var kit domain.Kit
	if err := c.doJSON(ctx, http.MethodGet, "/kits/kit/"+url.PathEscape(kitID), nil, &kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

// UpdateKitAssets replaces a kit's membership with the given asset ids
func (c *Client) UpdateKitAssets(ctx context.Context, kitID string, assetIDs []string) (*domain.Kit, error) {
	body := map[string]any{"asset_ids": assetIDs}
	var kit domain.Kit
	if err := c.doJSON(ctx, http.MethodPut, "/kits/kit/"+url.PathEscape(kitID), body, &kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

// DeleteKit deletes a kit
func (c *Client) DeleteKit(ctx context.Context, kitID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/kits/kit/"+url.PathEscape(kitID), nil, nil)
}

// CreateSharingLink creates a time-bounded share token for a kit.
// A zero expiresInDays asks for a link that never expires.
func (c *Client) CreateSharingLink(ctx context.Context, kitID string, expiresInDays int) (*domain.SharingLink, error) {
	body := map[string]any{}
	if expiresInDays > 0 {
		body["expires_in_days"] = expiresInDays
	}
	var link domain.SharingLink
	if err := c.doJSON(ctx, http.MethodPost, "/sharing-links/kit/"+url.PathEscape(kitID), body, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ResolveSharingLink resolves a token to link metadata
func (c *Client) ResolveSharingLink(ctx context.Context, token string) (*domain.SharingLink, error) {
	var link domain.SharingLink
	if err := c.doJSON(ctx, http.MethodGet, "/sharing-links/token/"+url.PathEscape(token), nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListSharedAssets returns the assets visible under a token
func (c *Client) ListSharedAssets(ctx context.Context, token string) ([]domain.Asset, error) {
	var out []domain.Asset
	if err := c.doJSON(ctx, http.MethodGet, "/sharing-links/token/"+url.PathEscape(token)+"/assets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Query runs an authenticated retrieval query against a kit
func (c *Client) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	var resp domain.QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/rag/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryShared runs a token-scoped retrieval query
func (c *Client) QueryShared(ctx context.Context, token string, req domain.QueryRequest) (*domain.QueryResponse, error) {
	var resp domain.QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/rag/query/shared/"+url.PathEscape(token), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doJSON issues a request with an optional JSON body and decodes the
// response into out when out is non-nil
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return readError(res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readError turns a non-success response into a classified RemoteError
// carrying the raw server message. {"detail": "..."} bodies are unwrapped
// so the notification shows the message itself.
func readError(res *http.Response) error {
	data, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(data))

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}

	return &ports.RemoteError{StatusCode: res.StatusCode, Message: msg}
}
