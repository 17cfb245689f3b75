package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/finsyncpro/finsync-cli/internal/domain"
)

// Generic failure messages used when the backend returns no detail field
const (
	msgChatFailed     = "Failed to send message"
	msgUploadFailed   = "Failed to upload document"
	msgListFailed     = "Failed to fetch documents"
	msgStatusFailed   = "Failed to fetch document status"
	msgHealthFailed   = "Failed to reach backend"
	msgUnknownFailure = "Unknown error"
)

// Client talks to the FinSync backend API. It is stateless and safe for
// concurrent use; session continuity travels in each chat payload, not here.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client for the given base URL, e.g.
// "http://localhost:8000/api". A zero timeout disables the client-side limit.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Chat sends a query to the RAG agent. sessionID is nil on the first exchange;
// the backend issues one in the response.
func (c *Client) Chat(ctx context.Context, query string, sessionID *string) (*domain.ChatResponse, error) {
	body, err := json.Marshal(domain.ChatRequest{Query: query, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, apiError(resp, msgChatFailed)
	}

	var out domain.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return &out, nil
}

// Upload sends one PDF as a multipart form with field name "file".
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, apiError(resp, msgUploadFailed)
	}

	var out domain.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &out, nil
}

// ListDocuments fetches the authoritative list of indexed documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var out domain.DocumentListResponse
	if err := c.getJSON(ctx, "/documents", msgListFailed, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// DocumentStatus fetches the processing status of a single document.
func (c *Client) DocumentStatus(ctx context.Context, docID string) (*domain.Document, error) {
	var out domain.Document
	if err := c.getJSON(ctx, "/documents/"+docID+"/status", msgStatusFailed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the backend health endpoint. Best-effort.
func (c *Client) Health(ctx context.Context) (*domain.HealthResponse, error) {
	var out domain.HealthResponse
	if err := c.getJSON(ctx, "/health", msgHealthFailed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path, failMsg string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return apiError(resp, failMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// apiError normalizes a non-2xx response into *domain.APIError, preferring
// the backend's "detail" field over the generic fallback message.
func apiError(resp *http.Response, fallback string) error {
	detail := fallback
	if fallback == "" {
		detail = msgUnknownFailure
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}

	return &domain.APIError{StatusCode: resp.StatusCode, Detail: detail}
}
