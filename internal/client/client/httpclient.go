package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/client/models"
)

type PortalClient struct {
	baseURL string
	http    *http.Client
}

func NewPortalClient(baseURL string, timeout time.Duration) *PortalClient {
	return &PortalClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// HTTPClient exposes the underlying client, e.g. for presigned uploads.
func (c *PortalClient) HTTPClient() *http.Client {
	return c.http
}

func (c *PortalClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Kind == "" {
			apiErr.Kind = http.StatusText(resp.StatusCode)
			apiErr.Message = strings.TrimSpace(string(data))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *PortalClient) Signup(ctx context.Context, email string, password []byte) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodPost, "/api/signup",
		map[string]string{"email": email, "password": string(password)}, &out)
	return out.Message, err
}

func (c *PortalClient) Verify(ctx context.Context, email, code string) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodPost, "/api/verify",
		map[string]string{"email": email, "code": code}, &out)
	return out.Message, err
}

func (c *PortalClient) Login(ctx context.Context, email string, password []byte) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"email": email, "password": string(password)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PortalClient) ListEvents(ctx context.Context, community, q string) ([]*models.Event, error) {
	v := url.Values{}
	v.Set("community", community)
	if q != "" {
		v.Set("q", q)
	}
	var out []*models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events?"+v.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PortalClient) CreateEvent(ctx context.Context, e *models.NewEvent) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events", e, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *PortalClient) RenameEvent(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), map[string]string{"name": name}, nil)
}

func (c *PortalClient) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil)
}

func (c *PortalClient) PresignImage(ctx context.Context, contentType string) (*models.ImageUpload, error) {
	var out models.ImageUpload
	if err := c.do(ctx, http.MethodPost, "/api/events/images",
		map[string]string{"content_type": contentType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PortalClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}
