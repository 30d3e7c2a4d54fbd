// Package bugclient talks to a running buglog service.
package bugclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Bug is an ingested event as the service returns it. Structured fields come
// back as JSON text.
type Bug struct {
	ID         string  `json:"id"`
	AppVersion *string `json:"appVersion"`
	AppKey     *string `json:"appKey"`
	Version    *string `json:"version"`
	UserAgent  *string `json:"userAgent"`
	Locale     *string `json:"locale"`
	URL        *string `json:"url"`
	Title      *string `json:"title"`
	Time       *int64  `json:"time"`
	Type       *string `json:"type"`
	Detail     *string `json:"detail"`
	ActionInfo *string `json:"actionInfo"`
	Custom     *string `json:"custom"`
	IP         *string `json:"ip"`
	EventCount *int32  `json:"eventCount"`
	Status     *string `json:"status"`
}

type BugPage struct {
	Records  []Bug `json:"records"`
	Total    int64 `json:"total"`
	PageNo   int   `json:"pageNo"`
	PageSize int   `json:"pageSize"`
	Pages    int64 `json:"pages"`
}

type User struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	LoginName  *string `json:"loginName"`
	AppKey     *string `json:"appKey"`
	UpdateTime *int64  `json:"updateTime"`
	CreateTime *int64  `json:"createTime"`
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// APIError is a failure envelope returned by the service.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("buglog: %s (status %d, code %d)", e.Message, e.Status, e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SendEvent submits one event. event must marshal to a JSON object.
func (c *Client) SendEvent(ctx context.Context, event any) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	resp, err := c.get(ctx, "/event", url.Values{"event": {string(raw)}})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

func (c *Client) Bugs(ctx context.Context, pageNo, pageSize int) (*BugPage, error) {
	q := url.Values{}
	if pageNo > 0 {
		q.Set("pageNo", strconv.Itoa(pageNo))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	var page BugPage
	if err := c.getEnvelope(ctx, "/getBugs", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getEnvelope(ctx, "/getAllUsers", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

func (c *Client) getEnvelope(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	env := envelope[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	return json.Unmarshal(env.Data, out)
}

func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Code: resp.StatusCode, Message: msg}
}

// IsAPIError reports whether err came back from the service as a failure envelope.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
