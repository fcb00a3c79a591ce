// Package platform talks to the hosted backend that owns entity storage,
// user identity and text generation.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	defaultTimeout = 30 * time.Second
	// generateTimeout covers slow text generation calls.
	generateTimeout = 90 * time.Second
)

type Config struct {
	BaseURL string
	AppID   string
	APIKey  string
	Timeout time.Duration
}

// APIError is a non-2xx answer that maps to no sentinel.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	appID   string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		appID:   cfg.AppID,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &http.Client{},
	}
}

func (c *Client) entityPath(entity string, parts ...string) string {
	p := "/api/apps/" + url.PathEscape(c.appID) + "/entities/" + url.PathEscape(entity)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func listQuery(sort string, limit int) url.Values {
	q := url.Values{}
	if sort != "" {
		q.Set("sort", sort)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// List fetches every record of entity, ordered by sort ("-field" for descending).
func (c *Client) List(ctx context.Context, entity, sort string, limit int, out any) error {
	return c.do(ctx, http.MethodGet, c.entityPath(entity), listQuery(sort, limit), "", nil, out)
}

// Filter fetches the records of entity whose fields equal the given values.
func (c *Client) Filter(ctx context.Context, entity string, fields map[string]any, sort string, limit int, out any) error {
	q := listQuery(sort, limit)
	filter, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "platform: encode filter")
	}
	q.Set("q", string(filter))

	return c.do(ctx, http.MethodGet, c.entityPath(entity), q, "", nil, out)
}

func (c *Client) Get(ctx context.Context, entity, id string, out any) error {
	return c.do(ctx, http.MethodGet, c.entityPath(entity, id), nil, "", nil, out)
}

func (c *Client) Create(ctx context.Context, entity string, fields any, out any) error {
	return c.do(ctx, http.MethodPost, c.entityPath(entity), nil, "", fields, out)
}

// Update applies a partial update and decodes the stored record into out.
func (c *Client) Update(ctx context.Context, entity, id string, fields any, out any) error {
	return c.do(ctx, http.MethodPut, c.entityPath(entity, id), nil, "", fields, out)
}

// CurrentUser resolves the caller's bearer token into a profile.
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, model.ErrNotAuthenticated
	}

	var user model.User
	if err := c.do(ctx, http.MethodGet, c.entityPath("User", "me"), nil, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateCurrentUser(ctx context.Context, token string, fields map[string]any) (*model.User, error) {
	if token == "" {
		return nil, model.ErrNotAuthenticated
	}

	var user model.User
	if err := c.do(ctx, http.MethodPut, c.entityPath("User", "me"), nil, token, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type invokeLLMRequest struct {
	Prompt                 string `json:"prompt"`
	AddContextFromInternet bool   `json:"add_context_from_internet"`
}

// GenerateText runs a prompt through the platform's LLM integration.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	path := "/api/apps/" + url.PathEscape(c.appID) + "/integration-endpoints/Core/InvokeLLM"
	req := invokeLLMRequest{
		Prompt:                 prompt,
		AddContextFromInternet: opts.AddContextFromInternet,
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, nil, "", req, &raw); err != nil {
		return "", err
	}

	return decodeGenerated(raw)
}

// decodeGenerated accepts a bare JSON string or an object carrying the text under "response".
func decodeGenerated(raw json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var wrapped struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return "", errors.Wrap(err, "platform: decode generated text")
	}
	if wrapped.Response == "" {
		return "", errors.New("platform: empty generated text")
	}
	return wrapped.Response, nil
}

// do sends one request. Calls without a deadline get the configured timeout.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body any, out any) error {
	log := logger.Logger()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "platform: encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errors.Wrap(err, "platform: build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "platform: %s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "platform: read response")
	}

	log.Debug("platform request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrapf(model.ErrNotFound, "platform: %s %s", method, path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Wrapf(model.ErrNotAuthenticated, "platform: %s %s", method, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Warn("platform request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "platform: decode %s %s", method, path)
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
