// Package inventory is the HTTP client for the animals inventory backend.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sipico/animal-inventory/internal/metrics"
	"github.com/sipico/animal-inventory/internal/session"
)

// Client talks to the inventory backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp LoginResponse
	creds := Credentials{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/user/login", nil, creds, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return resp.AccessToken, nil
}

// Register creates a new backend account. No token is issued.
func (c *Client) Register(ctx context.Context, username, password string) error {
	creds := Credentials{Username: username, Password: password}
	return c.do(ctx, "register", http.MethodPost, "/user/signin", nil, creds, nil)
}

// ListAnimals fetches the whole collection. A null data field yields an empty slice.
func (c *Client) ListAnimals(ctx context.Context, sess *session.Session) ([]Animal, error) {
	var resp ListAnimalsResponse
	if err := c.do(ctx, "list_animals", http.MethodGet, "/animal/getAnimals", sess, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Animal{}, nil
	}
	return resp.Data, nil
}

// AddAnimal creates a record. The response body is not used; callers resync with ListAnimals.
func (c *Client) AddAnimal(ctx context.Context, sess *session.Session, input *AnimalInput) error {
	return c.do(ctx, "add_animal", http.MethodPost, "/animal/addAnimal", sess, input, nil)
}

// UpdateAnimal replaces the fields of the record with the given id.
func (c *Client) UpdateAnimal(ctx context.Context, sess *session.Session, id string, input *AnimalInput) error {
	path := "/animal/updateAnimal/" + url.PathEscape(id)
	return c.do(ctx, "update_animal", http.MethodPut, path, sess, input, nil)
}

// DeleteAnimal removes the record with the given id.
func (c *Client) DeleteAnimal(ctx context.Context, sess *session.Session, id string) error {
	path := "/animal/deleteAnimal/" + url.PathEscape(id)
	return c.do(ctx, "delete_animal", http.MethodDelete, path, sess, nil, nil)
}

// Ping checks that the backend answers HTTP at all. Any status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventory backend unreachable: %w", err)
	}
	defer func() {
		//nolint:errcheck
		resp.Body.Close()
	}()
	//nolint:errcheck
	io.Copy(io.Discard, resp.Body)

	return nil
}

// do sends one JSON request. in is encoded as the body when non-nil; out is
// decoded from a 2xx response when non-nil. Non-2xx yields a *StatusError.
func (c *Client) do(ctx context.Context, op, method, path string, sess *session.Session, in, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamCall(op, outcome(err), time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		sess.Authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		//nolint:errcheck
		resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func outcome(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &se):
		return "http_error"
	default:
		return "transport_error"
	}
}
