package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core"
)

// fallbackErrMsg surfaces when the backend gives us nothing better.
const fallbackErrMsg = "Something went wrong. Please try again."

// TokenSource provides the current bearer token; an empty string means
// anonymous. The session store implements this.
type TokenSource interface {
	Token() string
}

type Options struct {
	BaseURL    string
	Tokens     TokenSource
	Logger     core.Logger
	HTTPClient *http.Client
}

// Client is the app's only HTTP surface; every page talks to the backend
// through it.
type Client struct {
	baseURL string
	tokens  TokenSource
	logger  core.Logger
	http    *http.Client
}

func NewClient(opts *Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: opts.BaseURL,
		tokens:  opts.Tokens,
		logger:  opts.Logger,
		http:    hc,
	}
}

// APIError is a non-2xx response, carrying the server-provided message when
// present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// ErrorMessage extracts the text an action failure should surface: the
// server's message if present, else a generic fallback.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallbackErrMsg
}

// do issues one request. withAuth attaches the bearer token when a session
// exists; anonymous calls and signed-out public fetches go out bare.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body interface{}, withAuth bool) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshalling request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req, withAuth)

	return c.send(req)
}

func (c *Client) setHeaders(req *http.Request, withAuth bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if withAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: res.StatusCode, Message: serverMessage(data)}
		if c.logger != nil {
			c.logger.Warn(fmt.Sprintf("%s %s: %v", req.Method, req.URL.Path, apiErr))
		}
		return nil, apiErr
	}
	return data, nil
}

// serverMessage pulls the error text out of a failure body; both `message`
// and `error` keys exist in the wild.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
