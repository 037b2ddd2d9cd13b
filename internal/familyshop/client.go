package familyshop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// Config carries everything the client needs at construction time.
// Origin is the absolute prefix used to rewrite relative image paths
// returned by the API; it is injected here instead of being read from
// the environment at call time.
type Config struct {
	BaseURL string
	Origin  string
	Token   string
	Timeout time.Duration
}

type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Origin = strings.TrimRight(cfg.Origin, "/")
	return &Client{
		client: &http.Client{
			Transport: &AuthTransport{
				Token: cfg.Token,
				Base:  http.DefaultTransport,
			},
			Timeout: timeout,
		},
		config: cfg,
	}
}

// Origin returns the configured absolute prefix for image paths.
func (c *Client) Origin() string { return c.config.Origin }

// AuthTransport injects the bearer token and content negotiation headers.
type AuthTransport struct {
	Token string
	Base  http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// envelope is the common response wrapper: { ok: boolean, ...payload }.
// Every response struct embeds it so do can check the ok flag uniformly.
type envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (e *envelope) env() *envelope { return e }

type response interface {
	env() *envelope
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out response) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out response) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body any, out response) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out response) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out response) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, method, path, nil, &buf, "application/json", out)
}

// Upload is a file attached to a multipart request. Size is only
// consulted by pre-send validation; the body streams from Reader.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// sendMultipart writes fields plus an optional file part. Product and
// payment mutations use multipart because of the image upload.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, fileField string, file *Upload, out response) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
		if file.ContentType != "" {
			h.Set("Content-Type", file.ContentType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("copy file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, method, path, nil, &buf, mw.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out response) error {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return rejection(resp)
	}

	if out == nil {
		out = &envelope{OK: true}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !out.env().OK {
		msg := out.env().Message
		if msg == "" {
			msg = "request rejected"
		}
		return &Error{Kind: KindRejected, Status: resp.StatusCode, Message: msg}
	}
	return nil
}

// rejection normalizes an HTTP error status into *Error, keeping the
// backend message when the body carries one.
func rejection(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}
	return &Error{Kind: KindRejected, Status: resp.StatusCode, Message: msg}
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
