package gemini

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
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	// MaxBodyBytes bounds both the forwarded request and the relayed response.
	MaxBodyBytes = 1 << 20
)

var (
	ErrNoAPIKey         = errors.New("API key not configured on the server")
	ErrInvalidPayload   = errors.New("request body is not valid JSON")
	ErrUpstreamTooLarge = errors.New("upstream response is larger than the relay limit")
)

// Proxy forwards generateContent requests to Gemini with the server's key
// attached, so the key never reaches the browser.
type Proxy struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

type Option func(*Proxy)

func WithBaseURL(u string) Option {
	return func(p *Proxy) { p.baseURL = strings.TrimRight(u, "/") }
}

func WithModel(m string) Option {
	return func(p *Proxy) { p.model = m }
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Proxy) { p.client = c }
}

func NewProxy(apiKey string, opts ...Option) *Proxy {
	p := &Proxy{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 90 * time.Second},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Proxy) Configured() bool {
	return p.apiKey != ""
}

func (p *Proxy) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))
}

// Forward posts payload unchanged and returns the upstream JSON body
// whatever its status code. A body that is not JSON is an error.
func (p *Proxy) Forward(ctx context.Context, payload []byte) (json.RawMessage, error) {
	if !p.Configured() {
		return nil, ErrNoAPIKey
	}
	if !json.Valid(payload) {
		return nil, ErrInvalidPayload
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		// url.Error carries the full URL, key included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("call generateContent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w (status %d)", ErrUpstreamTooLarge, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned non-JSON body (status %d)", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
