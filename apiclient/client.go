// Package apiclient calls the portal's REST backend. Every failure is
// normalised into an *Error whose message can be shown to the user as is.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/utils"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"
	maxBodyBytes    = 10 << 20
)

// Sessions is the part of the session store the client needs.
type Sessions interface {
	Token(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

type RequestOptions struct {
	Method  string
	Headers map[string]string
	// Body is sent as JSON. []byte, json.RawMessage and string are sent verbatim.
	Body any
}

type Client struct {
	httpClient *http.Client
	sessions   Sessions
	browser    page.Browser
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL pins the origin instead of resolving it from the tab location.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func New(cfg config.ClientConfig, sessions Sessions, browser page.Browser, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.GetRequestTimeout()},
		sessions:   sessions,
		browser:    browser,
		baseURL:    ResolveBaseURL(cfg, browser.Location()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveBaseURL picks the local relay when the tab is served from a
// loopback host and the production backend otherwise.
func ResolveBaseURL(cfg config.ClientConfig, loc page.Location) string {
	if loc.IsLoopback(cfg.GetLoopbackHosts()) {
		return cfg.GetLocalRelayOrigin()
	}
	return cfg.GetBackendOrigin()
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one call and returns the JSON body, or nil when the
// response carried none. There are no retries. When ctx ends before a
// response arrives the error wraps ctx.Err() and is not an *Error.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := utils.FirstNonEmpty(opts.Method, http.MethodGet)
	url := c.baseURL + path

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, newError(KindRequestFailed, 0, MsgRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, newError(KindRequestFailed, 0, MsgRequestFailed, err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	token, ok, err := c.sessions.Token(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to read session token, sending request anonymously")
	} else if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A call the caller abandoned is not a network failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug().Err(ctxErr).Str("method", method).Str("url", url).Msg("Request cancelled")
			return nil, fmt.Errorf("[apiclient Request] %s %s: %w", method, path, ctxErr)
		}
		log.Err(err).Str("method", method).Str("url", url).Msg("Network error")
		return nil, newError(KindNetworkError, 0, MsgNetworkError, err)
	}
	defer resp.Body.Close()

	return c.classify(ctx, resp)
}

func (c *Client) classify(ctx context.Context, resp *http.Response) (json.RawMessage, error) {
	status := resp.StatusCode

	switch {
	case status == http.StatusUnauthorized:
		if err := c.sessions.Clear(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session after 401")
		}
		c.browser.Notify(MsgSessionExpired)
		c.browser.Navigate(page.Login)
		return nil, newError(KindUnauthorized, status, MsgSessionExpired, nil)

	case status == http.StatusForbidden:
		message := MsgForbidden
		if data, err := readBody(resp); err == nil {
			if m := errorMessage(data); m != "" {
				message = FriendlyMessage(m)
			}
		}
		// The login page reports these itself.
		if !c.browser.Location().IsLoginPage() {
			c.browser.Notify(message)
		}
		return nil, newError(KindForbidden, status, message, nil)

	case status == http.StatusNotFound:
		return nil, newError(KindNotFound, status, MsgNotFound, nil)

	case status >= http.StatusInternalServerError:
		return nil, newError(KindServerError, status, MsgServerError, nil)
	}

	data, err := readBody(resp)
	if err != nil {
		log.Err(err).Int("status", status).Msg("Failed to read response body")
		return nil, newError(KindNetworkError, status, MsgNetworkError, err)
	}
	success := status >= 200 && status < 300

	if isJSON(resp.Header.Get("Content-Type")) {
		if !success {
			return nil, newError(KindRequestFailed, status, utils.FirstNonEmpty(errorMessage(data), MsgRequestFailed), nil)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		if !json.Valid(data) {
			return nil, newError(KindRequestFailed, status, MsgRequestFailed, fmt.Errorf("invalid JSON body"))
		}
		return json.RawMessage(data), nil
	}

	if success {
		return nil, nil
	}
	return nil, newError(KindRequestFailed, status, MsgRequestFailed, nil)
}

type errorBody struct {
	Message string `json:"message"`
}

func errorMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, contentTypeJSON)
	}
	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}
