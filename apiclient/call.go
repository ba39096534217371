package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Call performs a request and decodes the JSON result into T. An empty
// response yields the zero value of T.
func Call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	raw, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newError(KindRequestFailed, 0, MsgRequestFailed, err)
	}
	return out, nil
}

// Get is Call with GET and no body.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Call[T](ctx, c, http.MethodGet, path, nil)
}

// Send performs a request whose result is not needed.
func (c *Client) Send(ctx context.Context, method, path string, body any) error {
	_, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body})
	return err
}
