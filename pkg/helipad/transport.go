package helipad

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the origin of the hosted service.
const DefaultBaseURL = "http://pad.helicoid.net"

// Transport posts an XML request body to an endpoint path and returns the
// raw response body.
type Transport interface {
	Send(ctx context.Context, path, body string) (string, error)
}

// HTTPTransport is the Transport used by New. It makes exactly one POST per
// call and never retries.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTransport returns a transport for baseURL. A nil client gets one that
// hands 3xx responses back instead of following them.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return &HTTPTransport{BaseURL: baseURL, Client: client}
}

func (t *HTTPTransport) endpoint(path string) string {
	return strings.TrimRight(t.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Send implements Transport. Success and redirect statuses return the body
// verbatim; any other status is a *TransportError carrying status and body.
func (t *HTTPTransport) Send(ctx context.Context, path, body string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(path), strings.NewReader(body))
	if err != nil {
		return "", &TransportError{Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Content-Type", "application/xml")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", &TransportError{Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return string(respBody), nil
}
