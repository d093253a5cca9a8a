// Package httpprobe provides a redirect.Prober backed by net/http. It sends a
// HEAD request and stops at the first response instead of following it.
package httpprobe

import (
	"context"
	"io"
	"net/http"
	"time"

	"linkcleaner/pkg/redirect"

	"github.com/go-faster/errors"
)

// DefaultUserAgent is sent with every probe unless overridden.
const DefaultUserAgent = "linkcleaner/1.0"

// Options configure a Client.
type Options struct {
	// Timeout bounds a single probe. Zero leaves it to the context and the
	// transport defaults.
	Timeout time.Duration
	// UserAgent is sent as the User-Agent header.
	UserAgent string
}

// Client probes URLs with HEAD requests. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
}

// Probe performs one HEAD request to URL and returns its status and Location
// header. Redirects are never followed.
func (c *Client) Probe(ctx context.Context, URL string) (redirect.Hop, error) {
	if c.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, URL, nil)
	if err != nil {
		return redirect.Hop{}, errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.options.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return redirect.Hop{}, errors.Wrap(err, "send request")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return redirect.Hop{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
	}, nil
}

// Ensure Client conforms to the redirect.Prober interface at compile time.
var _ redirect.Prober = (*Client)(nil)

// New constructs a Client on top of httpClient. The client is shallow-copied
// and its CheckRedirect replaced so that the first response is always
// returned as-is. A nil httpClient uses a fresh http.Client.
func New(httpClient *http.Client, options Options) *Client {
	var hc http.Client
	if httpClient != nil {
		hc = *httpClient
	}
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if options.UserAgent == "" {
		options.UserAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: &hc,
		options:    options,
	}
}
