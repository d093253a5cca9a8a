// Package redirect defines the single-hop redirect probe used to peek at the
// immediate target of a shortened link without following it.
package redirect

import "context"

// Hop describes the response of one probe request.
type Hop struct {
	StatusCode int    // StatusCode is the HTTP status returned by the target.
	Location   string // Location is the raw Location header, if any.
}

// IsRedirect reports whether the hop is a redirection carrying a target.
func (h Hop) IsRedirect() bool {
	return h.StatusCode >= 300 && h.StatusCode < 400 && h.Location != ""
}

// Prober issues exactly one request to a URL with redirect-following
// disabled and reports what came back.
//
//go:generate mockgen -package mockredirect -source=interface.go -destination=mock/mockredirect.go *
type Prober interface {
	Probe(ctx context.Context, URL string) (Hop, error)
}
