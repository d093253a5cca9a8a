package cleaner

import (
	"net/url"
	"strings"

	"linkcleaner/pkg/domain"
)

// Normalizer strips tracking parameters from links and applies host-specific
// unwrap rules. It performs no I/O and is safe for concurrent use.
type Normalizer struct {
	tables domain.Tables
	rules  []Rule
}

// NewNormalizer creates a Normalizer over the given tables and ordered rules.
func NewNormalizer(tables domain.Tables, rules []Rule) *Normalizer {
	return &Normalizer{
		tables: tables,
		rules:  append([]Rule(nil), rules...),
	}
}

// Normalize returns the cleaned form of input. Input that does not parse as
// an absolute URL is returned verbatim.
//
// Rules:
//   - The first matching unwrap rule decides the output on its own.
//   - Otherwise every query parameter whose key is in the tracking set is
//     removed; the remaining parameters keep their order and raw encoding.
//   - Scheme, host, port, path and fragment are kept as they are.
func (n *Normalizer) Normalize(input string) string {
	out, _ := n.normalize(input)

	return out
}

// normalize is Normalize that also reports which rule fired, if any.
func (n *Normalizer) normalize(input string) (string, string) {
	u, ok := parseAbsolute(input)
	if !ok {
		return input, ""
	}

	for _, rule := range n.rules {
		if out, ok := rule.Apply(u); ok {
			return out, rule.Name()
		}
	}

	if u.RawQuery == "" {
		return u.String(), ""
	}

	query, removed := n.stripTracking(u.RawQuery)
	if removed {
		u.RawQuery = query
		u.ForceQuery = false
	}

	return u.String(), ""
}

// stripTracking drops tracking pairs from a raw query string. The raw form of
// every other pair is kept so that encodings survive untouched. removed is
// false when nothing had to be dropped.
func (n *Normalizer) stripTracking(rawQuery string) (string, bool) {
	pairs := strings.Split(rawQuery, "&")
	kept := make([]string, 0, len(pairs))
	removed := false

	for _, pair := range pairs {
		if pair == "" {
			continue
		}

		key, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if n.tables.IsTrackingParam(key) {
			removed = true

			continue
		}
		kept = append(kept, pair)
	}

	if !removed {
		return rawQuery, false
	}

	return strings.Join(kept, "&"), true
}

// parseAbsolute parses s as an absolute URL. Surrounding whitespace is
// ignored, as it is when links are pasted.
func parseAbsolute(s string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	if u.Host == "" && u.Opaque == "" && u.Path == "" {
		return nil, false
	}

	return u, true
}
