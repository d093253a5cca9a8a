package cleaner

import (
	"net/url"
	"strings"
)

// Rule is a host-specific unwrap rule. Rules are evaluated in order before
// generic cleaning; the first rule whose Apply reports ok wins and its output
// is returned without further processing.
type Rule interface {
	// Name identifies the rule in results, logs and metrics.
	Name() string
	// Apply inspects the parsed URL and returns the rewritten link. ok is
	// false when the rule does not apply and evaluation should continue.
	Apply(u *url.URL) (out string, ok bool)
}

// DefaultRules returns the built-in unwrap rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		LinkedInShareRule{},
		GoogleSearchRule{},
	}
}

// LinkedInShareRule unwraps https://www.linkedin.com/shareArticle?url=<target>
// links into the embedded target. The target is returned as-is.
type LinkedInShareRule struct{}

// Name implements Rule.
func (LinkedInShareRule) Name() string { return "linkedin-share" }

// Apply implements Rule.
func (LinkedInShareRule) Apply(u *url.URL) (string, bool) {
	if !strings.EqualFold(u.Hostname(), "www.linkedin.com") || u.Path != "/shareArticle" {
		return "", false
	}

	embedded := queryValue(u.RawQuery, "url")
	if embedded == "" {
		return "", false
	}

	// the query value is already decoded once; share buttons often encode twice.
	if decoded, err := url.PathUnescape(embedded); err == nil {
		return decoded, true
	}

	return embedded, true
}

// GoogleSearchRule reduces a Google web-search result link to its query,
// dropping session tokens, UI-state flags and the fragment.
type GoogleSearchRule struct{}

// Name implements Rule.
func (GoogleSearchRule) Name() string { return "google-search" }

// Apply implements Rule.
func (GoogleSearchRule) Apply(u *url.URL) (string, bool) {
	if !strings.EqualFold(u.Hostname(), "www.google.com") || u.Path != "/search" {
		return "", false
	}

	q := queryValue(u.RawQuery, "q")
	if q == "" {
		return "", false
	}

	out := url.URL{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		RawQuery: "q=" + encodeURIComponent(q),
	}

	return out.String(), true
}

// queryValue returns the decoded value of the first pair named key in rawQuery.
// Pairs are split on '&' only, so a literal ';' stays part of the value
// instead of invalidating the pair as url.ParseQuery would.
func queryValue(rawQuery, key string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(k); err == nil {
			k = decoded
		}
		if k != key {
			continue
		}
		if decoded, err := url.QueryUnescape(v); err == nil {
			return decoded
		}

		return v
	}

	return ""
}

// encodeURIComponent percent-encodes s leaving only the characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) untouched. Spaces become %20.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)

			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}

	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("-_.!~*'()", c) >= 0
}
