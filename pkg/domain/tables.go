package domain

// defaultTrackingParams are query keys that carry analytics, referrer or
// campaign markers and never address content.
var defaultTrackingParams = []string{ //nolint: gochecknoglobals
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"fbclid", "gclid", "msclkid", "twclid", "igshid",
	"ref", "referer", "referrer", "_ga", "_gid",
	"mc_cid", "mc_eid", "campaign_id", "ad_id",
	"source", "medium", "campaign", "content",
	// google mobile search
	"ved", "uact", "sa", "biw", "bih", "dpr", "ei", "gs_lcp",
	"sclient", "client", "hs", "hl", "gl", "cshid", "psb",
	// linkedin
	"rcm", "trk", "trkInfo", "lipi", "licu", "li_medium", "li_source",
	// TODO: single-letter keys such as "s" collide with search params on many sites; move them to host-scoped rules.
	"si", "s", "sp", "sr", "st", "se", "sc", "sd", "sf", "sg", "sh",
}

// defaultShorteners are hosts of link-shortening services. A host matches when
// it contains one of the entries.
var defaultShorteners = []string{ //nolint: gochecknoglobals
	"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly",
	"short.link", "tiny.cc", "is.gd", "buff.ly", "ift.tt",
	"share.google",
}

// Tables holds the two static reference sets used by the cleaner. A Tables
// value is immutable once built; accessors hand out copies.
type Tables struct {
	trackingParams []string
	tracking       map[string]struct{}
	shorteners     []string
}

// NewTables builds a Tables value from the given ordered lists. Both slices
// are copied, so later changes by the caller do not leak in.
func NewTables(trackingParams, shorteners []string) Tables {
	t := Tables{
		trackingParams: append([]string(nil), trackingParams...),
		tracking:       make(map[string]struct{}, len(trackingParams)),
		shorteners:     append([]string(nil), shorteners...),
	}
	for _, p := range t.trackingParams {
		t.tracking[p] = struct{}{}
	}

	return t
}

// DefaultTables returns the built-in tracking-parameter and shortener sets.
func DefaultTables() Tables {
	return NewTables(defaultTrackingParams, defaultShorteners)
}

// TrackingParams returns the tracking-parameter set as an ordered list.
func (t Tables) TrackingParams() []string {
	return append([]string(nil), t.trackingParams...)
}

// Shorteners returns the shortener-domain set as an ordered list.
func (t Tables) Shorteners() []string {
	return append([]string(nil), t.shorteners...)
}

// IsTrackingParam reports whether key is an exact, case-sensitive member of
// the tracking-parameter set.
func (t Tables) IsTrackingParam(key string) bool {
	_, ok := t.tracking[key]

	return ok
}

// MatchShortener returns the first shortener entry contained in host.
func (t Tables) MatchShortener(host string) (string, bool) {
	for _, s := range t.shorteners {
		if s != "" && containsFold(host, s) {
			return s, true
		}
	}

	return "", false
}
