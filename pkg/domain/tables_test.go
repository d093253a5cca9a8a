package domain_test

import (
	"linkcleaner/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTables_Contents(t *testing.T) {
	tables := domain.DefaultTables()

	params := tables.TrackingParams()
	require.Contains(t, params, "utm_source")
	require.Contains(t, params, "rcm")
	require.Contains(t, params, "fbclid")
	require.Contains(t, params, "gclid")
	require.Equal(t, "utm_source", params[0], "order must be preserved")

	shorteners := tables.Shorteners()
	require.Contains(t, shorteners, "bit.ly")
	require.Contains(t, shorteners, "t.co")
	require.Contains(t, shorteners, "tinyurl.com")
}

func TestTables_AccessorsReturnCopies(t *testing.T) {
	tables := domain.DefaultTables()

	params := tables.TrackingParams()
	params[0] = "mutated"
	require.Equal(t, "utm_source", tables.TrackingParams()[0])

	shorteners := tables.Shorteners()
	shorteners[0] = "mutated"
	require.Equal(t, "bit.ly", tables.Shorteners()[0])
}

func TestNewTables_CopiesInput(t *testing.T) {
	params := []string{"a", "b"}
	tables := domain.NewTables(params, nil)
	params[0] = "z"

	require.True(t, tables.IsTrackingParam("a"))
	require.False(t, tables.IsTrackingParam("z"))
	require.Empty(t, tables.Shorteners())
}

func TestTables_IsTrackingParam_ExactMatch(t *testing.T) {
	tables := domain.DefaultTables()

	require.True(t, tables.IsTrackingParam("utm_source"))
	require.True(t, tables.IsTrackingParam("trkInfo"))
	require.False(t, tables.IsTrackingParam("trkinfo"), "keys are case sensitive")
	require.False(t, tables.IsTrackingParam("resource"))
	require.False(t, tables.IsTrackingParam("utm"))
}

func TestTables_MatchShortener(t *testing.T) {
	tables := domain.DefaultTables()

	cases := []struct {
		host  string
		entry string
		ok    bool
	}{
		{host: "bit.ly", entry: "bit.ly", ok: true},
		{host: "BIT.LY", entry: "bit.ly", ok: true},
		{host: "j.mp.bit.ly", entry: "bit.ly", ok: true},
		{host: "t.co", entry: "t.co", ok: true},
		{host: "example.com", ok: false},
		{host: "", ok: false},
	}

	for _, tc := range cases {
		entry, ok := tables.MatchShortener(tc.host)
		require.Equal(t, tc.ok, ok, tc.host)
		require.Equal(t, tc.entry, entry, tc.host)
	}
}
