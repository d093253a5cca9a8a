package domain

import "strings"

// CleanResult describes the outcome of running a link through the full
// cleaning pipeline.
type CleanResult struct {
	// Input is the text as given by the caller.
	Input string `json:"input"`
	// Output is the cleaned link, or Input when nothing could be done.
	Output string `json:"output"`
	// Resolved is the raw redirect target returned by a shortener probe.
	// Empty when no probe ran or the probe yielded nothing.
	Resolved string `json:"resolved,omitempty"`
	// Rule is the name of the unwrap rule that fired on the first pass, if any.
	Rule string `json:"rule,omitempty"`
	// Changed reports whether Output differs from Input beyond encoding noise.
	Changed bool `json:"changed"`
}

// containsFold is strings.Contains with ASCII case folding; hostnames are case
// insensitive but url.Parse keeps whatever case the user typed.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
