// Package cleaner implements the URL normalization engine: tracking-parameter
// removal, host-specific unwrap rules and best-effort shortener resolution.
package cleaner

import (
	"context"

	"linkcleaner/pkg/domain"
)

// Cleaner is the function surface consumed by the API and the CLI. None of its
// methods return errors; every failure degrades to leaving the link as given.
//
//go:generate mockgen -package mockcleaner -source=interface.go -destination=mock/mockcleaner.go *
type Cleaner interface {
	// Normalize strips tracking metadata and applies unwrap rules. No I/O.
	Normalize(input string) string
	// Resolve returns the first redirect target of a shortened link, or input.
	Resolve(ctx context.Context, input string) string
	// Clean runs normalize, then (when resolve is set) resolve and a second
	// normalize on the resolved target.
	Clean(ctx context.Context, input string, resolve bool) domain.CleanResult
	// Tables returns the reference tables the cleaner was built with.
	Tables() domain.Tables
}
