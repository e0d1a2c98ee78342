package port

import "context"

// BlocklistRepository answers deny-list membership questions for login gating.
// Implementations evaluate membership only; the pipeline decides what a lookup
// failure means (the read path is fail-open).
type BlocklistRepository interface {
	// IsDomainBlocked matches the lower-cased email domain exactly.
	IsDomainBlocked(ctx context.Context, domain string) (bool, error)
	// IsIPBlocked reports whether ip falls within any blocked range, inclusive
	// on both ends; a NULL range end matches every address above the start.
	IsIPBlocked(ctx context.Context, ip string) (bool, error)
	// IsRegionBlocked reports whether the country code matches a blocked region
	// or ip falls within a blocked region's range. Either condition alone blocks.
	IsRegionBlocked(ctx context.Context, ip, countryCode string) (bool, error)
}
