package port

import "context"

// GeoResolver resolves a client IP address to an ISO 3166-1 alpha-2 country code.
// An empty result means the address could not be located.
type GeoResolver interface {
	ResolveCountryCode(ctx context.Context, ip string) (string, error)
}
