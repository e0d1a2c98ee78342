package geoip

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"github.com/dfrgroup/hrms/internal/core/port"
)

// StaticResolver answers every lookup with a fixed country code. It stands in
// for a real geolocation provider in development environments.
type StaticResolver struct {
	country string
}

// NewStaticResolver builds a resolver pinned to the supplied country code.
func NewStaticResolver(country string) *StaticResolver {
	if country == "" {
		country = "US"
	}
	return &StaticResolver{country: strings.ToUpper(country)}
}

// ResolveCountryCode returns the configured country for any address.
func (r *StaticResolver) ResolveCountryCode(_ context.Context, _ string) (string, error) {
	return r.country, nil
}

type cidrEntry struct {
	prefix  netip.Prefix
	country string
}

// CIDRResolver maps client addresses onto country codes via configured CIDR
// ranges, falling back to a default for unmatched or unparsable addresses.
type CIDRResolver struct {
	entries        []cidrEntry
	defaultCountry string
}

// NewCIDRResolver parses the prefix-to-country table. Longer prefixes win when
// ranges overlap.
func NewCIDRResolver(ranges map[string]string, defaultCountry string) (*CIDRResolver, error) {
	if defaultCountry == "" {
		defaultCountry = "US"
	}

	entries := make([]cidrEntry, 0, len(ranges))
	for cidr, country := range ranges {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			return nil, fmt.Errorf("parse geoip range %q: %w", cidr, err)
		}
		entries = append(entries, cidrEntry{prefix: prefix, country: strings.ToUpper(country)})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].prefix.Bits() > entries[j].prefix.Bits()
	})

	return &CIDRResolver{entries: entries, defaultCountry: strings.ToUpper(defaultCountry)}, nil
}

// ResolveCountryCode finds the most specific range containing the address.
func (r *CIDRResolver) ResolveCountryCode(_ context.Context, ip string) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return r.defaultCountry, nil
	}

	for _, entry := range r.entries {
		if entry.prefix.Contains(addr) {
			return entry.country, nil
		}
	}

	return r.defaultCountry, nil
}

var (
	_ port.GeoResolver = (*StaticResolver)(nil)
	_ port.GeoResolver = (*CIDRResolver)(nil)
)
