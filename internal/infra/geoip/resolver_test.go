package geoip

import (
	"context"
	"testing"
)

func TestStaticResolver(t *testing.T) {
	resolver := NewStaticResolver("de")

	country, err := resolver.ResolveCountryCode(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("ResolveCountryCode returned error: %v", err)
	}
	if country != "DE" {
		t.Fatalf("expected DE, got %s", country)
	}
}

func TestCIDRResolver(t *testing.T) {
	resolver, err := NewCIDRResolver(map[string]string{
		"203.0.113.0/24": "fr",
		"203.0.0.0/8":    "us",
	}, "US")
	if err != nil {
		t.Fatalf("NewCIDRResolver returned error: %v", err)
	}

	cases := []struct {
		ip   string
		want string
	}{
		{"203.0.113.50", "FR"},
		{"203.5.5.5", "US"},
		{"198.51.100.1", "US"},
		{"not-an-ip", "US"},
	}

	for _, tc := range cases {
		got, err := resolver.ResolveCountryCode(context.Background(), tc.ip)
		if err != nil {
			t.Fatalf("ResolveCountryCode(%s) returned error: %v", tc.ip, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveCountryCode(%s) = %s, want %s", tc.ip, got, tc.want)
		}
	}
}

func TestCIDRResolverRejectsInvalidRange(t *testing.T) {
	if _, err := NewCIDRResolver(map[string]string{"bad-range": "us"}, "US"); err == nil {
		t.Fatal("expected error for invalid CIDR range")
	}
}
