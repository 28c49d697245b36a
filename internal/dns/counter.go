// Package dns counts the IP address records published for a website's domain.
package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Lookup errors. None of them are fatal to a token lookup.
var (
	ErrNoWebsite  = errors.New("no website")
	ErrInvalidURL = errors.New("invalid website url")
	ErrNoDomain   = errors.New("website url has no domain")
)

// Resolver resolves a host name to its IPv4 and IPv6 addresses.
// *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Counter counts A and AAAA records for website domains.
type Counter struct {
	resolver Resolver
}

// NewCounter creates a Counter. A nil resolver means net.DefaultResolver.
func NewCounter(resolver Resolver) *Counter {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &Counter{resolver: resolver}
}

// CountRecords returns the number of IP addresses the website's domain resolves to.
// A successful lookup may return zero.
func (c *Counter) CountRecords(ctx context.Context, website string) (int, error) {
	domain, err := Domain(website)
	if err != nil {
		return 0, err
	}

	addrs, err := c.resolver.LookupIPAddr(ctx, domain)
	if err != nil {
		return 0, fmt.Errorf("lookup %s: %w", domain, err)
	}
	return len(addrs), nil
}

// Domain extracts the domain name from an absolute website URL.
// IP literals are not domains.
func Domain(website string) (string, error) {
	if strings.TrimSpace(website) == "" {
		return "", ErrNoWebsite
	}

	u, err := url.Parse(website)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, website)
	}

	host := u.Hostname()
	if host == "" || net.ParseIP(host) != nil {
		return "", fmt.Errorf("%w: %q", ErrNoDomain, website)
	}
	return host, nil
}
