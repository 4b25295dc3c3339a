package probes

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// Module: probes (hosting)
// Resolves a hostname to its first IPv4 address plus the reverse-DNS name
// that address maps back to. Cloud and CDN fleets put their brand in the PTR
// record, which is what the hosting scorer keys on.
type Hosting struct {
	resolver *net.Resolver
	timeout  time.Duration
	logger   interfaces.Logger
}

// NewHosting creates a Hosting probe. A non-empty cfg.DNSServer pins lookups
// to that resolver instead of the system one; containerized deployments often
// have no useful /etc/resolv.conf.
func NewHosting(cfg Config, logger interfaces.Logger) *Hosting {
	resolver := net.DefaultResolver
	if cfg.DNSServer != "" {
		server := cfg.DNSServer
		dialTimeout := cfg.Timeout
		resolver = &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				d := net.Dialer{Timeout: dialTimeout}
				return d.DialContext(ctx, "udp", server)
			},
		}
	}
	return &Hosting{resolver: resolver, timeout: cfg.Timeout, logger: logger}
}

// Probe resolves hostname and attaches the PTR name of the first address.
// IP-literal hostnames pass through the forward lookup unchanged. Returns nil
// when forward resolution fails; a missing PTR record is not a failure.
func (p *Hosting) Probe(ctx context.Context, hostname string) *model.HostingRecord {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(ctx, hostname)
	if err != nil || len(addrs) == 0 {
		if p.logger != nil {
			p.logger.Warn("dns resolution failed",
				interfaces.Field{Key: "hostname", Value: hostname},
				interfaces.Field{Key: "error", Value: err})
		}
		return nil
	}

	rec := &model.HostingRecord{IP: pickIPv4(addrs)}
	if names, rerr := p.resolver.LookupAddr(ctx, rec.IP); rerr == nil && len(names) > 0 {
		rec.Reverse = strings.TrimSuffix(names[0], ".")
	}
	return rec
}

// pickIPv4 prefers the first IPv4 address; dual-stacked hosts often list
// their IPv6 address first and PTR coverage is better on v4.
func pickIPv4(addrs []string) string {
	for _, a := range addrs {
		if ip := net.ParseIP(a); ip != nil && ip.To4() != nil {
			return a
		}
	}
	return addrs[0]
}
