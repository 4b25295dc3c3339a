package probes

import "time"

// Config is shared by the whois, certificate and hosting probes.
type Config struct {
	// Timeout bounds a single network exchange (whois query, TLS
	// handshake, DNS lookup).
	Timeout time.Duration

	// DNSServer is the resolver used for hosting lookups, host:port.
	// Empty means the system resolver.
	DNSServer string
}

func DefaultConfig() Config {
	return Config{
		Timeout:   5 * time.Second,
		DNSServer: "8.8.8.8:53",
	}
}
