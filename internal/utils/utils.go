package utils

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// NormalizeURL validates raw user input and returns the normalized URL plus
// its ASCII hostname. Schemeless input defaults to https. Fragments and
// userinfo are dropped; internationalized hostnames are converted to
// punycode so scorers and probes all see one canonical form.
func NormalizeURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", "", fmt.Errorf("url %q has no hostname", raw)
	}
	if puny, perr := idna.Lookup.ToASCII(host); perr == nil {
		host = puny
	}

	// Preserve non-default ports only.
	port := u.Port()
	if port == "" || (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = host
	} else {
		u.Host = net.JoinHostPort(host, port)
	}

	u.Fragment = ""
	u.User = nil

	return u.String(), host, nil
}

// IsIPv4Literal reports whether host is exactly a dotted-quad IPv4 address.
func IsIPv4Literal(host string) bool {
	return ipv4Pattern.MatchString(host)
}

// RegistrableDomain returns the last two labels of host ("www.google.com" ->
// "google.com") for WHOIS lookups. There is no public-suffix table here; two
// labels cover the common case, and IP literals pass through unchanged.
func RegistrableDomain(host string) string {
	if IsIPv4Literal(host) {
		return host
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// RegistrableLabel returns the label left of the TLD ("secure-paypal.tk" ->
// "secure-paypal"), the part lookalike matching compares against brand names.
func RegistrableLabel(host string) string {
	if IsIPv4Literal(host) {
		return host
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return labels[len(labels)-2]
}
