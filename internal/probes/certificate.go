package probes

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"net"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// Module: probes (certificate)
// Completes a TLS handshake against hostname:443 and summarizes the leaf
// certificate. The handshake skips chain verification so hosts serving
// expired or mismatched certificates still yield a record; validity is
// judged afterwards from the time window and hostname match.
type Certificate struct {
	timeout time.Duration
	logger  interfaces.Logger
}

// NewCertificate creates a Certificate probe with the given dial timeout.
func NewCertificate(cfg Config, logger interfaces.Logger) *Certificate {
	return &Certificate{timeout: cfg.Timeout, logger: logger}
}

// Probe dials hostname:443 and returns the leaf certificate summary, or nil
// when no certificate was obtainable (closed port, plain HTTP host, network
// error).
func (p *Certificate) Probe(ctx context.Context, hostname string) *model.CertificateRecord {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.timeout},
		Config: &tls.Config{
			ServerName:         hostname,
			InsecureSkipVerify: true,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(hostname, "443"))
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("tls handshake failed",
				interfaces.Field{Key: "hostname", Value: hostname},
				interfaces.Field{Key: "error", Value: err})
		}
		return nil
	}
	defer conn.Close()

	certs := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil
	}
	return summarizeCertificate(certs[0], hostname, time.Now())
}

// summarizeCertificate flattens the fields the certificate scorer reads.
// Valid means the reference time falls inside the certificate's window and
// the certificate covers hostname; chain trust is deliberately not checked,
// the issuer table handles that dimension.
func summarizeCertificate(cert *x509.Certificate, hostname string, now time.Time) *model.CertificateRecord {
	valid := !now.Before(cert.NotBefore) &&
		!now.After(cert.NotAfter) &&
		cert.VerifyHostname(hostname) == nil

	return &model.CertificateRecord{
		Valid:         valid,
		Subject:       nameMap(cert.Subject),
		Issuer:        nameMap(cert.Issuer),
		ValidFrom:     cert.NotBefore.UTC().Format(time.RFC3339),
		ValidTo:       cert.NotAfter.UTC().Format(time.RFC3339),
		DaysRemaining: int(cert.NotAfter.Sub(now).Hours() / 24),
	}
}

func nameMap(name pkix.Name) map[string]string {
	m := map[string]string{}
	if name.CommonName != "" {
		m["common_name"] = name.CommonName
	}
	if len(name.Organization) > 0 {
		m["organization"] = name.Organization[0]
	}
	if len(name.Country) > 0 {
		m["country"] = name.Country[0]
	}
	return m
}
