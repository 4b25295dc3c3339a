package probes

import (
	"context"
	"time"

	whois "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
)

// Module: probes (whois)
// Queries WHOIS for a registrable domain and extracts the fields the age
// scorer needs. Lookup never fails observably: any error collapses into a
// record whose optional fields are empty.
type Whois struct {
	client *whois.Client
	logger interfaces.Logger
}

// NewWhois creates a Whois probe with the given network timeout.
func NewWhois(cfg Config, logger interfaces.Logger) *Whois {
	return &Whois{
		client: whois.NewClient().SetTimeout(cfg.Timeout),
		logger: logger,
	}
}

const whoisUnavailable = "WHOIS lookup failed"

// Lookup queries WHOIS for domain. The underlying client has no context
// support, so the query runs in a goroutine and a ctx cancellation abandons
// it; the client's own timeout reaps the socket.
func (w *Whois) Lookup(ctx context.Context, domain string) *model.WhoisRecord {
	type result struct {
		raw string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		raw, err := w.client.Whois(domain)
		ch <- result{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		if w.logger != nil {
			w.logger.Warn("whois lookup abandoned",
				interfaces.Field{Key: "domain", Value: domain},
				interfaces.Field{Key: "error", Value: ctx.Err()})
		}
		return &model.WhoisRecord{Raw: whoisUnavailable}
	case res := <-ch:
		if res.err != nil {
			if w.logger != nil {
				w.logger.Warn("whois lookup failed",
					interfaces.Field{Key: "domain", Value: domain},
					interfaces.Field{Key: "error", Value: res.err})
			}
			return &model.WhoisRecord{Raw: whoisUnavailable}
		}
		return parseWhois(res.raw)
	}
}

// parseWhois maps a raw WHOIS response onto a WhoisRecord. Parse failures
// (unregistered domains, rate-limit notices, exotic registries) keep the raw
// text and leave the optional fields empty, which the age scorer treats as
// "age unknown".
func parseWhois(raw string) *model.WhoisRecord {
	rec := &model.WhoisRecord{Raw: raw}

	info, err := whoisparser.Parse(raw)
	if err != nil || info.Domain == nil {
		return rec
	}

	rec.DomainName = info.Domain.Domain
	rec.CreationDate = info.Domain.CreatedDate
	rec.ExpirationDate = info.Domain.ExpirationDate
	if info.Registrar != nil {
		rec.Registrar = info.Registrar.Name
	}

	// Registries answer with wildly varying date formats. When the parser
	// already recognized the timestamp, normalize to RFC3339 so the age
	// scorer's layout list always hits.
	if info.Domain.CreatedDateInTime != nil {
		rec.CreationDate = info.Domain.CreatedDateInTime.UTC().Format(time.RFC3339)
	}
	if info.Domain.ExpirationDateInTime != nil {
		rec.ExpirationDate = info.Domain.ExpirationDateInTime.UTC().Format(time.RFC3339)
	}

	return rec
}
