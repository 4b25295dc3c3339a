package app

import (
	"fmt"
	"path/filepath"

	"github.com/ravik808/sitetrust/internal/capture"
	"github.com/ravik808/sitetrust/internal/history"
	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/oracle"
	"github.com/ravik808/sitetrust/internal/probes"
	"github.com/ravik808/sitetrust/internal/scoring"
)

// Components bundles the collaborators the orchestrator drives. Fields are
// interfaces so tests can assemble a Components from doubles; NewComponents
// builds the production set.
type Components struct {
	Engine     *scoring.Engine
	Whois      interfaces.WhoisClient
	Certs      interfaces.CertificateProbe
	Hosting    interfaces.HostingProbe
	Capturer   interfaces.ScreenshotCapturer
	Images     interfaces.ImageStore
	Classifier interfaces.Classifier      // nil when no API key is configured
	History    interfaces.AssessmentStore // nil when history is disabled

	// Screenshots is the concrete store so the server can serve its
	// directory; nil when Images is an injected double.
	Screenshots *capture.FSStore
}

// NewComponents builds the production components for a given configuration.
func NewComponents(cfg *Config, logger interfaces.Logger) (*Components, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	capturer, err := capture.NewCapturer(cfg.CaptureCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("new capturer: %w", err)
	}

	screenshots, err := capture.NewFSStore(
		filepath.Join(cfg.DataDir, "screenshots"),
		publicURL(cfg)+"/screenshots",
	)
	if err != nil {
		_ = capturer.Close()
		return nil, fmt.Errorf("new screenshot store: %w", err)
	}

	var classifier interfaces.Classifier
	if cfg.OracleCfg.APIKey != "" {
		gemini, err := oracle.NewGemini(cfg.OracleCfg, logger)
		if err != nil {
			_ = capturer.Close()
			return nil, fmt.Errorf("new oracle: %w", err)
		}
		classifier = gemini
	} else if logger != nil {
		logger.Warn("no AI API key configured; visual analysis will be skipped")
	}

	var store interfaces.AssessmentStore
	if cfg.HistoryEnabled {
		h, err := history.NewStore(filepath.Join(cfg.DataDir, "sitetrust.db"), logger)
		if err != nil {
			_ = capturer.Close()
			return nil, fmt.Errorf("new history store: %w", err)
		}
		store = h
	}

	return &Components{
		Engine:      scoring.NewEngine(nil),
		Whois:       probes.NewWhois(cfg.ProbeCfg, logger),
		Certs:       probes.NewCertificate(cfg.ProbeCfg, logger),
		Hosting:     probes.NewHosting(cfg.ProbeCfg, logger),
		Capturer:    capturer,
		Images:      screenshots,
		Classifier:  classifier,
		History:     store,
		Screenshots: screenshots,
	}, nil
}

// publicURL resolves the base URL screenshots are advertised under.
func publicURL(cfg *Config) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	if addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// Close releases long-lived resources. Any ongoing captures are stopped.
func (c *Components) Close() error {
	var firstErr error
	if c.Capturer != nil {
		if err := c.Capturer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close capturer: %w", err)
		}
	}
	if c.History != nil {
		if err := c.History.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close history: %w", err)
		}
	}
	return firstErr
}
