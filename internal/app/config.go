package app

import (
	"os"

	"github.com/ravik808/sitetrust/internal/capture"
	"github.com/ravik808/sitetrust/internal/oracle"
	"github.com/ravik808/sitetrust/internal/probes"
)

// Config aggregates the per-package configurations plus the runtime options
// that belong to the application itself.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DataDir is the base path for persistent state: the history database
	// and the screenshot store live under it.
	DataDir string

	// PublicURL prefixes stored screenshot URLs. Empty derives an
	// http://localhost... form from Addr.
	PublicURL string

	// HistoryEnabled persists finished assessments when true.
	HistoryEnabled bool

	ProbeCfg   probes.Config
	CaptureCfg capture.Config
	OracleCfg  oracle.Config
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		DataDir:        "./data",
		HistoryEnabled: true,
		ProbeCfg:       probes.DefaultConfig(),
		CaptureCfg:     capture.DefaultConfig(),
		OracleCfg:      oracle.DefaultConfig(),
	}
}

// ConfigFromEnv builds a Config from the environment on top of the defaults.
// Unset variables keep their default; flags may override the result later.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.Addr = envOr("SITETRUST_ADDR", cfg.Addr)
	cfg.DataDir = envOr("SITETRUST_DATA_DIR", cfg.DataDir)
	cfg.PublicURL = envOr("SITETRUST_PUBLIC_URL", cfg.PublicURL)
	cfg.HistoryEnabled = os.Getenv("SITETRUST_HISTORY") != "0"

	cfg.ProbeCfg.DNSServer = envOr("SITETRUST_DNS_SERVER", cfg.ProbeCfg.DNSServer)

	if backend := os.Getenv("SITETRUST_CAPTURE_BACKEND"); backend != "" {
		cfg.CaptureCfg.Backend = capture.Backend(backend)
	}
	cfg.CaptureCfg.ChromePath = envOr("CHROME_PATH", cfg.CaptureCfg.ChromePath)

	cfg.OracleCfg.APIKey = envOr("GEMINI_API_KEY", cfg.OracleCfg.APIKey)
	cfg.OracleCfg.Model = envOr("GEMINI_MODEL", cfg.OracleCfg.Model)

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
