package app

import (
	"testing"

	"github.com/ravik808/sitetrust/internal/capture"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"SITETRUST_ADDR", "SITETRUST_DATA_DIR", "SITETRUST_PUBLIC_URL",
		"SITETRUST_HISTORY", "SITETRUST_CAPTURE_BACKEND", "SITETRUST_DNS_SERVER",
		"GEMINI_API_KEY", "GEMINI_MODEL", "CHROME_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := ConfigFromEnv()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.HistoryEnabled {
		t.Error("history must default to enabled")
	}
	if cfg.CaptureCfg.Backend != capture.BackendChromedp {
		t.Errorf("Backend = %q", cfg.CaptureCfg.Backend)
	}
	if cfg.OracleCfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.OracleCfg.Model)
	}
	if cfg.ProbeCfg.DNSServer != "8.8.8.8:53" {
		t.Errorf("DNSServer = %q", cfg.ProbeCfg.DNSServer)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SITETRUST_ADDR", ":9090")
	t.Setenv("SITETRUST_DATA_DIR", "/var/lib/sitetrust")
	t.Setenv("SITETRUST_PUBLIC_URL", "https://trust.example.com")
	t.Setenv("SITETRUST_HISTORY", "0")
	t.Setenv("SITETRUST_CAPTURE_BACKEND", "http")
	t.Setenv("SITETRUST_DNS_SERVER", "1.1.1.1:53")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")

	cfg := ConfigFromEnv()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DataDir != "/var/lib/sitetrust" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.PublicURL != "https://trust.example.com" {
		t.Errorf("PublicURL = %q", cfg.PublicURL)
	}
	if cfg.HistoryEnabled {
		t.Error("SITETRUST_HISTORY=0 must disable history")
	}
	if cfg.CaptureCfg.Backend != capture.BackendHTTP {
		t.Errorf("Backend = %q", cfg.CaptureCfg.Backend)
	}
	if cfg.ProbeCfg.DNSServer != "1.1.1.1:53" {
		t.Errorf("DNSServer = %q", cfg.ProbeCfg.DNSServer)
	}
	if cfg.OracleCfg.APIKey != "test-key" || cfg.OracleCfg.Model != "gemini-2.5-pro" {
		t.Errorf("oracle config = %+v", cfg.OracleCfg)
	}
	if cfg.CaptureCfg.ChromePath != "/usr/bin/chromium" {
		t.Errorf("ChromePath = %q", cfg.CaptureCfg.ChromePath)
	}
}

func TestPublicURL_DerivedFromAddr(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{PublicURL: "https://trust.example.com", Addr: ":8080"}, "https://trust.example.com"},
		{"bare port", Config{Addr: ":8080"}, "http://localhost:8080"},
		{"host and port", Config{Addr: "0.0.0.0:9000"}, "http://0.0.0.0:9000"},
		{"empty", Config{}, "http://localhost:8080"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := publicURL(&tc.cfg); got != tc.want {
				t.Errorf("publicURL = %q, want %q", got, tc.want)
			}
		})
	}
}
