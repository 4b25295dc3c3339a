package cli

import (
	"flag"
	"io"
)

// CLIArgs are the command-line overrides applied on top of the environment
// configuration. Zero values mean "use the environment or the default".
type CLIArgs struct {
	// Addr is the listen address override, e.g. ":8080".
	Addr string

	// DataDir is the root directory for the assessment history database and
	// stored screenshots.
	DataDir string

	// EnvFile, when set, is loaded into the environment before the config
	// is read.
	EnvFile string

	// CaptureBackend selects the page capture backend (chromedp or http).
	CaptureBackend string

	// PublicURL is the externally visible base URL used in screenshot links.
	PublicURL string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("sitetrustd", flag.ContinueOnError)
	var (
		addr      = fs.String("addr", "", "Listen address (overrides SITETRUST_ADDR)")
		dataDir   = fs.String("data-dir", "", "Data directory for history and screenshots (overrides SITETRUST_DATA_DIR)")
		envFile   = fs.String("env-file", "", "Path to a .env file loaded before reading the environment")
		backend   = fs.String("capture", "", "Capture backend: chromedp or http (overrides SITETRUST_CAPTURE_BACKEND)")
		publicURL = fs.String("public-url", "", "Public base URL for screenshot links (overrides SITETRUST_PUBLIC_URL)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &CLIArgs{
		Addr:           *addr,
		DataDir:        *dataDir,
		EnvFile:        *envFile,
		CaptureBackend: *backend,
		PublicURL:      *publicURL,
		RawArgs:        args,
	}, nil
}
