package server

// Config carries the server's runtime options.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// ScreenshotDir, when set, is served read-only under /screenshots/.
	ScreenshotDir string

	// Version is reported by the health endpoint.
	Version string
}
