package capture

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps screenshots content-addressed on the filesystem: the SHA-256
// of the image names the file and the first two hash characters shard the
// directory. Identical screenshots (common for error pages and parked
// domains) are stored once.
type FSStore struct {
	dir       string
	publicURL string
}

// NewFSStore creates a store rooted at dir. publicURL is the URL prefix the
// server mounts dir under; Store returns URLs beneath it.
func NewFSStore(dir, publicURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot directory: %w", err)
	}
	return &FSStore{dir: dir, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

// Dir returns the store's root directory, for static file serving.
func (s *FSStore) Dir() string { return s.dir }

// Store writes png if its hash is new and returns the public URL it will be
// served from.
func (s *FSStore) Store(png []byte) (string, error) {
	if len(png) == 0 {
		return "", fmt.Errorf("empty screenshot")
	}

	hash := sha256.Sum256(png)
	name := hex.EncodeToString(hash[:])

	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return s.url(name), nil
	}
	if err := atomicWriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return s.url(name), nil
}

// url mirrors path: the two-character shard appears in both so a plain file
// server can resolve it.
func (s *FSStore) url(name string) string {
	return s.publicURL + "/" + name[:2] + "/" + name + ".png"
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.dir, name[:2], name+".png")
}

// atomicWriteFile writes data via temp file + rename so a crashed write never
// leaves a truncated image behind.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
