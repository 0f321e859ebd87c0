// Package artifact resolves the launcher jar the forked JVM runs. The jar is
// shipped alongside the tool; a locator turns its logical name into a concrete
// file path, optionally verifying integrity against a checksum manifest.
package artifact

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ChecksumManifest is the optional .checksums file sitting next to the jars.
type ChecksumManifest struct {
	Version int               `yaml:"version"`
	Hashes  map[string]string `yaml:"hashes"`
}

// Locator resolves a logical artifact name to a file path on disk.
type Locator interface {
	Locate(name string) (string, error)
}

// DirLocator resolves artifacts as <dir>/<name>.jar. When the directory holds
// a .checksums manifest, the resolved jar is verified against it before being
// handed out.
type DirLocator struct {
	dir string
}

// NewDirLocator returns a locator rooted at dir.
func NewDirLocator(dir string) *DirLocator {
	return &DirLocator{dir: dir}
}

func (l *DirLocator) Locate(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("artifact name is empty")
	}

	path := filepath.Join(l.dir, name+".jar")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact %q not found at %s: %w", name, path, err)
	}

	manifest, err := loadManifest(l.dir)
	if err != nil {
		return "", err
	}
	if manifest != nil {
		expected, ok := manifest.Hashes[filepath.Base(path)]
		if !ok {
			return "", fmt.Errorf("artifact %q has no hash in checksums manifest", name)
		}
		if err := verifyFileHash(path, expected); err != nil {
			return "", err
		}
	}

	return path, nil
}

func loadManifest(dir string) (*ChecksumManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ".checksums"))
	if err != nil {
		if os.IsNotExist(err) {
			// Manifest is optional; without one, artifacts are trusted as-is.
			return nil, nil
		}
		return nil, fmt.Errorf("read checksums manifest: %w", err)
	}

	var manifest ChecksumManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse checksums manifest: %w", err)
	}
	if manifest.Version != 1 {
		return nil, fmt.Errorf("unsupported checksums version: %d", manifest.Version)
	}
	return &manifest, nil
}

// ComputeHash computes the BLAKE3 hash of a file.
func ComputeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func verifyFileHash(path, expected string) error {
	actual, err := ComputeHash(path)
	if err != nil {
		return fmt.Errorf("failed to compute hash: %w", err)
	}
	if actual != expected {
		return fmt.Errorf("hash mismatch for %s: expected %s, got %s",
			filepath.Base(path), expected, actual)
	}
	return nil
}
