// Package workspace lists the image files of a working directory and
// computes where transformed copies are written.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const OutputDirName = "Modified"

var (
	ErrNoDirectory       = errors.New("no working directory")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// CheckImage returns ErrUnsupportedFormat when name is not on the allow-list.
func CheckImage(name string) error {
	if !IsImage(name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
	return nil
}

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	if dir == "" {
		return ErrNoDirectory
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoDirectory, dir)
	}
	return nil
}

// List returns the sorted names of regular image files directly inside dir.
func List(dir string) ([]string, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if IsImage(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func OutputDir(workdir string) string {
	return filepath.Join(workdir, OutputDirName)
}

func OutputPath(workdir, name string) string {
	return filepath.Join(OutputDir(workdir), filepath.Base(name))
}

// EnsureOutputDir creates the output directory if needed and returns it.
func EnsureOutputDir(workdir string) (string, error) {
	if err := CheckDir(workdir); err != nil {
		return "", err
	}
	dir := OutputDir(workdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}
