package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrEmptyPath     = errors.New("empty path not allowed")
	ErrRelativePath  = errors.New("relative paths are not allowed")
	ErrUncleanPath   = errors.New("path is not in clean form")
	ErrNotCharDevice = errors.New("not a character device")
	ErrNotSocket     = errors.New("not a socket")
)

// ValidateDevice checks that path names an existing character device
func ValidateDevice(path string) error {
	info, err := statAbsolute(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("%w: %s", ErrNotCharDevice, path)
	}
	return nil
}

// ValidateSocket checks that path names an existing Unix socket
func ValidateSocket(path string) error {
	info, err := statAbsolute(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("%w: %s", ErrNotSocket, path)
	}
	return nil
}

// statAbsolute rejects anything but a clean absolute path, then stats it.
// Symlinks such as /dev/tpm -> tpm0 are followed.
func statAbsolute(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("%w: %s", ErrRelativePath, path)
	}
	if filepath.Clean(path) != path {
		return nil, fmt.Errorf("%w: %s", ErrUncleanPath, path)
	}
	return os.Stat(path)
}
