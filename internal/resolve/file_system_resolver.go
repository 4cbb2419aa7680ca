/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// FileSystemResolver defines the interface for reading the components directory
type FileSystemResolver interface {
	ListDirectories(root string) ([]string, error)
	FileExists(path string) (bool, error)
	ReadTemplate(fileURI string) (string, error)
}

// DefaultFileSystemResolver implements FileSystemResolver on the local file system
type DefaultFileSystemResolver struct{}

// ListDirectories returns the names of the immediate subdirectories of root in sorted order.
// Hidden directories are ignored.
func (fsr *DefaultFileSystemResolver) ListDirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read components directory %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	sort.Strings(dirs)

	return dirs, nil
}

// FileExists reports whether path exists and is a regular file
func (fsr *DefaultFileSystemResolver) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// ReadTemplate reads template content from a file:// URI or plain path
func (fsr *DefaultFileSystemResolver) ReadTemplate(fileURI string) (string, error) {
	filePath := parseFileURI(fileURI)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}

// parseFileURI extracts the file path from a file:// URI or treats as relative path
func parseFileURI(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
