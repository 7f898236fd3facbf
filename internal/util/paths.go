// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-supplied path to an absolute one. A leading "~/"
// is expanded to the home directory and relative paths are joined onto the
// current working directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", os.ErrInvalid
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = filepath.Join(cwd, path)
	}

	return path, nil
}

// IsExistingFile checks if the given path exists and is not a directory.
func IsExistingFile(path string) bool {
	if info, err := os.Stat(path); err == nil {
		return !info.IsDir()
	}
	return false
}
