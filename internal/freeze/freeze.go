// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package freeze parses captured package listings into a mapping from
// normalized package name to version string. Both `pip freeze` text and
// `pip list --format=json` documents are accepted.
package freeze

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/pypi"
)

// Installed maps normalized package names to their raw version strings.
type Installed map[string]string

// ParseLine parses a single freeze line into (normalized name, version, ok).
// Blank lines, comments, flag markers (-r/-e/--index-url and friends) and
// anything without an exact-version delimiter are skipped, not errors.
func ParseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
		return "", "", false
	}

	name, version, found := strings.Cut(line, "==")
	if !found {
		return "", "", false
	}

	return pypi.Normalize(name), version, true
}

// Parse reads a listing and returns the installed mapping. Later duplicate
// names overwrite earlier ones, matching pip's own last-wins behavior when a
// freeze file has been concatenated.
func Parse(r io.Reader) (Installed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading freeze input: %w", err)
	}

	if isJSONListing(data) {
		return parseJSON(data), nil
	}

	installed := Installed{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name, version, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		installed[name] = version
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading freeze input: %w", err)
	}

	log.Debugf("freeze parsed: packages=%d", len(installed))
	return installed, nil
}

// ParseFile opens and parses a listing file. A missing file is the one fatal
// error class in the pipeline; everything else degrades.
func ParseFile(path string) (Installed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open freeze file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// isJSONListing reports whether the listing looks like pip list JSON output.
func isJSONListing(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// parseJSON extracts name/version pairs from a pip list --format=json
// document. Entries without both fields are skipped silently, mirroring the
// text parser's tolerance.
func parseJSON(data []byte) Installed {
	installed := Installed{}
	gjson.ParseBytes(data).ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").String()
		version := entry.Get("version").String()
		if name != "" && version != "" {
			installed[pypi.Normalize(name)] = version
		}
		return true
	})
	log.Debugf("json listing parsed: packages=%d", len(installed))
	return installed
}
