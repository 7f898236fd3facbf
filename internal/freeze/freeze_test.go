// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package freeze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		pkg     string
		version string
		ok      bool
	}{
		{
			name: "comment",
			line: "# comment",
		},
		{
			name: "blank",
			line: "   ",
		},
		{
			name: "editable install",
			line: "-e ./local",
		},
		{
			name: "requirements include",
			line: "-r other.txt",
		},
		{
			name:    "standard pin",
			line:    "pkgA==1.2.3",
			pkg:     "pkga",
			version: "1.2.3",
			ok:      true,
		},
		{
			name: "no exact-version delimiter",
			line: "pkgA>=1.2.3",
		},
		{
			name:    "version split on first delimiter only",
			line:    "weird==1.0==x",
			pkg:     "weird",
			version: "1.0==x",
			ok:      true,
		},
		{
			name:    "name normalized",
			line:    "Typing_Extensions==4.12.2",
			pkg:     "typing-extensions",
			version: "4.12.2",
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, version, ok := ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.pkg, pkg)
				assert.Equal(t, tt.version, version)
			}
		})
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"-e ./local",
		"pkgA==1.2.3",
		"pkgB==2.0",
	}, "\n")

	installed, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, Installed{"pkga": "1.2.3", "pkgb": "2.0"}, installed)
}

func TestParse_DuplicatesLastWins(t *testing.T) {
	input := "numpy==1.26.0\nnumpy==2.0.1\n"

	installed, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, Installed{"numpy": "2.0.1"}, installed)
}

func TestParse_JSONListing(t *testing.T) {
	input := `[
  {"name": "NumPy", "version": "2.0.1"},
  {"name": "scanpy", "version": "1.10.2"},
  {"name": "broken"}
]`

	installed, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, Installed{"numpy": "2.0.1", "scanpy": "1.10.2"}, installed)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("/nonexistent/freeze.txt")
	assert.Error(t, err)
}
