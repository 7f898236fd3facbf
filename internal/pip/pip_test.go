// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pip

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkgsync/pkgsync/internal/cacheutil"
)

func TestParseRequiredBy(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "multiple dependents",
			output: `Name: numpy
Version: 2.0.1
Required-by: pandas, scipy, scanpy
`,
			want: []string{"pandas", "scipy", "scanpy"},
		},
		{
			name: "empty field",
			output: `Name: leafpkg
Required-by:
`,
			want: nil,
		},
		{
			name:   "field absent",
			output: "Name: weird\nVersion: 0.1\n",
			want:   nil,
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "whitespace trimmed",
			output: "Required-by:  a ,  b ,\n",
			want:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRequiredBy(tt.output))
		})
	}
}

func TestRequiredBy_MissingBinaryFailsOpen(t *testing.T) {
	t.Setenv("PKGSYNC_CACHE", "0")

	cli := CLI{Command: "definitely-not-a-real-pip"}
	deps := cli.RequiredBy(context.Background(), "numpy", "2.0.1")
	assert.Nil(t, deps)
}

func TestRequiredBy_TimeoutFailsOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sleep")
	}
	t.Setenv("PKGSYNC_CACHE", "0")

	script := filepath.Join(t.TempDir(), "slowpip")
	assert.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755))

	cli := CLI{Command: script, Timeout: 50 * time.Millisecond}
	start := time.Now()
	deps := cli.RequiredBy(context.Background(), "numpy", "")
	assert.Nil(t, deps)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRequiredBy_FakePipAndCache(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on shell script stub")
	}
	t.Setenv("PKGSYNC_CACHE_DIR", t.TempDir())
	t.Setenv("PKGSYNC_CACHE", "")

	bin := t.TempDir()
	script := filepath.Join(bin, "fakepip")
	body := "#!/bin/sh\necho 'Name: numpy'\necho 'Required-by: pandas, scipy'\n"
	assert.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	cli := CLI{Command: script}
	deps := cli.RequiredBy(context.Background(), "numpy", "2.0.1")
	assert.Equal(t, []string{"pandas", "scipy"}, deps)

	// The output should now be cached under the versioned key.
	entry, ok := cacheutil.Read([]string{"pip"}, "show:numpy==2.0.1")
	assert.True(t, ok)
	assert.Contains(t, string(entry.Data), "Required-by")

	// A second call must not need the binary at all.
	cached := CLI{Command: "definitely-not-a-real-pip"}
	deps = cached.RequiredBy(context.Background(), "numpy", "2.0.1")
	assert.Equal(t, []string{"pandas", "scipy"}, deps)
}
