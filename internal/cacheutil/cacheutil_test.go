// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setupCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PKGSYNC_CACHE_DIR", dir)
	t.Setenv("PKGSYNC_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := setupCacheDir(t)
	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv("PKGSYNC_CACHE_DIR", "")
	got, ok := Dir()
	if !ok {
		t.Skip("no user cache dir on this platform")
	}
	assert.Equal(t, "pkgsync", filepath.Base(got))
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "0", want: false},
		{value: "false", want: false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("PKGSYNC_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	setupCacheDir(t)

	key := "show:numpy==2.0.1"
	data := []byte("Required-by: pandas, scipy\n")

	assert.NoError(t, Write([]string{"pip"}, key, data))

	entry, ok := Read([]string{"pip"}, key)
	assert.True(t, ok)
	assert.Equal(t, key, entry.Key)
	// Read trims trailing whitespace.
	assert.Equal(t, []byte("Required-by: pandas, scipy"), entry.Data)
	assert.NotEqual(t, key, entry.EncodedKey, "key should be hashed on disk")
}

func TestRead_Miss(t *testing.T) {
	setupCacheDir(t)

	_, ok := Read([]string{"pip"}, "show:absent==0.0.0")
	assert.False(t, ok)
}

func TestReadWrite_Disabled(t *testing.T) {
	setupCacheDir(t)
	t.Setenv("PKGSYNC_CACHE", "0")

	assert.NoError(t, Write([]string{"pip"}, "k", []byte("v")))
	_, ok := Read([]string{"pip"}, "k")
	assert.False(t, ok)
}

func TestEnsureBaseDir(t *testing.T) {
	dir := setupCacheDir(t)

	base, ok, err := EnsureBaseDir()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, base)

	info, err := os.Stat(base)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPurge(t *testing.T) {
	dir := setupCacheDir(t)

	assert.NoError(t, Write([]string{"pip"}, "old", []byte("x")))
	assert.NoError(t, Write([]string{"pip"}, "new", []byte("y")))

	// Age one entry past the retention window.
	oldPath, ok := entryPath([]string{"pip"}, "old")
	assert.True(t, ok)
	past := time.Now().Add(-48 * time.Hour)
	assert.NoError(t, os.Chtimes(oldPath, past, past))

	assert.NoError(t, Purge(24))

	_, ok = Read([]string{"pip"}, "old")
	assert.False(t, ok, "aged entry should be purged")
	_, ok = Read([]string{"pip"}, "new")
	assert.True(t, ok, "fresh entry should survive")

	// Purge with hours <= 0 is a no-op.
	assert.NoError(t, Purge(0))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}
