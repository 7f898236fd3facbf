// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package jupytercfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Defaults(t *testing.T) {
	got, err := Render(DefaultSettings())
	require.NoError(t, err)

	assert.Contains(t, got, "c = get_config()")
	assert.Contains(t, got, "c.ServerApp.root_dir = '/home'")
	assert.Contains(t, got, "c.ServerApp.ip = '0.0.0.0'")
	assert.Contains(t, got, "c.ServerApp.token = ''")
	assert.Contains(t, got, "c.ServerApp.password = ''")
	assert.Contains(t, got, "c.ServerApp.allow_remote_access = True")
	assert.Contains(t, got, "c.ServerApp.disable_check_xsrf = True")
	assert.Contains(t, got, "c.ServerApp.allow_root = True")
	assert.Contains(t, got, "c.ServerApp.notebook_dir = '/home'")
	assert.Contains(t, got, "c.ServerApp.open_browser = False")
}

func TestRender_Overrides(t *testing.T) {
	s := DefaultSettings()
	s.RootDir = "/scratch/users"
	s.IP = "127.0.0.1"
	s.AllowRoot = false

	got, err := Render(s)
	require.NoError(t, err)

	assert.Contains(t, got, "c.ServerApp.root_dir = '/scratch/users'")
	assert.Contains(t, got, "c.ServerApp.notebook_dir = '/scratch/users'")
	assert.Contains(t, got, "c.ServerApp.ip = '127.0.0.1'")
	assert.Contains(t, got, "c.ServerApp.allow_root = False")
}
