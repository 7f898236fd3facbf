// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package jupytercfg renders the JupyterLab server configuration consumed by
// the notebook server at startup. The rendered file is plain key assignments;
// authentication is intentionally disabled because the deployment sits behind
// an authenticating proxy.
package jupytercfg

import (
	"strings"
	"text/template"

	"github.com/pkgsync/pkgsync/internal/log"
)

// Settings drives the rendered configuration. The zero value is not useful;
// use DefaultSettings as the base.
type Settings struct {
	// RootDir is the server's root and notebook directory.
	RootDir string
	// IP is the bind address.
	IP string
	// AllowRoot permits running as root inside containers.
	AllowRoot bool
}

// DefaultSettings matches the deployed HPC configuration: bind everywhere,
// serve /home, allow root for container use.
func DefaultSettings() Settings {
	return Settings{
		RootDir:   "/home",
		IP:        "0.0.0.0",
		AllowRoot: true,
	}
}

var configTemplate = template.Must(template.New("jupyter").Parse(
	`# JupyterLab configuration for HPC environment
#
# This configuration is designed for running JupyterLab behind an
# authentication proxy (HPC Code Server Manager).

c = get_config()  # noqa: F821

# Server settings
c.ServerApp.root_dir = '{{.RootDir}}'
c.ServerApp.open_browser = False
c.ServerApp.ip = '{{.IP}}'

# Disable authentication (handled by HPC proxy)
c.ServerApp.token = ''
c.ServerApp.password = ''
c.ServerApp.allow_remote_access = True
c.ServerApp.disable_check_xsrf = True

# Allow root access (for container environments)
c.ServerApp.allow_root = {{if .AllowRoot}}True{{else}}False{{end}}

# Notebook settings
c.ServerApp.notebook_dir = '{{.RootDir}}'
`))

// Render produces the configuration file content for the given settings.
func Render(s Settings) (string, error) {
	var sb strings.Builder
	if err := configTemplate.Execute(&sb, s); err != nil {
		return "", err
	}
	log.Debugf("config rendered: rootDir=%s, ip=%s", s.RootDir, s.IP)
	return sb.String(), nil
}
