// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional pkgsync.yaml configuration file and
// exposes typed getters over its dotted key paths. Commands use it for
// defaults (cluster/version labels, pip timeout, cache retention, colors).
package config
