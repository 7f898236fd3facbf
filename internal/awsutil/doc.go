// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package awsutil contains AWS-related helpers used by commands that publish
// snapshots to S3.
package awsutil
