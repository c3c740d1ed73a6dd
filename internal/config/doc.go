// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the sync daemon.
//
// Configuration is assembled from multiple sources. Earlier sources take
// precedence over later ones for every non-zero field:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON or YAML config file (chosen by file extension)
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
