// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the Go client of the sync server's HTTP API. syncctl is
// built on it.
package client
