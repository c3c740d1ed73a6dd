// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements syncctl, the operator command line for the sync
// server: trigger pulls, inspect status and run history, and edit or push
// local records.
package cli
