// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultHTTPAddress          = "localhost:8080"
	defaultServerRequestTimeout = 5 * time.Minute
	defaultRequestTimeout       = 30 * time.Second
	defaultSQLiteDSN            = "spondadmin.db"
	defaultPageSize             = 50
	defaultRetryCount           = 2
	defaultSyncInterval         = 15 * time.Minute
	defaultEventsMax            = 100
	defaultLogLevel             = "debug"
	defaultLogMaxSizeMB         = 100
	defaultLogMaxBackups        = 3
)

// defaults is merged last and fills whatever no other source set.
func defaults() *StructuredConfig {
	enabled := true
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{Driver: DriverSQLite},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultServerRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: defaultRequestTimeout,
			PageSize:       defaultPageSize,
			RetryCount:     defaultRetryCount,
		},
		Workers: Workers{
			Events:  Schedule{Enabled: &enabled, Interval: defaultSyncInterval, MaxRecords: defaultEventsMax},
			Groups:  Schedule{Enabled: &enabled, Interval: defaultSyncInterval},
			Members: Schedule{Enabled: &enabled, Interval: defaultSyncInterval},
		},
		Log: Log{
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// finalize fills values that depend on other merged settings.
func (cfg *StructuredConfig) finalize() {
	if cfg.Storage.DB.Driver == DriverSQLite && cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultSQLiteDSN
	}
}
