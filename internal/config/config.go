// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"

	"github.com/Paalmessenlien/spondadmin/models"
)

// StructuredConfig is the top-level configuration container for the sync
// daemon. It aggregates all sub-configurations and is populated by merging
// values from command-line flags, environment variables, an optional config
// file and the defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the address and timeout of the trigger/status HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter configures the client of the remote team-management service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the pull schedule of every entity kind.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log configures level and optional rotating file output.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON or YAML config file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// Supported values of DB.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the SQL backend: "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string: a postgres:// URL or a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound HTTP API.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request. Manual pulls run
	// inside the request, so this should exceed a pass's duration.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// APIToken, when set, is required as a bearer token on every /api
	// route except the version endpoint.
	// Env: SERVER_API_TOKEN
	APIToken string `env:"API_TOKEN"`
}

// Adapter holds the settings of the remote collaborator client.
type Adapter struct {
	// BaseURL is the root of the remote REST API.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the session token (a JWT) sent as a Bearer credential.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the number of records requested per page.
	// Env: ADAPTER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// RetryCount is how many times a transient transport failure is retried.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Workers holds the pull schedule of every entity kind.
type Workers struct {
	Events  Schedule `envPrefix:"EVENTS_"`
	Groups  Schedule `envPrefix:"GROUPS_"`
	Members Schedule `envPrefix:"MEMBERS_"`
}

// Schedule configures the automatic pull of one entity kind.
type Schedule struct {
	// Enabled toggles the automatic timer. Nil means enabled; manual
	// triggers work either way.
	// Env: WORKERS_<KIND>_ENABLED
	Enabled *bool `env:"ENABLED"`

	// Interval is the time between automatic pull passes.
	// Env: WORKERS_<KIND>_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// MaxRecords caps the records processed by one pass (0 = unbounded).
	// Env: WORKERS_<KIND>_MAX_RECORDS
	MaxRecords int `env:"MAX_RECORDS"`

	// GroupID restricts scheduled passes to one parent group.
	// Env: WORKERS_<KIND>_GROUP_ID
	GroupID string `env:"GROUP_ID"`
}

// IsEnabled reports whether the automatic timer should run.
func (s Schedule) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// For returns the schedule of kind.
func (w Workers) For(kind models.Kind) Schedule {
	switch kind {
	case models.KindEvents:
		return w.Events
	case models.KindGroups:
		return w.Groups
	case models.KindMembers:
		return w.Members
	}
	return Schedule{}
}

// Log configures the application logger.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File enables rotating file output in addition to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// MaxSizeMB is the size at which the log file is rotated.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// MaxBackups is the number of rotated files kept.
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (path resolved from sources 1 and 2)
//  4. Defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(os.Args[1:]).
		withEnv().
		withFile().
		withDefaults().
		build()
}
