// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors StructuredConfig with file-friendly names and
// durations written as strings ("15m").
type fileConfig struct {
	App struct {
		Version string `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		APIToken       string   `json:"api_token" yaml:"api_token"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		Token          string   `json:"token" yaml:"token"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		PageSize       int      `json:"page_size" yaml:"page_size"`
		RetryCount     int      `json:"retry_count" yaml:"retry_count"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		Events  fileSchedule `json:"events" yaml:"events"`
		Groups  fileSchedule `json:"groups" yaml:"groups"`
		Members fileSchedule `json:"members" yaml:"members"`
	} `json:"workers" yaml:"workers"`

	Log struct {
		Level      string `json:"level" yaml:"level"`
		File       string `json:"file" yaml:"file"`
		MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	} `json:"log" yaml:"log"`
}

type fileSchedule struct {
	Enabled    *bool    `json:"enabled" yaml:"enabled"`
	Interval   Duration `json:"interval" yaml:"interval"`
	MaxRecords int      `json:"max_records" yaml:"max_records"`
	GroupID    string   `json:"group_id" yaml:"group_id"`
}

func (s fileSchedule) schedule() Schedule {
	return Schedule{
		Enabled:    s.Enabled,
		Interval:   time.Duration(s.Interval),
		MaxRecords: s.MaxRecords,
		GroupID:    s.GroupID,
	}
}

// parseFile reads a config file; ".yaml" and ".yml" are decoded as YAML,
// anything else as JSON. JSON files may carry comments and trailing commas.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		App: App{Version: fc.App.Version},
		Storage: Storage{
			DB: DB{Driver: fc.Storage.DB.Driver, DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			APIToken:       fc.Server.APIToken,
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			Token:          fc.Adapter.Token,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			PageSize:       fc.Adapter.PageSize,
			RetryCount:     fc.Adapter.RetryCount,
		},
		Workers: Workers{
			Events:  fc.Workers.Events.schedule(),
			Groups:  fc.Workers.Groups.schedule(),
			Members: fc.Workers.Members.schedule(),
		},
		Log: Log{
			Level:      fc.Log.Level,
			File:       fc.Log.File,
			MaxSizeMB:  fc.Log.MaxSizeMB,
			MaxBackups: fc.Log.MaxBackups,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
