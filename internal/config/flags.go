// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the daemon's command-line flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (postgres|sqlite)
//	-c/-config JSON or YAML config file path
//	-remote-url base URL of the remote API
//	-remote-token session token for the remote API
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-page-size records per remote page
//	-sync-interval pull interval applied to every kind
//	-log-level zerolog level name
//	-log-file rotating log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("spondadmin", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, driver string
	var configPath string
	var remoteURL, remoteToken string
	var requestTimeout, syncInterval time.Duration
	var pageSize int
	var logLevel, logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&driver, "driver", "", "Database driver (postgres|sqlite)")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&remoteURL, "remote-url", "", "Remote API base URL")
	fs.StringVar(&remoteToken, "remote-token", "", "Remote API session token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	fs.IntVar(&pageSize, "page-size", 0, "Records per remote page")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Pull interval for every kind (e.g., 15m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	schedule := Schedule{Interval: syncInterval}
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{Driver: driver, DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			BaseURL:        remoteURL,
			Token:          remoteToken,
			RequestTimeout: requestTimeout,
			PageSize:       pageSize,
		},
		Workers: Workers{
			Events:  schedule,
			Groups:  schedule,
			Members: schedule,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
