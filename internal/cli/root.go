// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"time"

	"github.com/Paalmessenlien/spondadmin/internal/client"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

const envPrefix = "SYNCCTL_"

// app holds what every command needs once flags are parsed.
type app struct {
	server  string
	token   string
	timeout time.Duration
	output  string

	newAPI func(client.Config) (client.SyncAPI, error)
	api    client.SyncAPI
}

func defaultAPI(cfg client.Config) (client.SyncAPI, error) {
	return client.NewClient(cfg)
}

// NewRootCmd builds the syncctl command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, defaultAPI)
}

func newRootCmd(version string, newAPI func(client.Config) (client.SyncAPI, error)) *cobra.Command {
	a := &app{newAPI: newAPI}

	root := &cobra.Command{
		Use:           "syncctl",
		Short:         "syncctl - operate the team-management sync server",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.server, "server", "", "server address (env SYNCCTL_SERVER, default http://localhost:8080)")
	f.StringVar(&a.token, "token", "", "API token (env SYNCCTL_TOKEN)")
	f.DurationVar(&a.timeout, "timeout", 0, "request timeout (env SYNCCTL_TIMEOUT, default 5m)")
	f.StringVarP(&a.output, "output", "o", outputTable, "output format: table or json")

	root.AddCommand(
		newVersionCmd(a),
		newStatusCmd(a),
		newPullCmd(a),
		newPullAllCmd(a),
		newRunsCmd(a),
		newRecordsCmd(a),
		newPushCmd(a),
	)
	return root
}

// connect reads SYNCCTL_* variables, lets explicit flags win and builds the
// API client.
func (a *app) connect(cmd *cobra.Command) error {
	if a.output != outputTable && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	var cfg client.Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server = a.server
	}
	if flags.Changed("token") {
		cfg.Token = a.token
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	api, err := a.newAPI(cfg)
	if err != nil {
		return err
	}
	a.api = api
	return nil
}
