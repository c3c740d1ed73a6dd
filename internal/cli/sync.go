// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Paalmessenlien/spondadmin/internal/client"
	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/spf13/cobra"
)

var errPassFailed = errors.New("pull pass failed")

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.api.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status [kind]",
		Short:   "Show schedule and last run of every kind, or of one",
		Example: "  syncctl status\n  syncctl status events -o json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []models.SyncStatus
			if len(args) == 1 {
				kind, err := models.ParseKind(args[0])
				if err != nil {
					return err
				}
				s, err := a.api.Status(cmd.Context(), kind)
				if err != nil {
					return err
				}
				statuses = append(statuses, s)
			} else {
				var err error
				if statuses, err = a.api.Statuses(cmd.Context()); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if a.output == outputJSON {
				return writeValue(w, statuses)
			}

			t := newTable("KIND", "SCHEDULED", "INTERVAL", "RUNNING", "LAST RUN", "LAST STATUS", "NEXT RUN")
			for _, s := range statuses {
				scheduled := faintStyle.Render("no")
				if s.Enabled {
					scheduled = okStyle.Render("yes")
				}
				lastRun, lastStatus := timestamp(nil), faintStyle.Render("-")
				if s.LastRun != nil {
					lastRun = timestamp(&s.LastRun.StartedAt)
					lastStatus = runStatus(s.LastRun.Status)
				}
				t.Row(
					s.Kind.String(),
					scheduled,
					strconv.FormatInt(s.IntervalSeconds, 10)+"s",
					strconv.FormatBool(s.InFlight),
					lastRun,
					lastStatus,
					timestamp(s.NextRunEstimate),
				)
			}
			return writeTable(w, t)
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	var req models.PullRequest

	cmd := &cobra.Command{
		Use:     "pull <kind>",
		Short:   "Run a pull pass for one kind and wait for it",
		Example: "  syncctl pull events --group G1 --max 200",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}

			run, err := a.api.Pull(cmd.Context(), kind, req)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.Run != nil {
					if werr := a.writeRun(cmd, *apiErr.Run); werr != nil {
						return werr
					}
				}
				return err
			}
			if err = a.writeRun(cmd, run); err != nil {
				return err
			}
			if run.Status == models.RunFailed {
				return errPassFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Scope.GroupID, "group", "", "restrict the pass to one group (required for members)")
	f.IntVar(&req.MaxRecords, "max", 0, "stop after this many records (0 for no limit)")
	return cmd
}

func (a *app) writeRun(cmd *cobra.Command, run models.SyncRunSummary) error {
	if a.output == outputJSON {
		return writeValue(cmd.OutOrStdout(), run)
	}
	return writeRunDetail(cmd.OutOrStdout(), run)
}

func newPullAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull-all",
		Short: "Run a pull pass for every scheduled kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := a.api.PullAll(cmd.Context())

			w := cmd.OutOrStdout()
			var werr error
			if a.output == outputJSON {
				werr = writeValue(w, runs)
			} else if len(runs) > 0 {
				werr = writeRuns(w, runs)
			}
			return errors.Join(err, werr)
		},
	}
}

func newRunsCmd(a *app) *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:     "runs <kind>",
		Short:   "List the most recent runs of a kind",
		Example: "  syncctl runs members --limit 5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			runs, err := a.api.Runs(cmd.Context(), kind, limit)
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeValue(cmd.OutOrStdout(), runs)
			}
			return writeRuns(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().Uint64Var(&limit, "limit", 0, "number of runs (server default when 0)")
	return cmd
}
