// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// writeJSON indents raw JSON, colouring it when w is a terminal.
func writeJSON(w io.Writer, raw []byte) error {
	out := pretty.Pretty(raw)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = pretty.Color(out, nil)
	}
	_, err := w.Write(out)
	return err
}

func writeValue(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeJSON(w, raw)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func writeTable(w io.Writer, t *table.Table) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func runStatus(s models.RunStatus) string {
	switch s {
	case models.RunCompleted:
		return okStyle.Render(string(s))
	case models.RunFailed:
		return errorStyle.Render(string(s))
	default:
		return warnStyle.Render(string(s))
	}
}

func syncState(s models.SyncState) string {
	switch s {
	case models.StateRemoteSynced:
		return okStyle.Render(string(s))
	case models.StatePushError:
		return errorStyle.Render(string(s))
	default:
		return warnStyle.Render(string(s))
	}
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return faintStyle.Render("-")
	}
	return t.Local().Format(time.DateTime)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func runRow(r models.SyncRunSummary) []string {
	return []string{
		r.ID,
		r.Kind.String(),
		runStatus(r.Status),
		timestamp(&r.StartedAt),
		(time.Duration(r.DurationMS) * time.Millisecond).String(),
		itoa(r.Fetched),
		itoa(r.Created),
		itoa(r.Updated),
		itoa(r.Errors),
		itoa(r.Warnings),
		itoa(r.Unseen),
	}
}

var runHeaders = []string{"RUN", "KIND", "STATUS", "STARTED", "DURATION", "FETCHED", "CREATED", "UPDATED", "ERRORS", "WARNINGS", "UNSEEN"}

func writeRuns(w io.Writer, runs []models.SyncRunSummary) error {
	t := newTable(runHeaders...)
	for _, r := range runs {
		t.Row(runRow(r)...)
	}
	return writeTable(w, t)
}

// writeRunDetail prints a run and its per-record messages.
func writeRunDetail(w io.Writer, r models.SyncRunSummary) error {
	if err := writeRuns(w, []models.SyncRunSummary{r}); err != nil {
		return err
	}
	if r.FatalError != "" {
		fmt.Fprintln(w, errorStyle.Render("fatal: "+r.FatalError))
	}
	if len(r.Messages) == 0 {
		return nil
	}
	t := newTable("SEVERITY", "EXTERNAL ID", "MESSAGE")
	for _, m := range r.Messages {
		sev := warnStyle.Render(string(m.Severity))
		if m.Severity == models.SeverityError {
			sev = errorStyle.Render(string(m.Severity))
		}
		t.Row(sev, m.ExternalID, m.Message)
	}
	return writeTable(w, t)
}
