// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	errNoChanges     = errors.New("nothing to change: pass --data or --set")
	errPushRejected  = errors.New("push rejected by the remote service")
	errInvalidRecord = errors.New("record id must be a positive integer")
)

func newRecordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"rec"},
		Short:   "Inspect and edit local records",
	}
	cmd.AddCommand(
		newRecordsListCmd(a),
		newRecordsGetCmd(a),
		newRecordsCreateCmd(a),
		newRecordsEditCmd(a),
	)
	return cmd
}

func newRecordsListCmd(a *app) *cobra.Command {
	var (
		state  string
		filter models.ListFilter
	)

	cmd := &cobra.Command{
		Use:     "list <kind>",
		Short:   "List local records",
		Example: "  syncctl records list events --state push_error",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			filter.State = models.SyncState(state)

			body, err := a.api.Records(cmd.Context(), kind, filter)
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), body)
			}

			t := newTable("ID", "EXTERNAL ID", "GROUP", "STATE", "DIRTY", "NAME", "LAST SYNCED")
			for _, rec := range gjson.ParseBytes(body).Array() {
				t.Row(
					rec.Get("id").String(),
					rec.Get("external_id").String(),
					rec.Get("parent_external_id").String(),
					syncState(models.SyncState(rec.Get("sync_state").String())),
					strings.Join(stringsOf(rec.Get("dirty_fields")), ","),
					displayName(rec),
					rec.Get("last_synced_at").String(),
				)
			}
			return writeTable(cmd.OutOrStdout(), t)
		},
	}

	f := cmd.Flags()
	f.StringVar(&state, "state", "", "only records in this sync state")
	f.StringVar(&filter.ParentExternalID, "group", "", "only records of this group")
	f.Uint64Var(&filter.Limit, "limit", 0, "page size")
	f.Uint64Var(&filter.Offset, "offset", 0, "records to skip")
	return cmd
}

// displayName picks the human label of a record of any kind.
func displayName(rec gjson.Result) string {
	for _, path := range []string{"fields.heading", "fields.name"} {
		if v := rec.Get(path); v.Exists() {
			return v.String()
		}
	}
	return strings.TrimSpace(rec.Get("fields.first_name").String() + " " + rec.Get("fields.last_name").String())
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func newRecordsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Print one local record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := recordArgs(args)
			if err != nil {
				return err
			}
			body, err := a.api.Record(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), body)
		},
	}
}

func newRecordsCreateCmd(a *app) *cobra.Command {
	var (
		group string
		data  string
		sets  []string
	)

	cmd := &cobra.Command{
		Use:     "create <kind>",
		Short:   "Create a local record; it reaches the remote on its first push",
		Example: `  syncctl records create events --group G1 --set heading="Cup final" --set start_time=2026-04-01T10:00:00Z --set end_time=2026-04-01T12:00:00Z`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			fields, err := buildFields(data, sets)
			if err != nil {
				return err
			}

			body, err := a.api.Create(cmd.Context(), kind, models.CreateRequest{ParentExternalID: group, Fields: fields})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), body)
		},
	}

	f := cmd.Flags()
	f.StringVar(&group, "group", "", "external id of the owning group")
	f.StringVar(&data, "data", "", "fields as a JSON object")
	f.StringArrayVar(&sets, "set", nil, "field=value; values that are not valid JSON are sent as strings")
	return cmd
}

func newRecordsEditCmd(a *app) *cobra.Command {
	var (
		data string
		sets []string
	)

	cmd := &cobra.Command{
		Use:     "edit <kind> <id>",
		Short:   "Change fields of a local record",
		Example: `  syncctl records edit events 12 --set heading="Renamed" --set max_accepted=18`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := recordArgs(args)
			if err != nil {
				return err
			}
			patch, err := buildFields(data, sets)
			if err != nil {
				return err
			}

			body, err := a.api.Edit(cmd.Context(), kind, id, patch)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), body)
		},
	}

	f := cmd.Flags()
	f.StringVar(&data, "data", "", "changes as a JSON object")
	f.StringArrayVar(&sets, "set", nil, "field=value; values that are not valid JSON are sent as strings")
	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:     "push <kind> <id>",
		Short:   "Send a record's pending changes to the remote service",
		Example: "  syncctl push events 12\n  syncctl push events 12 --field heading",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := recordArgs(args)
			if err != nil {
				return err
			}

			out, err := a.api.Push(cmd.Context(), kind, models.PushRequest{ID: id, Fields: models.NewFieldSet(fields...)})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.output == outputJSON {
				err = writeValue(w, out)
			} else {
				t := newTable("ID", "EXTERNAL ID", "STATE", "CREATED", "FIELDS", "ERROR")
				t.Row(
					strconv.FormatInt(out.ID, 10),
					out.ExternalID,
					syncState(out.State),
					strconv.FormatBool(out.Created),
					strings.Join(out.Fields, ","),
					out.ErrorDetail,
				)
				err = writeTable(w, t)
			}
			if err != nil {
				return err
			}
			if !out.Succeeded() {
				return errPushRejected
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "field", nil, "push only these fields (default: all pending)")
	return cmd
}

func recordArgs(args []string) (models.Kind, int64, error) {
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("%w: %q", errInvalidRecord, args[1])
	}
	return kind, id, nil
}

// buildFields merges --data and --set into one field map. --set wins over
// keys already present in --data.
func buildFields(data string, sets []string) (map[string]json.RawMessage, error) {
	if data == "" && len(sets) == 0 {
		return nil, errNoChanges
	}

	doc := []byte("{}")
	if data != "" {
		if !gjson.Valid(data) || !gjson.Parse(data).IsObject() {
			return nil, fmt.Errorf("--data must be a JSON object")
		}
		doc = []byte(data)
	}

	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("--set %q: expected field=value", s)
		}
		raw := []byte(value)
		if !gjson.ValidBytes(raw) {
			quoted, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			raw = quoted
		}
		var err error
		if doc, err = sjson.SetRawBytes(doc, escapePath(name), raw); err != nil {
			return nil, fmt.Errorf("--set %q: %w", s, err)
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// escapePath keeps field names with dots or wildcards literal in sjson paths.
func escapePath(name string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(name)
}
