// log.go implements the "lens log" command for reading the audit log.
//
// The audit log records which plugin rendered each file and which rule
// chose it, so a surprising render can be explained after the fact.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/extension"
	"github.com/jpl-au/lens/internal/duration"
	"github.com/jpl-au/lens/internal/format"
	"github.com/jpl-au/lens/internal/log"
	"github.com/spf13/cobra"
)

const defaultLogLimit = 20

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent resolutions and renders",
		Long: `Show recent audit log entries for the current directory, newest first.

  lens log                 # last 20 entries
  lens log --limit 100
  lens log --since 7d      # entries from the last week (h, d, w, m)`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", defaultLogLimit, "Maximum entries to show")
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this age (e.g., 12h, 7d)")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	since, _ := c.Flags().GetString(extension.FlagSince)

	if limit <= 0 {
		return cmd.PrintJSONError(fmt.Errorf("--%s must be positive", extension.FlagLimit))
	}

	var cutoff time.Time
	if since != "" {
		t, err := duration.Since(time.Now(), since)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		cutoff = t
	}

	entries, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reading audit log: %w", err))
	}
	if !cutoff.IsZero() {
		entries = filterSince(entries, cutoff)
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.Out(), "no log entries")
		return nil
	}
	return format.Log(cmd.Out(), entries, cmd.IsTTY())
}

// filterSince drops entries that started before cutoff.
func filterSince(entries []log.Entry, cutoff time.Time) []log.Entry {
	var out []log.Entry
	for _, e := range entries {
		if !time.Unix(e.Start, 0).Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
