package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	analyticsdto "dragochi/internal/modules/analytics/dto"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Monthly play-time reports"}

	var month string
	var asJSON bool
	monthCmd := &cobra.Command{
		Use:   "month [--month YYYY-MM] [--json]",
		Short: "Show the report for one month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			target := time.Now()
			latest := true
			if strings.TrimSpace(month) != "" {
				target, err = time.ParseInLocation("2006-01", month, app.Config.Location)
				if err != nil {
					return fmt.Errorf("--month must be YYYY-MM: %w", err)
				}
				latest = false
			}
			out, err := app.AnalyticsCLI.Month(cmd.Context(), target, latest)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Report)
			}
			games, _, err := app.CatalogCLI.Names(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), out, games, app.Config.Location)
			return nil
		},
	}
	monthCmd.Flags().StringVar(&month, "month", "", "month to report (default: latest month with sessions)")
	monthCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	months := &cobra.Command{
		Use:   "months",
		Short: "List months that have finished sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			list, err := app.AnalyticsCLI.Months(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no months")
				return nil
			}
			for _, m := range list {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), m.In(app.Config.Location).Format("2006-01"))
			}
			return nil
		},
	}

	stats.AddCommand(monthCmd, months)
	return stats
}

func printReport(w io.Writer, out analyticsdto.MonthlyReportOutput, games map[string]string, loc *time.Location) {
	r := out.Report
	_, _ = fmt.Fprintf(w, "%s\n", r.MonthStart.In(loc).Format("January 2006"))
	_, _ = fmt.Fprintf(w, "total: %s\n", formatDuration(r.TotalDurationSeconds))
	change := "n/a"
	if r.MoM.PercentageChange != nil {
		change = fmt.Sprintf("%+.1f%%", *r.MoM.PercentageChange)
	}
	_, _ = fmt.Fprintf(w, "vs previous month: %s (%s)\n", formatDuration(r.MoM.DeltaSeconds), change)

	_, _ = fmt.Fprintln(w, "platforms:")
	for _, p := range r.ByPlatform {
		_, _ = fmt.Fprintf(w, "  %-8s %s\n", p.Platform, formatDuration(p.DurationSeconds))
	}
	_, _ = fmt.Fprintln(w, "games:")
	for _, g := range r.ByGame {
		name := "(no game)"
		if g.GameID != nil {
			name = games[*g.GameID]
			if name == "" {
				name = *g.GameID
			}
		}
		_, _ = fmt.Fprintf(w, "  %-16s %s\n", name, formatDuration(g.DurationSeconds))
	}
	_, _ = fmt.Fprintln(w, "trend:")
	for _, p := range r.TrendLast6Months {
		_, _ = fmt.Fprintf(w, "  %s %s\n", p.MonthStart.In(loc).Format("2006-01"), formatDuration(p.TotalDurationSeconds))
	}
	if out.Previous != nil || out.Next != nil {
		prev, next := "-", "-"
		if out.Previous != nil {
			prev = out.Previous.In(loc).Format("2006-01")
		}
		if out.Next != nil {
			next = out.Next.In(loc).Format("2006-01")
		}
		_, _ = fmt.Fprintf(w, "navigate: previous=%s next=%s\n", prev, next)
	}
}
