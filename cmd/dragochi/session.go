package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	sessiondto "dragochi/internal/modules/session/dto"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Recorded sessions"}

	var start, end, platform, gameID, note string
	var friendIDs []string
	add := &cobra.Command{
		Use:   "add --start <time> --end <time> [--platform pc]",
		Short: "Record a session that already happened",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
				return fmt.Errorf("--start and --end are required")
			}
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			startAt, err := parseTime(start, app.Config.Location)
			if err != nil {
				return err
			}
			endAt, err := parseTime(end, app.Config.Location)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("platform") {
				platform = app.Config.DefaultPlatform
			}
			out, err := app.SessionCLI.Add(cmd.Context(), startAt, endAt, platform, gameID, note, friendIDs)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session added: %s duration=%s\n", out.ID, formatDuration(deref(out.DurationSeconds)))
			return nil
		},
	}
	add.Flags().StringVar(&start, "start", "", "start time (RFC3339 or YYYY-MM-DD HH:MM)")
	add.Flags().StringVar(&end, "end", "", "end time (RFC3339 or YYYY-MM-DD HH:MM)")
	add.Flags().StringVar(&platform, "platform", "pc", "platform: pc|console|mobile")
	add.Flags().StringVar(&gameID, "game", "", "game id")
	add.Flags().StringSliceVar(&friendIDs, "friend", nil, "friend id (repeatable)")
	add.Flags().StringVar(&note, "note", "", "free-form note")

	var eStart, eEnd, ePlatform, eGame, eNote string
	var eFriends []string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			cur, err := app.SessionCLI.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := sessiondto.UpdateInput{
				ID:              cur.ID,
				StartAt:         cur.StartAt,
				EndAt:           cur.EndAt,
				DurationSeconds: cur.DurationSeconds,
				Platform:        cur.Platform,
				GameID:          cur.GameID,
				Note:            cur.Note,
				FriendIDs:       cur.FriendIDs,
			}
			flags := cmd.Flags()
			if flags.Changed("start") {
				if in.StartAt, err = parseTime(eStart, app.Config.Location); err != nil {
					return err
				}
			}
			if flags.Changed("end") {
				endAt, err := parseTime(eEnd, app.Config.Location)
				if err != nil {
					return err
				}
				in.EndAt = &endAt
			}
			if flags.Changed("start") || flags.Changed("end") {
				// re-derived from the new range
				in.DurationSeconds = nil
			}
			if flags.Changed("platform") {
				in.Platform = ePlatform
			}
			if flags.Changed("game") {
				in.GameID = eGame
			}
			if flags.Changed("note") {
				in.Note = eNote
			}
			if flags.Changed("friend") {
				in.FriendIDs = eFriends
			}
			out, err := app.SessionCLI.Edit(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session updated: %s duration=%s\n", out.ID, formatDuration(deref(out.DurationSeconds)))
			return nil
		},
	}
	edit.Flags().StringVar(&eStart, "start", "", "new start time")
	edit.Flags().StringVar(&eEnd, "end", "", "new end time")
	edit.Flags().StringVar(&ePlatform, "platform", "", "new platform")
	edit.Flags().StringVar(&eGame, "game", "", "new game id (empty clears it)")
	edit.Flags().StringVar(&eNote, "note", "", "new note")
	edit.Flags().StringSliceVar(&eFriends, "friend", nil, "replacement friend ids")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			s, err := app.SessionCLI.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			games, friends, err := app.CatalogCLI.Names(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "id: %s\nplatform: %s\ngame: %s\nstart: %s\n", s.ID, s.Platform, orDash(games[s.GameID]), formatTime(s.StartAt, app.Config.Location))
			if s.EndAt != nil {
				_, _ = fmt.Fprintf(w, "end: %s\n", formatTime(*s.EndAt, app.Config.Location))
			} else {
				_, _ = fmt.Fprintln(w, "end: running")
			}
			_, _ = fmt.Fprintf(w, "duration: %s\nfriends: %s\nnote: %s\n", formatDuration(deref(s.DurationSeconds)), orDash(joinNames(s.FriendIDs, friends)), orDash(s.Note))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session deleted: %s\n", args[0])
			return nil
		},
	}

	var filter string
	history := &cobra.Command{
		Use:   "history [--filter all|week|last-month]",
		Short: "List finished sessions grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.History(cmd.Context(), filter)
			if err != nil {
				return err
			}
			games, friends, err := app.CatalogCLI.Names(cmd.Context())
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), out, games, friends, app.Config.Location)
			return nil
		},
	}
	history.Flags().StringVar(&filter, "filter", "all", "all|week|last-month")

	session.AddCommand(add, edit, show, del, history)
	return session
}

func printHistory(w io.Writer, out sessiondto.HistoryOutput, games, friends map[string]string, loc *time.Location) {
	if len(out.Sections) == 0 {
		_, _ = fmt.Fprintln(w, "no sessions")
		return
	}
	for _, day := range out.Sections {
		_, _ = fmt.Fprintln(w, day.Day.In(loc).Format("Mon 2006-01-02"))
		for _, s := range day.Sessions {
			line := fmt.Sprintf("  %s\t%s\t%-8s\t%s\t%s",
				s.ID,
				s.StartAt.In(loc).Format("15:04"),
				s.Platform,
				orDash(games[s.GameID]),
				formatDuration(deref(s.DurationSeconds)))
			if names := joinNames(s.FriendIDs, friends); names != "" {
				line += "\twith " + names
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
	_, _ = fmt.Fprintf(w, "total: %s\n", formatDuration(out.TotalPlaytimeSeconds))
}

func joinNames(ids []string, names map[string]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		} else {
			out = append(out, id)
		}
	}
	return strings.Join(out, ", ")
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
