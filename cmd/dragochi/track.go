package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	trackingdto "dragochi/internal/modules/tracking/dto"
)

func newTrackCmd(opts *rootOptions) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Live session tracking"}

	var platform, gameID, note string
	var friendIDs []string
	start := &cobra.Command{
		Use:   "start [--platform pc|console|mobile] [--game <id>]",
		Short: "Start tracking a new session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("platform") {
				platform = app.Config.DefaultPlatform
			}
			state, err := app.TrackingCLI.Start(cmd.Context(), platform, gameID, note, friendIDs)
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), state)
			return nil
		},
	}
	start.Flags().StringVar(&platform, "platform", "pc", "platform: pc|console|mobile")
	start.Flags().StringVar(&gameID, "game", "", "game id")
	start.Flags().StringSliceVar(&friendIDs, "friend", nil, "friend id (repeatable)")
	start.Flags().StringVar(&note, "note", "", "free-form note")

	simple := func(use, short string, call func(cmd *cobra.Command) (trackingdto.StateOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				state, err := call(cmd)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), state)
				return nil
			},
		}
	}

	pause := simple("pause", "Pause the running session", func(cmd *cobra.Command) (trackingdto.StateOutput, error) {
		app, err := opts.load(cmd)
		if err != nil {
			return trackingdto.StateOutput{}, err
		}
		return app.TrackingCLI.Pause(cmd.Context())
	})
	resume := simple("resume", "Resume the paused session", func(cmd *cobra.Command) (trackingdto.StateOutput, error) {
		app, err := opts.load(cmd)
		if err != nil {
			return trackingdto.StateOutput{}, err
		}
		return app.TrackingCLI.Resume(cmd.Context())
	})
	status := simple("status", "Show the tracker state", func(cmd *cobra.Command) (trackingdto.StateOutput, error) {
		app, err := opts.load(cmd)
		if err != nil {
			return trackingdto.StateOutput{}, err
		}
		return app.TrackingCLI.Status(cmd.Context()), nil
	})
	discard := simple("discard", "Drop the active session without saving it", func(cmd *cobra.Command) (trackingdto.StateOutput, error) {
		app, err := opts.load(cmd)
		if err != nil {
			return trackingdto.StateOutput{}, err
		}
		return app.TrackingCLI.Discard(cmd.Context())
	})

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop and save the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out, err := app.TrackingCLI.Stop(cmd.Context())
			if out.Stopped {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session saved: %s duration=%s start=%s end=%s\n",
					out.SessionID,
					formatDuration(out.DurationSeconds),
					formatTime(out.StartAt, app.Config.Location),
					formatTime(out.EndAt, app.Config.Location))
			} else if err == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
			}
			return err
		},
	}

	track.AddCommand(start, pause, resume, stop, status, discard)
	return track
}

func printState(w io.Writer, s trackingdto.StateOutput) {
	if s.SessionID == "" {
		_, _ = fmt.Fprintf(w, "status=%s\n", s.Status)
		return
	}
	parts := []string{
		"status=" + s.Status,
		"session=" + s.SessionID,
		"platform=" + s.Platform,
		"game=" + orDash(s.GameID),
		"elapsed=" + formatDuration(s.ElapsedSeconds),
	}
	if len(s.FriendIDs) > 0 {
		parts = append(parts, "friends="+strings.Join(s.FriendIDs, ","))
	}
	_, _ = fmt.Fprintln(w, strings.Join(parts, " "))
}
