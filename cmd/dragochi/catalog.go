package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd(opts *rootOptions) *cobra.Command {
	game := &cobra.Command{Use: "game", Short: "Game catalog"}

	game.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			games, err := app.CatalogCLI.ListGames(cmd.Context())
			if err != nil {
				return err
			}
			if len(games) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no games")
				return nil
			}
			for _, g := range games {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", g.ID, g.Name, orDash(g.Icon))
			}
			return nil
		},
	})

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			g, err := app.CatalogCLI.AddGame(cmd.Context(), strings.Join(args, " "), icon)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "game added: %s (%s)\n", g.Name, g.ID)
			return nil
		},
	}
	add.Flags().StringVar(&icon, "icon", "", "icon key")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a game",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			g, err := app.CatalogCLI.RenameGame(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "game renamed: %s (%s)\n", g.Name, g.ID)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game; its sessions keep their play time without a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.DeleteGame(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "game deleted: %s\n", args[0])
			return nil
		},
	}

	sync := &cobra.Command{
		Use:   "sync",
		Short: "Bring the default game catalog up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.SyncGames(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "catalog synced: created=%d renamed=%d removed=%d\n", out.Created, out.Renamed, out.Removed)
			return nil
		},
	}

	game.AddCommand(add, rename, del, sync)
	return game
}

func newFriendCmd(opts *rootOptions) *cobra.Command {
	friend := &cobra.Command{Use: "friend", Short: "Teammates"}

	friend.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List friends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			friends, err := app.CatalogCLI.ListFriends(cmd.Context())
			if err != nil {
				return err
			}
			if len(friends) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no friends")
				return nil
			}
			for _, f := range friends {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", f.ID, f.Name, orDash(f.Handle))
			}
			return nil
		},
	})

	var handle string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a friend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			f, err := app.CatalogCLI.AddFriend(cmd.Context(), strings.Join(args, " "), handle)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "friend added: %s (%s)\n", f.Name, f.ID)
			return nil
		},
	}
	add.Flags().StringVar(&handle, "handle", "", "in-game handle")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a friend and their session links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.DeleteFriend(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "friend deleted: %s\n", args[0])
			return nil
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the default friend list when none exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			created, err := app.CatalogCLI.SeedFriends(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "friends seeded: %d\n", len(created))
			return nil
		},
	}

	friend.AddCommand(add, del, seed)
	return friend
}
