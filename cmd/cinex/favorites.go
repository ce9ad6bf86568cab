package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mmcdole/cinex/internal/domain"
	"github.com/spf13/cobra"
)

func newFavoritesCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List or change favorites",
	}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print favorites, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgFile)
			if err != nil {
				return err
			}
			defer a.Close()

			return runFavoritesList(cmd.OutOrStdout(), a, filter)
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "", "fuzzy title filter")

	toggleCmd := &cobra.Command{
		Use:   "toggle IMDB_ID",
		Short: "Add a movie to favorites, or remove it if already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgFile)
			if err != nil {
				return err
			}
			defer a.Close()

			return runFavoritesToggle(cmd.Context(), cmd.OutOrStdout(), a, args[0])
		},
	}

	cmd.AddCommand(listCmd, toggleCmd)
	return cmd
}

func runFavoritesList(out io.Writer, a *app, filter string) error {
	entries := a.favorites.Filter(filter)
	if len(entries) == 0 {
		if a.favorites.Count() == 0 {
			fmt.Fprintln(out, "No favorites yet.")
		} else {
			fmt.Fprintln(out, "No favorites match the filter.")
		}
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%-10s  %s (%s) %s\n", e.ID, e.Title, e.Year, e.MediaType)
	}
	return nil
}

// runFavoritesToggle removes id if present. Otherwise it looks up the
// full record first so the stored entry carries the title and year.
func runFavoritesToggle(ctx context.Context, out io.Writer, a *app, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var target domain.Recordable = domain.Record{"imdbID": id}
	if !a.favorites.Contains(id) {
		if err := a.search.LoadDetails(ctx, id); err != nil {
			return err
		}
		if d := a.search.Selected(); d != nil {
			target = *d
		}
	}

	change, err := a.favorites.Toggle(target)
	if err != nil {
		return err
	}

	e := change.Entry
	if change.Added {
		fmt.Fprintf(out, "Added to favorites: %s (%s)\n", e.Title, e.Year)
	} else {
		fmt.Fprintf(out, "Removed from favorites: %s (%s)\n", e.Title, e.Year)
	}
	return nil
}
