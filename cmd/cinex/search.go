package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/cinex/internal/domain"
	"github.com/mmcdole/cinex/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCmd(cfgFile *string) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Print one page of search results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgFile)
			if err != nil {
				return err
			}
			defer a.Close()

			return runSearch(cmd.Context(), cmd.OutOrStdout(), a, strings.Join(args, " "), page)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page (10 results per page)")
	return cmd
}

func runSearch(ctx context.Context, out io.Writer, a *app, query string, page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d", page)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := a.search.Search(ctx, query, page); err != nil {
		if search.IsNoResults(err) {
			fmt.Fprintln(out, domain.UserMessage(err, "No movies found"))
			return nil
		}
		return err
	}

	state := a.search.State()
	if state.Query == "" {
		return nil
	}

	for _, item := range state.Results {
		mark := " "
		if a.favorites.Contains(item.ID) {
			mark = "♥"
		}
		fmt.Fprintf(out, "%s %-10s  %s (%s) %s\n", mark, item.ID, item.Title, item.Year, item.MediaType)
	}
	fmt.Fprintf(out, "\nPage %d of %d (%d results)\n", state.CurrentPage, a.search.PageCount(), state.TotalCount)
	return nil
}
