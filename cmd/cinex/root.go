package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinex/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("stdout is not a terminal; use `cinex search` or `cinex favorites`")

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "cinex",
		Short:         "Search movies and keep a list of favorites",
		Long:          "cinex searches a movie database backend and keeps a local list of favorites.\nRun without arguments for the interactive browser.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			return runTUI(cfgFile)
		},
	}

	root.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		"",
		"path to config file",
	)

	root.AddCommand(newSearchCmd(&cfgFile))
	root.AddCommand(newFavoritesCmd(&cfgFile))
	return root
}

func runTUI(cfgFile string) error {
	a, err := openApp(cfgFile)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.search, a.favorites, tui.Options{
		StatusDuration: a.cfg.UI.StatusDuration,
		RequestTimeout: a.cfg.Backend.Timeout,
	}, a.logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
