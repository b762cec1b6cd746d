package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flick/internal/domain"
)

func newGenresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List movie genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.API.Timeout)
			defer cancel()

			genres, err := a.catalogService().Genres(ctx)
			if err != nil {
				return fmt.Errorf("loading genres: %w", err)
			}
			for _, g := range genres {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", g.ID, g.Name)
			}
			return nil
		},
	}
}

func newKeywordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords <text>",
		Short: "Search keywords to filter by",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.API.Timeout)
			defer cancel()

			keywords, err := a.catalogService().SearchKeywords(ctx, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("searching keywords: %w", err)
			}
			if len(keywords) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No keywords found.")
				return nil
			}
			for _, kw := range keywords {
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %s\n", kw.ID, kw.Name)
			}
			return nil
		},
	}
}

func newDiscoverCmd(a *app) *cobra.Command {
	var (
		genres   []int
		keywords []int
		pages    int
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Print discover results without the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}

			f := domain.Filters{Keywords: keywords, Genres: genres}.Normalize()
			progress := func(page, totalPages int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\rLoaded page %d of %d", page, totalPages)
			}

			movies, err := a.catalogService().Discover(cmd.Context(), f, pages, progress)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("discovering movies: %w", err)
			}

			if len(movies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No movies were found that match your query.")
				return nil
			}
			for _, m := range movies {
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %7s  %s\n", m.ID, m.FormattedPopularity(), m.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&genres, "genre", nil, "genre id to filter by (repeatable)")
	cmd.Flags().IntSliceVar(&keywords, "keyword", nil, "keyword id to filter by (repeatable)")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load, 0 for all")

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Start a session as name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.sessionService().Login(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Name)
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessionService().Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flick %s\n", Version)
		},
	}
}
