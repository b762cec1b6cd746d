package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/flick/internal/config"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/log"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/tmdb"
	"github.com/mmcdole/flick/internal/tui"
	"github.com/mmcdole/flick/internal/tui/components"
)

// app holds what every command needs once configuration is loaded
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "flick",
		Short: "Browse a movie catalog from the terminal",
		Long: `flick is a terminal viewer for TMDB-style movie catalogs. Movies load page
by page as you scroll, filtered by genres and keywords.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.initialize,
		PersistentPostRunE: a.shutdown,
		RunE:               a.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.config/flick/config.yaml)")

	rootCmd.AddCommand(
		newGenresCmd(a),
		newKeywordsCmd(a),
		newDiscoverCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// initialize loads configuration and sets up logging
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	a.logger = logger
	a.closer = closer
	slog.SetDefault(logger)

	logger.Info("starting flick", "version", Version, "command", cmd.Name())
	return nil
}

func (a *app) shutdown(cmd *cobra.Command, args []string) error {
	if a.logger != nil {
		a.logger.Info("shutting down")
	}
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// client builds the catalog API client from configuration
func (a *app) client() *tmdb.Client {
	return tmdb.NewClient(a.cfg.API.URL, a.cfg.API.Token,
		tmdb.WithTimeout(a.cfg.API.Timeout),
		tmdb.WithRateLimit(a.cfg.API.RateLimit, a.cfg.API.Burst),
		tmdb.WithLogger(a.logger),
	)
}

func (a *app) catalogService() *service.CatalogService {
	return service.NewCatalogService(a.client(), a.cfg.Images.Size, a.logger)
}

func (a *app) sessionService() *service.SessionService {
	return service.NewSessionService(a.cfg.Session.User, service.ConfigSessionStore{}, a.logger)
}

// requireToken fails for commands that talk to the API without a token
func (a *app) requireToken() error {
	if !a.cfg.IsConfigured() {
		return fmt.Errorf("%w: no API token configured, run flick to set one up or set FLICK_API_TOKEN", domain.ErrNotConfigured)
	}
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if !a.cfg.IsConfigured() {
		return runSetupFlow(cmd, a.cfg)
	}

	model := tui.NewModel(a.catalogService(), a.sessionService(), tui.Options{
		Debounce: a.cfg.UI.Debounce,
		Sentinel: components.SentinelOptions{
			Threshold:  a.cfg.UI.SentinelThreshold,
			RootMargin: a.cfg.UI.SentinelMargin,
		},
		RequestTimeout: a.cfg.API.Timeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
