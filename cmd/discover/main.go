package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/api"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/artwork"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/config"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/feed"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/log"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/pager"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/playback"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/player"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/suggest"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove the artwork cache and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("discover %s\n", Version)
		return
	}

	if err := run(clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(clearCache bool) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if clearCache {
		if err := config.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("Artwork cache cleared.")
		return nil
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting discover", "version", Version, "server", cfg.Server.URL)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("discover requires an interactive terminal")
	}

	// Backend client
	apiClient := api.NewClient(cfg.Server.URL, logger)

	// The TMDB key is served by the backend; without it movie artwork falls
	// back to the placeholder
	var tmdbKey string
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if remote, err := apiClient.FetchConfig(ctx); err != nil {
		logger.Warn("could not fetch backend config", "error", err)
	} else {
		tmdbKey = remote.TMDBAPIKey
	}
	cancel()

	// Artwork cache; fall back to memory-only if the cache dir is unusable
	store, err := artwork.NewStore(cfg.Artwork.CacheDir)
	if err != nil {
		logger.Warn("artwork cache unavailable, using memory only", "error", err)
		store, err = artwork.NewStore("")
		if err != nil {
			return fmt.Errorf("failed to create artwork store: %w", err)
		}
	}
	defer store.Close()

	tmdb := artwork.NewTMDbClient(tmdbKey, cfg.Artwork.RequestsPerSecond, cfg.Artwork.BurstLimit)
	itunes := artwork.NewITunesClient(cfg.Artwork.RequestsPerSecond, cfg.Artwork.BurstLimit)
	resolver := artwork.NewResolver(store, tmdb, itunes, logger)

	// Controllers publish UI events through the shared observer channel
	observer := tui.NewChannelObserver()

	audio := player.New(cfg.Player.Command, cfg.Player.Args, logger)
	playbackCtl := playback.NewController(apiClient, audio, observer, logger)
	defer playbackCtl.StopAll()

	resultFeed := feed.New(resolver, playbackCtl, cfg.UI.CompactCards)
	pageCtl := pager.New(apiClient, resultFeed, observer, cfg.Search.PageSize, logger)
	resultFeed.SetExhaustionSink(pageCtl)

	suggestEngine := suggest.NewEngine(
		apiClient,
		observer,
		time.Duration(cfg.Search.DebounceMillis)*time.Millisecond,
		cfg.Search.MinQueryLength,
		logger,
	)

	opener := player.NewOpener(logger)

	model := tui.NewModel(suggestEngine, pageCtl, playbackCtl, resultFeed, opener, observer, tui.Options{
		ScrollThreshold: cfg.Search.ScrollThreshold,
		HideHeader:      cfg.UI.HideHeader,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
