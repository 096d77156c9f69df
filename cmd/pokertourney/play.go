package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/bot"
	"github.com/lox/pokertourney/internal/config"
	"github.com/lox/pokertourney/internal/decision"
	"github.com/lox/pokertourney/internal/display"
	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/spectator"
)

type PlayCmd struct {
	Config    string `short:"c" default:"pokertourney.hcl" help:"Path to HCL configuration file"`
	EnvFile   string `default:".env" help:"Environment file holding provider API keys"`
	Seed      int64  `help:"Tournament seed (overrides config, 0 picks one)"`
	MaxHands  int    `help:"Stop after this many hands (overrides config)"`
	Spectate  string `help:"Serve a read-only spectator feed on this address, e.g. :8080"`
	NoColor   bool   `help:"Disable coloured output"`
	HideCards bool   `help:"Hide hole cards until showdown"`
	Quiet     bool   `short:"q" help:"Print hand summaries only"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.MaxHands > 0 {
		cfg.Tournament.MaxHands = c.MaxHands
	}
	if c.Seed != 0 {
		cfg.Tournament.Seed = c.Seed
	}
	if cfg.Tournament.Seed == 0 {
		cfg.Tournament.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", c.EnvFile, err)
	}

	seats, err := buildSeats(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	renderOpts := []display.Option{display.WithHoleCards(!c.HideCards)}
	if c.NoColor {
		renderOpts = append(renderOpts, display.WithColor(false))
	}
	if c.Quiet {
		renderOpts = append(renderOpts, display.WithSummariesOnly())
	}

	opts := []game.TournamentOption{
		game.WithRNG(randutil.New(cfg.Tournament.Seed)),
		game.WithLogger(logger),
		game.WithStartingChips(cfg.Tournament.StartingChips),
		game.WithBlinds(cfg.Tournament.SmallBlind, cfg.Tournament.BigBlind),
		game.WithMaxHands(cfg.Tournament.MaxHands),
		game.WithDecisionTimeout(cfg.DecisionTimeout()),
		game.WithObserver(display.NewRenderer(os.Stdout, renderOpts...)),
	}

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()
	if c.Spectate != "" {
		hub := spectator.NewHub(logger)
		opts = append(opts, game.WithObserver(hub))
		g.Go(func() error { return hub.Serve(serveCtx, c.Spectate) })
	}

	tour := game.NewTournament(seats, opts...)
	logger.Info("Starting tournament", "id", tour.ID, "seed", cfg.Tournament.Seed, "seats", len(seats))

	var summary game.Summary
	g.Go(func() error {
		defer stopServing()
		var err error
		summary, err = tour.Run(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Tournament interrupted", "hands", tour.HandNumber())
			return nil
		}
		return err
	}

	logger.Info("Tournament finished", "winner", summary.WinnerName, "hands", summary.Hands,
		"forced_showdowns", summary.ForcedShowdowns, "undistributed", summary.Undistributed)
	return nil
}

func buildSeats(cfg *config.Config, logger *log.Logger) ([]game.Seat, error) {
	var apiKey string
	if cfg.UsesLLM() {
		apiKey = os.Getenv(cfg.Provider.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("%s is not set", cfg.Provider.APIKeyEnv)
		}
	}

	seats := make([]game.Seat, 0, len(cfg.Seats))
	for i, s := range cfg.Seats {
		var d game.Decider
		switch s.Provider {
		case config.ProviderLLM:
			llm := decision.NewLLM(decision.LLMConfig{
				BaseURL:   cfg.Provider.BaseURL,
				Model:     cfg.Provider.Model,
				APIKey:    apiKey,
				Rationale: cfg.Provider.Rationale,
			}, logger.With("player", s.Name))
			d = &decision.Retrying{
				Provider: llm,
				Attempts: cfg.Provider.Retries + 1,
				Backoff:  cfg.Backoff(),
				Clock:    quartz.NewReal(),
				Logger:   logger,
			}
		default:
			var err error
			d, err = bot.New(s.Strategy, randutil.New(randutil.Derive(cfg.Tournament.Seed, i+1)), logger)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", s.Name, err)
			}
		}
		seats = append(seats, game.Seat{Name: s.Name, Persona: s.Persona, Chips: cfg.Tournament.StartingChips, Decider: d})
	}
	return seats, nil
}
