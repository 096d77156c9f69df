// Package simulate plays many independent bot tournaments in parallel and
// aggregates the results.
package simulate

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/bot"
	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/randutil"
)

// Options configures a simulation run.
type Options struct {
	Tournaments   int
	Workers       int // defaults to GOMAXPROCS
	Seed          int64
	Strategies    []string // one seat per entry
	StartingChips int
	SmallBlind    int
	BigBlind      int
	MaxHands      int
	Logger        *log.Logger
}

// TournamentResult is the outcome of one simulated tournament.
type TournamentResult struct {
	Index           int
	Seed            int64
	Winner          string // strategy of the winning seat
	Hands           int
	ForcedShowdowns int
	Undistributed   int
	HandLimitHit    bool
}

// Results aggregates every tournament in a run.
type Results struct {
	Tournaments     []TournamentResult
	Wins            map[string]int
	Hands           Stats
	ForcedShowdowns int
	HandLimitHits   int
	Undistributed   int
}

// Standings returns strategies ordered by wins, most first.
func (r *Results) Standings() []string {
	names := make([]string, 0, len(r.Wins))
	for name := range r.Wins {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Wins[names[i]] != r.Wins[names[j]] {
			return r.Wins[names[i]] > r.Wins[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func (o *Options) applyDefaults() error {
	if o.Tournaments <= 0 {
		return fmt.Errorf("tournaments must be positive, got %d", o.Tournaments)
	}
	if len(o.Strategies) < 2 {
		return fmt.Errorf("need at least two strategies, got %d", len(o.Strategies))
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.StartingChips == 0 {
		o.StartingChips = 1000
	}
	if o.SmallBlind == 0 && o.BigBlind == 0 {
		o.SmallBlind, o.BigBlind = 10, 20
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Run plays opts.Tournaments tournaments with at most opts.Workers running
// at once. Tournament i is seeded from randutil.Derive(opts.Seed, i) so a
// run is reproducible regardless of scheduling. The first chip conservation
// failure cancels the run.
func Run(ctx context.Context, opts Options) (*Results, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}
	for _, s := range opts.Strategies {
		if _, err := bot.New(s, randutil.New(0), opts.Logger); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger.WithPrefix("simulate")

	results := make([]TournamentResult, opts.Tournaments)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range opts.Tournaments {
		g.Go(func() error {
			res, err := playOne(ctx, opts, i)
			if err != nil {
				return fmt.Errorf("tournament %d (seed %d): %w", i, res.Seed, err)
			}
			results[i] = res
			logger.Debug("Tournament finished", "index", i, "winner", res.Winner, "hands", res.Hands)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := &Results{Tournaments: results, Wins: make(map[string]int)}
	for _, s := range opts.Strategies {
		agg.Wins[s] = 0
	}
	for _, r := range results {
		if r.Winner != "" {
			agg.Wins[r.Winner]++
		}
		agg.Hands.Add(float64(r.Hands))
		agg.ForcedShowdowns += r.ForcedShowdowns
		agg.Undistributed += r.Undistributed
		if r.HandLimitHit {
			agg.HandLimitHits++
		}
	}
	logger.Info("Simulation complete", "tournaments", opts.Tournaments, "mean_hands", agg.Hands.Mean(),
		"forced_showdowns", agg.ForcedShowdowns)
	return agg, nil
}

func playOne(ctx context.Context, opts Options, index int) (TournamentResult, error) {
	seed := randutil.Derive(opts.Seed, index)
	res := TournamentResult{Index: index, Seed: seed}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// rotate seats so no strategy always starts on the button
	n := len(opts.Strategies)
	strategies := make([]string, n)
	seats := make([]game.Seat, n)
	for s := range n {
		strategy := opts.Strategies[(s+index)%n]
		d, err := bot.New(strategy, randutil.New(randutil.Derive(seed, s+1)), opts.Logger)
		if err != nil {
			return res, err
		}
		strategies[s] = strategy
		seats[s] = game.Seat{Name: fmt.Sprintf("%s #%d", strategy, s+1), Decider: d}
	}

	tour := game.NewTournament(seats,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(opts.Logger),
		game.WithStartingChips(opts.StartingChips),
		game.WithBlinds(opts.SmallBlind, opts.BigBlind),
		game.WithMaxHands(opts.MaxHands),
		game.WithID(fmt.Sprintf("sim-%d", index)),
	)
	summary, err := tour.Run(ctx)
	if err != nil {
		return res, err
	}
	if err := tour.ValidateChipConservation(); err != nil {
		return res, err
	}

	res.Hands = summary.Hands
	res.ForcedShowdowns = summary.ForcedShowdowns
	res.Undistributed = summary.Undistributed
	res.HandLimitHit = summary.HandLimitHit
	if summary.Winner >= 0 {
		res.Winner = strategies[summary.Winner]
	}
	return res, nil
}
