package simulate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Tournaments: 8,
		Workers:     3,
		Seed:        99,
		Strategies:  []string{"calling-station", "aggressive", "tight", "random"},
		MaxHands:    300,
	}
}

func TestRunAggregates(t *testing.T) {
	t.Parallel()
	res, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	require.Len(t, res.Tournaments, 8)
	wins := 0
	for _, n := range res.Wins {
		wins += n
	}
	assert.Equal(t, 8, wins, "every tournament crowns a winner")
	assert.Len(t, res.Standings(), 4)
	assert.Equal(t, 8, res.Hands.N)
	assert.LessOrEqual(t, res.Hands.Max, 300.0)

	for i, r := range res.Tournaments {
		assert.Equal(t, i, r.Index)
		assert.Greater(t, r.Hands, 0)
	}
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()
	a, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	opts := testOptions()
	opts.Workers = 1
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Tournaments, b.Tournaments, "scheduling must not change outcomes")
}

func TestRunRejectsBadOptions(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.Tournaments = 0
	_, err := Run(context.Background(), opts)
	assert.ErrorContains(t, err, "tournaments must be positive")

	opts = testOptions()
	opts.Strategies = []string{"tight"}
	_, err = Run(context.Background(), opts)
	assert.ErrorContains(t, err, "at least two strategies")

	opts = testOptions()
	opts.Strategies = []string{"tight", "shark"}
	_, err = Run(context.Background(), opts)
	assert.ErrorContains(t, err, "unknown bot strategy")
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	t.Parallel()
	var s Stats
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())

	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}
	assert.Equal(t, 5.0, s.Mean())
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.StdDev(), 1e-9)
}
