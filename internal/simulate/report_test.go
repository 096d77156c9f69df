package simulate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() *Results {
	res := &Results{
		Tournaments: []TournamentResult{
			{Index: 0, Seed: 11, Winner: "tight", Hands: 120},
			{Index: 1, Seed: 12, Winner: "aggressive", Hands: 80},
			{Index: 2, Seed: 13, Winner: "tight", Hands: 500, HandLimitHit: true},
		},
		Wins:          map[string]int{"tight": 2, "aggressive": 1, "folder": 0},
		HandLimitHits: 1,
		Undistributed: 1,
	}
	for _, t := range res.Tournaments {
		res.Hands.Add(float64(t.Hands))
	}
	return res
}

func TestNewReport(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 30, 45, 500, time.UTC)
	r := NewReport(sampleResults(), 7, at, false)

	assert.Equal(t, 3, r.Tournaments)
	assert.Equal(t, int64(7), r.Seed)
	assert.Equal(t, at.Truncate(time.Second), r.Generated)
	assert.Equal(t, 80, r.Hands.Min)
	assert.Equal(t, 500, r.Hands.Max)
	assert.Empty(t, r.Results)

	require.Len(t, r.Standings, 3)
	assert.Equal(t, "tight", r.Standings[0].Strategy)
	assert.InDelta(t, 2.0/3.0, r.Standings[0].WinRate, 1e-9)
	assert.Equal(t, "folder", r.Standings[2].Strategy)

	detailed := NewReport(sampleResults(), 7, at, true)
	require.Len(t, detailed.Results, 3)
	assert.True(t, detailed.Results[2].HandLimitHit)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.toml")
	want := NewReport(sampleResults(), 7, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), true)
	require.NoError(t, WriteReport(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[[standing]]")
	assert.Contains(t, string(raw), `strategy = "tight"`)

	var got Report
	_, err = toml.DecodeFile(path, &got)
	require.NoError(t, err)
	assert.True(t, want.Generated.Equal(got.Generated))
	assert.Equal(t, want.Standings, got.Standings)
	assert.Equal(t, want.Results, got.Results)
}

func TestWriteReportBadPath(t *testing.T) {
	t.Parallel()
	err := WriteReport(filepath.Join(t.TempDir(), "nope", "report.toml"), NewReport(sampleResults(), 1, time.Now(), false))
	assert.Error(t, err)
}
