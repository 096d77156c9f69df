package simulate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokertourney/internal/fileutil"
)

// Report is the TOML form of a finished simulation.
type Report struct {
	Generated       time.Time        `toml:"generated"`
	Seed            int64            `toml:"seed"`
	Tournaments     int              `toml:"tournaments"`
	ForcedShowdowns int              `toml:"forced_showdowns"`
	HandLimitHits   int              `toml:"hand_limit_hits"`
	Undistributed   int              `toml:"undistributed"`
	Hands           HandStats        `toml:"hands"`
	Standings       []Standing       `toml:"standing"`
	Results         []ReportedResult `toml:"result,omitempty"`
}

// HandStats summarises tournament lengths.
type HandStats struct {
	Mean   float64 `toml:"mean"`
	StdDev float64 `toml:"stddev"`
	Min    int     `toml:"min"`
	Max    int     `toml:"max"`
}

// Standing is one strategy's record.
type Standing struct {
	Strategy string  `toml:"strategy"`
	Wins     int     `toml:"wins"`
	WinRate  float64 `toml:"win_rate"`
}

// ReportedResult is one tournament line in a detailed report.
type ReportedResult struct {
	Index        int    `toml:"index"`
	Seed         int64  `toml:"seed"`
	Winner       string `toml:"winner"`
	Hands        int    `toml:"hands"`
	HandLimitHit bool   `toml:"hand_limit_hit"`
}

// NewReport builds a report from aggregated results. Per-tournament rows
// are included only when detailed is set.
func NewReport(res *Results, seed int64, generated time.Time, detailed bool) Report {
	r := Report{
		Generated:       generated.UTC().Truncate(time.Second),
		Seed:            seed,
		Tournaments:     len(res.Tournaments),
		ForcedShowdowns: res.ForcedShowdowns,
		HandLimitHits:   res.HandLimitHits,
		Undistributed:   res.Undistributed,
		Hands: HandStats{
			Mean:   res.Hands.Mean(),
			StdDev: res.Hands.StdDev(),
			Min:    int(res.Hands.Min),
			Max:    int(res.Hands.Max),
		},
	}
	for _, name := range res.Standings() {
		s := Standing{Strategy: name, Wins: res.Wins[name]}
		if r.Tournaments > 0 {
			s.WinRate = float64(s.Wins) / float64(r.Tournaments)
		}
		r.Standings = append(r.Standings, s)
	}
	if detailed {
		for _, t := range res.Tournaments {
			r.Results = append(r.Results, ReportedResult{
				Index: t.Index, Seed: t.Seed, Winner: t.Winner, Hands: t.Hands, HandLimitHit: t.HandLimitHit,
			})
		}
	}
	return r
}

// WriteReport encodes the report as TOML and replaces path atomically.
func WriteReport(path string, r Report) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "\t"
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
