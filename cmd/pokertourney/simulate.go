package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokertourney/internal/simulate"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

type SimulateCmd struct {
	Tournaments int      `short:"n" default:"100" help:"Number of tournaments to play"`
	Workers     int      `short:"w" help:"Tournaments to run at once (default: GOMAXPROCS)"`
	Seed        int64    `help:"Master seed (0 picks one)"`
	Strategies  []string `short:"s" default:"calling-station,aggressive,tight,random" help:"Bot strategy for each seat"`
	Chips       int      `default:"1000" help:"Starting chips per seat"`
	SmallBlind  int      `default:"10" help:"Small blind"`
	BigBlind    int      `default:"20" help:"Big blind"`
	MaxHands    int      `default:"500" help:"Hand limit per tournament (0 for none)"`
	Report      string   `type:"path" help:"Write a TOML summary to this file"`
	Detailed    bool     `help:"Include one row per tournament in the report"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)
	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	res, err := simulate.Run(ctx, simulate.Options{
		Tournaments:   c.Tournaments,
		Workers:       c.Workers,
		Seed:          seed,
		Strategies:    c.Strategies,
		StartingChips: c.Chips,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		MaxHands:      c.MaxHands,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d tournaments in %s (seed %d)", c.Tournaments, time.Since(start).Round(time.Millisecond), seed)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Strategy\tWins\tWin %")
	for _, name := range res.Standings() {
		wins := res.Wins[name]
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", name, wins, 100*float64(wins)/float64(c.Tournaments))
	}
	_ = w.Flush()

	fmt.Printf("Hands per tournament: mean %.1f, sd %.1f, min %.0f, max %.0f\n",
		res.Hands.Mean(), res.Hands.StdDev(), res.Hands.Min, res.Hands.Max)
	if res.HandLimitHits > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d tournaments stopped at the hand limit", res.HandLimitHits)))
	}
	if res.ForcedShowdowns > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d forced showdowns", res.ForcedShowdowns)))
	}
	if res.Undistributed > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d chips left undistributed by split pots", res.Undistributed)))
	}
	if top := res.Standings(); len(top) > 0 {
		fmt.Println(winStyle.Render("Leader: " + top[0]))
	}

	if c.Report != "" {
		if err := simulate.WriteReport(c.Report, simulate.NewReport(res, seed, time.Now(), c.Detailed)); err != nil {
			return err
		}
		logger.Info("Report written", "path", c.Report)
	}
	return nil
}
