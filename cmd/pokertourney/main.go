package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Debug    bool             `help:"Enable debug logging"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Run one tournament from a config file"`
	Simulate SimulateCmd      `cmd:"" help:"Run many bot tournaments in parallel"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate hole cards against a board"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertourney"),
		kong.Description("Texas Hold'em tournaments between automated players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
