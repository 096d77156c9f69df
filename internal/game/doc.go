// Package game implements the Texas Hold'em rules engine for a single-table
// tournament between automated players.
//
// The main type is Tournament, which owns every piece of mutable state: the
// seats, the deck, the betting round, the pots and the action log. Nothing in
// the package is global, so independent tournaments can run side by side.
//
// # Basic Usage
//
//	t := game.NewTournament([]game.Seat{
//	    {Name: "Alice", Decider: alice},
//	    {Name: "Bob", Decider: bob},
//	}, game.WithRNG(randutil.New(42)), game.WithBlinds(10, 20))
//	summary, err := t.Run(ctx)
//
// Run plays hands until one player holds every chip (or the hand limit is
// reached). PlayHand and Step expose the same loop one hand or one turn at a
// time.
//
// # Architecture
//
// Tournament delegates to specialized components:
//   - BettingRound: turn order, legal actions, Sanitize and round completion
//   - PotManager: bet collection, side-pot layering and payouts
//   - poker.Deck and poker.Evaluate: dealing and hand ranking
//
// Deciders are the only suspension point. Each call runs under a deadline
// from the tournament's quartz.Clock; failures fall back to check or fold.
// Every decision passes through BettingRound.Sanitize before it is applied.
//
// Observers receive a Snapshot after every mutation, carrying the action
// log lines produced since the previous snapshot.
package game
