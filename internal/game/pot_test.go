package game

import (
	"reflect"
	"testing"

	"github.com/lox/pokertourney/poker"
)

func TestCollectBets(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Chips: 80, Bet: 20},
		{ID: 1, Chips: 70, Bet: 30},
		{ID: 2, Chips: 60, Bet: 40},
	}

	pm := NewPotManager(len(players))
	pm.Collect(players)

	if pm.Total() != 90 {
		t.Errorf("Pot should be 90 (20+30+40), got %d", pm.Total())
	}
	for i, p := range players {
		if p.Bet != 0 {
			t.Errorf("Player %d bet should be 0 after collection, got %d", i, p.Bet)
		}
	}

	pots := pm.Pots(players)
	if len(pots) != 1 || pots[0].Amount != 90 {
		t.Fatalf("Expected single pot of 90, got %+v", pots)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 2}) {
		t.Errorf("Eligible = %v, want [0 1 2]", pots[0].Eligible)
	}
}

func TestSidePotLayers(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 50, IsAllIn: true},
		{ID: 1, Bet: 150, IsAllIn: true},
		{ID: 2, Bet: 300, IsAllIn: true},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	want := []Pot{
		{Amount: 150, Eligible: []int{0, 1, 2}},
		{Amount: 200, Eligible: []int{1, 2}},
		{Amount: 150, Eligible: []int{2}},
	}
	got := pm.Pots(players)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pots() = %+v, want %+v", got, want)
	}

	sum := 0
	for _, p := range got {
		sum += p.Amount
	}
	if sum != pm.Total() {
		t.Errorf("pots sum to %d, collected %d", sum, pm.Total())
	}
}

func TestSidePotsCollectedAcrossStreets(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 20},
		{ID: 1, Bet: 20},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	players[0].Bet = 80
	players[0].IsAllIn = true
	players[1].Bet = 200
	pm.Collect(players)

	got := pm.Pots(players)
	want := []Pot{
		{Amount: 200, Eligible: []int{0, 1}},
		{Amount: 120, Eligible: []int{1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pots() = %+v, want %+v", got, want)
	}
}

func TestFoldedContributionMergesIntoLayer(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 30, HasFolded: true},
		{ID: 1, Bet: 100, IsAllIn: true},
		{ID: 2, Bet: 200},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	want := []Pot{
		{Amount: 230, Eligible: []int{1, 2}},
		{Amount: 100, Eligible: []int{2}},
	}
	if got := pm.Pots(players); !reflect.DeepEqual(got, want) {
		t.Fatalf("Pots() = %+v, want %+v", got, want)
	}
}

func TestResolveSidePotWinners(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 50, IsAllIn: true, HoleCards: poker.MustParseCards("AsAh")},
		{ID: 1, Bet: 150, IsAllIn: true, HoleCards: poker.MustParseCards("KhKs")},
		{ID: 2, Bet: 300, IsAllIn: true, HoleCards: poker.MustParseCards("QcQd")},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	res := pm.Resolve(players, poker.MustParseCards("2c7d9hJs4d"))
	if !res.Showdown {
		t.Fatal("expected a showdown")
	}
	won := res.Won()
	if won[0] != 150 || won[1] != 200 || won[2] != 150 {
		t.Errorf("won = %v, want 0:150 1:200 2:150", won)
	}
	if res.Remainder != 0 {
		t.Errorf("remainder = %d, want 0", res.Remainder)
	}
	if pm.Total() != 0 {
		t.Errorf("pot not emptied after resolve: %d", pm.Total())
	}
}

func TestResolveSplitLeavesRemainder(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 15, HoleCards: poker.MustParseCards("2c3d")},
		{ID: 1, Bet: 15, HoleCards: poker.MustParseCards("2d3s")},
		{ID: 2, Bet: 15, HasFolded: true, HoleCards: poker.MustParseCards("4c5c")},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	res := pm.Resolve(players, poker.MustParseCards("AhKdQsJc9h"))
	won := res.Won()
	if won[0] != 22 || won[1] != 22 {
		t.Errorf("won = %v, want 22 each", won)
	}
	if won[2] != 0 {
		t.Errorf("folded player won %d", won[2])
	}
	if res.Remainder != 1 {
		t.Errorf("remainder = %d, want 1", res.Remainder)
	}
}

func TestResolveOrphanLayerGoesToBestRemainingHand(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 50, IsAllIn: true, HoleCards: poker.MustParseCards("AsAh")},
		{ID: 1, Bet: 100, IsAllIn: true, HoleCards: poker.MustParseCards("KhKs")},
		{ID: 2, Bet: 300, HasFolded: true, HoleCards: poker.MustParseCards("QcQd")},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	res := pm.Resolve(players, poker.MustParseCards("2c7d9hJs4d"))
	won := res.Won()
	// Main pot 150 and the orphaned 200 go to seat 0; seat 1 takes its own layer.
	if won[0] != 350 || won[1] != 100 {
		t.Errorf("won = %v, want 0:350 1:100", won)
	}
}

func TestResolveSingleContenderSkipsEvaluation(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: 0, Bet: 10, HasFolded: true},
		{ID: 1, Bet: 20},
	}
	pm := NewPotManager(len(players))
	pm.Collect(players)

	res := pm.Resolve(players, nil)
	if res.Showdown {
		t.Error("single contender should not go to showdown")
	}
	if len(res.Payouts) != 1 || res.Payouts[0].Seat != 1 || res.Payouts[0].Amount != 30 {
		t.Errorf("payouts = %+v", res.Payouts)
	}
}
