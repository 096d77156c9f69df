package game

import (
	"slices"

	"github.com/lox/pokertourney/poker"
)

// Pot is the main pot or a side pot. Eligible lists the non-folded seats that
// can win it; a pot whose contributors have all folded has no eligible seats.
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// PotManager collects street bets and splits them into main and side pots.
type PotManager struct {
	contributed []int // per seat, for the whole hand
	total       int
}

// NewPotManager creates a pot manager for a table with the given seat count.
func NewPotManager(seats int) *PotManager {
	return &PotManager{contributed: make([]int, seats)}
}

// Reset clears the pot for a new hand.
func (pm *PotManager) Reset() {
	clear(pm.contributed)
	pm.total = 0
}

// Total returns the amount collected so far this hand.
func (pm *PotManager) Total() int {
	return pm.total
}

// Collect moves every player's street bet into the pot.
func (pm *PotManager) Collect(players []*Player) {
	for _, p := range players {
		if p.Bet > 0 {
			pm.contributed[p.ID] += p.Bet
			pm.total += p.Bet
			p.Bet = 0
		}
	}
}

// Pots layers the collected chips by contribution tier when anyone is all-in.
// Each layer holds (tier - previous tier) from every seat that contributed at
// least the tier. Without an all-in there is a single pot.
func (pm *PotManager) Pots(players []*Player) []Pot {
	if pm.total == 0 {
		return nil
	}

	allIn := false
	for _, p := range players {
		if p.IsAllIn && pm.contributed[p.ID] > 0 {
			allIn = true
			break
		}
	}
	if !allIn {
		pot := Pot{Amount: pm.total, Eligible: []int{}}
		for _, p := range players {
			if pm.contributed[p.ID] > 0 && !p.HasFolded {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}
		return []Pot{pot}
	}

	tiers := make([]int, 0, len(players))
	for _, c := range pm.contributed {
		if c > 0 {
			tiers = append(tiers, c)
		}
	}
	slices.Sort(tiers)
	tiers = slices.Compact(tiers)

	var pots []Pot
	prev := 0
	for _, tier := range tiers {
		pot := Pot{Eligible: []int{}}
		for _, p := range players {
			c := pm.contributed[p.ID]
			if c >= tier {
				pot.Amount += tier - prev
				if !p.HasFolded {
					pot.Eligible = append(pot.Eligible, p.ID)
				}
			} else if c > prev {
				pot.Amount += c - prev
			}
		}
		prev = tier

		// Layers created by a folded player's tier merge into the one below.
		if n := len(pots); n > 0 && slices.Equal(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Amount += pot.Amount
			continue
		}
		pots = append(pots, pot)
	}
	return pots
}

// Payout is one award from one pot.
type Payout struct {
	Pot    int            `json:"pot"` // index into Resolution.Pots
	Seat   int            `json:"seat"`
	Amount int            `json:"amount"`
	Hand   poker.HandRank `json:"-"` // zero when the pot was won without a showdown
}

// Resolution is the outcome of distributing every pot.
type Resolution struct {
	Pots      []Pot
	Payouts   []Payout
	Remainder int // chips left over from uneven splits
	Showdown  bool
	Hands     map[int]poker.HandRank
}

// Won returns the total each seat received.
func (r Resolution) Won() map[int]int {
	won := make(map[int]int)
	for _, p := range r.Payouts {
		won[p.Seat] += p.Amount
	}
	return won
}

// Resolve awards every pot and empties the manager. Exact ties split evenly
// with the integer remainder left out of the payouts. A pot whose
// contributors all folded goes to the best hand still in the hand.
func (pm *PotManager) Resolve(players []*Player, board []poker.Card) Resolution {
	res := Resolution{Pots: pm.Pots(players)}
	defer pm.Reset()

	var contenders []int
	for _, p := range players {
		if p.InHand() {
			contenders = append(contenders, p.ID)
		}
	}
	if len(contenders) == 0 {
		for _, pot := range res.Pots {
			res.Remainder += pot.Amount
		}
		return res
	}

	if len(contenders) == 1 {
		for i, pot := range res.Pots {
			res.Payouts = append(res.Payouts, Payout{Pot: i, Seat: contenders[0], Amount: pot.Amount})
		}
		return res
	}

	res.Showdown = true
	res.Hands = make(map[int]poker.HandRank, len(contenders))
	for _, seat := range contenders {
		res.Hands[seat] = poker.Evaluate(players[seat].HoleCards, board)
	}

	for i, pot := range res.Pots {
		eligible := pot.Eligible
		if len(eligible) == 0 {
			eligible = contenders
		}

		var winners []int
		var best poker.HandRank
		for _, seat := range eligible {
			hand := res.Hands[seat]
			switch {
			case winners == nil || poker.Compare(hand, best) > 0:
				winners = []int{seat}
				best = hand
			case poker.Compare(hand, best) == 0:
				winners = append(winners, seat)
			}
		}

		share := pot.Amount / len(winners)
		res.Remainder += pot.Amount % len(winners)
		for _, seat := range winners {
			res.Payouts = append(res.Payouts, Payout{Pot: i, Seat: seat, Amount: share, Hand: best})
		}
	}
	return res
}
