package game

import (
	"github.com/lox/pokertourney/poker"
)

// Player is a seat at the tournament table.
type Player struct {
	ID        int // seat index
	Name      string
	Persona   string
	Chips     int
	HoleCards []poker.Card
	Bet       int // committed on the current street
	TotalBet  int // committed during the whole hand

	HasActed     bool
	IsAllIn      bool
	HasFolded    bool
	IsEliminated bool
}

// InHand reports whether the player still contests the current hand.
func (p *Player) InHand() bool {
	return !p.HasFolded && !p.IsEliminated
}

// CanAct reports whether the betting round should give the player a turn.
func (p *Player) CanAct() bool {
	return p.InHand() && !(p.IsAllIn && p.HasActed)
}

// commit moves chips from the stack into the current bet, capped at the
// stack. It returns the amount actually moved.
func (p *Player) commit(amount int) int {
	amount = min(amount, p.Chips)
	if amount <= 0 {
		return 0
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.IsAllIn = true
		p.HasActed = true
	}
	return amount
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.HasActed = false
	p.IsAllIn = false
	p.HasFolded = false
}
