package game

import (
	"errors"
	"fmt"
)

// Street is the phase of a hand. Streets only ever move forward.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < PreFlop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrNoActor is returned when turn advancement exhausts its attempts without
// finding a player able to act while the round is still open.
var ErrNoActor = errors.New("no player able to act")

// BettingRound sequences turns on one street and enforces legal actions.
type BettingRound struct {
	Street   Street
	TableBet int
	BigBlind int

	players []*Player
	current int
}

// NewBettingRound creates a round over the given seats. The table bet is the
// amount every contender must match (the big blind preflop, zero afterwards).
func NewBettingRound(players []*Player, street Street, tableBet, bigBlind int) *BettingRound {
	return &BettingRound{
		Street:   street,
		TableBet: tableBet,
		BigBlind: bigBlind,
		players:  players,
		current:  -1,
	}
}

// Start places the turn on the first seat at or after from that can act.
func (br *BettingRound) Start(from int) error {
	n := len(br.players)
	for i := range 2 * n {
		seat := ((from+i)%n + n) % n
		if br.players[seat].CanAct() {
			br.current = seat
			return nil
		}
	}
	br.current = -1
	return ErrNoActor
}

// Current returns the seat whose turn it is, or -1.
func (br *BettingRound) Current() int {
	return br.current
}

// Actor returns the player whose turn it is, or nil.
func (br *BettingRound) Actor() *Player {
	if br.current < 0 || br.current >= len(br.players) {
		return nil
	}
	return br.players[br.current]
}

// Advance moves the turn to the next seat that can act. The search is
// bounded to twice the seat count.
func (br *BettingRound) Advance() error {
	n := len(br.players)
	for i := 1; i <= 2*n; i++ {
		seat := (br.current + i) % n
		if br.players[seat].CanAct() {
			br.current = seat
			return nil
		}
	}
	return ErrNoActor
}

// ShouldEnd reports whether the street is settled.
func (br *BettingRound) ShouldEnd() bool {
	var inHand, open, openActed, openSettled int
	for _, p := range br.players {
		if !p.InHand() {
			continue
		}
		inHand++
		if p.IsAllIn {
			continue
		}
		open++
		if p.HasActed {
			openActed++
			if p.Bet == br.TableBet {
				openSettled++
			}
		}
	}

	switch {
	case inHand < 2:
		return true
	case open == 0:
		return true
	case open == 1 && openActed == 1:
		return true
	default:
		return openSettled == open
	}
}

// Limits returns what the player owes to call and the bounds of a bet or
// raise, both expressed as raise-to totals for the street. When the player
// cannot put in more than the table bet minTo and maxTo are zero.
func (br *BettingRound) Limits(p *Player) (toCall, minTo, maxTo int) {
	toCall = min(max(br.TableBet-p.Bet, 0), p.Chips)
	stack := p.Bet + p.Chips
	if stack <= br.TableBet {
		return toCall, 0, 0
	}
	return toCall, min(br.TableBet+br.BigBlind, stack), stack
}

// LegalActions lists the actions open to the player right now.
func (br *BettingRound) LegalActions(p *Player) []ActionKind {
	actions := []ActionKind{Fold}
	if p.Bet == br.TableBet {
		actions = append(actions, Check)
	}
	if br.TableBet > p.Bet {
		actions = append(actions, Call)
	}
	if p.Bet+p.Chips > br.TableBet {
		if br.TableBet == 0 {
			actions = append(actions, Bet)
		} else {
			actions = append(actions, Raise)
		}
	}
	return actions
}

// Fallback is the decision used when a decider errors or times out: check
// when free, otherwise fold. This is stricter than Sanitize, which turns an
// unusable but parsed decision into check or call; a seat that produced no
// decision at all is not put further into the pot.
func (br *BettingRound) Fallback(p *Player) Decision {
	if p.Bet == br.TableBet {
		return Decision{Action: Check}
	}
	return Decision{Action: Fold}
}

// Sanitize coerces an external decision into a legal one for the current
// actor. It is the only route by which outside input reaches Apply. The
// returned note is non-empty when the decision had to be changed.
func (br *BettingRound) Sanitize(d Decision) (Decision, string) {
	p := br.Actor()
	if p == nil {
		return Decision{Action: Fold}, "no actor"
	}
	toCall, minTo, maxTo := br.Limits(p)
	passive := func() Decision {
		if toCall == 0 && p.Bet == br.TableBet {
			return Decision{Action: Check, Reasoning: d.Reasoning}
		}
		return Decision{Action: Call, Amount: toCall, Reasoning: d.Reasoning}
	}

	switch d.Action {
	case Fold:
		return Decision{Action: Fold, Reasoning: d.Reasoning}, ""
	case Check:
		if p.Bet == br.TableBet {
			return Decision{Action: Check, Reasoning: d.Reasoning}, ""
		}
		return passive(), "cannot check, calling"
	case Call:
		if br.TableBet <= p.Bet {
			return passive(), "nothing to call, checking"
		}
		return Decision{Action: Call, Amount: toCall, Reasoning: d.Reasoning}, ""
	case Bet, Raise:
		if maxTo == 0 {
			out := passive()
			return out, fmt.Sprintf("cannot %s, %s instead", d.Action, out.Action)
		}
		if d.Amount <= br.TableBet {
			out := passive()
			return out, fmt.Sprintf("%s without a usable amount, %s instead", d.Action, out.Action)
		}
		kind := Raise
		if br.TableBet == 0 {
			kind = Bet
		}
		amount := d.Amount
		var note string
		switch {
		case amount < minTo:
			amount = minTo
			note = fmt.Sprintf("%s to %d below minimum, raised to %d", d.Action, d.Amount, minTo)
		case amount > maxTo:
			amount = maxTo
			note = fmt.Sprintf("%s to %d exceeds stack, all-in for %d", d.Action, d.Amount, maxTo)
		}
		if kind != d.Action && note == "" {
			note = fmt.Sprintf("%s treated as %s", d.Action, kind)
		}
		return Decision{Action: kind, Amount: amount, Reasoning: d.Reasoning}, note
	default:
		return Decision{Action: Fold, Reasoning: d.Reasoning}, fmt.Sprintf("unknown action %d, folding", int(d.Action))
	}
}

// ActionResult describes an applied action.
type ActionResult struct {
	Seat   int        `json:"seat"`
	Action ActionKind `json:"action"`
	Chips  int        `json:"chips"` // chips moved from stack to bet by this action
	Total  int        `json:"total"` // player's bet on this street after the action
	AllIn  bool       `json:"all_in"`
}

// Apply performs a sanitized decision for the current actor.
func (br *BettingRound) Apply(d Decision) (ActionResult, error) {
	p := br.Actor()
	if p == nil {
		return ActionResult{}, ErrNoActor
	}
	res := ActionResult{Seat: p.ID, Action: d.Action}

	switch d.Action {
	case Fold:
		p.HasFolded = true
	case Check:
		if p.Bet != br.TableBet {
			return res, fmt.Errorf("%s cannot check facing %d", p.Name, br.TableBet-p.Bet)
		}
	case Call:
		if br.TableBet <= p.Bet {
			return res, fmt.Errorf("%s has nothing to call", p.Name)
		}
		res.Chips = p.commit(br.TableBet - p.Bet)
	case Bet, Raise:
		_, minTo, maxTo := br.Limits(p)
		if maxTo == 0 || d.Amount < minTo || d.Amount > maxTo {
			return res, fmt.Errorf("%s %s to %d outside [%d, %d]", p.Name, d.Action, d.Amount, minTo, maxTo)
		}
		res.Chips = p.commit(d.Amount - p.Bet)
		br.TableBet = p.Bet
		for _, other := range br.players {
			if other != p && other.InHand() && !other.IsAllIn {
				other.HasActed = false
			}
		}
	default:
		return res, fmt.Errorf("unknown action %d", int(d.Action))
	}

	p.HasActed = true
	res.Total = p.Bet
	res.AllIn = p.IsAllIn
	return res, nil
}
