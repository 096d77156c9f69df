package game

import (
	"slices"

	"github.com/lox/pokertourney/poker"
)

// UpdateKind says what mutation produced a snapshot.
type UpdateKind int

const (
	HandStarted UpdateKind = iota
	ActionTaken
	StreetDealt
	HandEnded
	TournamentEnded
)

func (k UpdateKind) String() string {
	if k < HandStarted || k > TournamentEnded {
		return "unknown"
	}
	return [...]string{"hand_started", "action", "street_dealt", "hand_ended", "tournament_ended"}[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k UpdateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SeatSnapshot is the read-only view of one seat.
type SeatSnapshot struct {
	Seat       int          `json:"seat"`
	Name       string       `json:"name"`
	Chips      int          `json:"chips"`
	Bet        int          `json:"bet"`
	HoleCards  []poker.Card `json:"-"`
	Cards      []string     `json:"cards,omitempty"`
	Folded     bool         `json:"folded"`
	AllIn      bool         `json:"all_in"`
	Eliminated bool         `json:"eliminated"`
	Active     bool         `json:"active"` // holds the turn
}

// Snapshot is an immutable copy of the tournament state for presentation.
type Snapshot struct {
	Kind           UpdateKind     `json:"kind"`
	TournamentID   string         `json:"tournament_id"`
	HandNumber     int            `json:"hand_number"`
	Street         Street         `json:"street"`
	Pot            int            `json:"pot"` // collected pots plus bets on the current street
	TableBet       int            `json:"table_bet"`
	Community      []poker.Card   `json:"-"`
	Board          []string       `json:"board"`
	Players        []SeatSnapshot `json:"players"`
	DealerSeat     int            `json:"dealer_seat"`
	SmallBlindSeat int            `json:"small_blind_seat"`
	BigBlindSeat   int            `json:"big_blind_seat"`
	Pots           []Pot          `json:"pots"`
	InProgress     bool           `json:"in_progress"`
	Over           bool           `json:"over"`
	Winner         int            `json:"winner"` // -1 until the tournament is over
	Events         []string       `json:"events"` // log lines added since the previous snapshot

	// Action is the move just applied; set on ActionTaken only.
	Action *ActionResult `json:"action,omitempty"`
	// Payouts and Showdown describe the finished hand on HandEnded.
	Payouts  []Payout `json:"payouts,omitempty"`
	Showdown bool     `json:"showdown,omitempty"`
}

// Observer receives a snapshot after every state mutation. Observe is called
// synchronously from the tournament goroutine.
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

// Snapshot returns a copy of the current state. Hole cards of every seat are
// included; observers that publish snapshots decide what to reveal.
func (t *Tournament) Snapshot() Snapshot {
	s := Snapshot{
		TournamentID:   t.ID,
		HandNumber:     t.handNumber,
		Street:         t.street,
		Pot:            t.potTotal(),
		Community:      slices.Clone(t.community),
		Board:          cardStrings(t.community),
		DealerSeat:     t.dealer,
		SmallBlindSeat: t.sbSeat,
		BigBlindSeat:   t.bbSeat,
		Pots:           t.pots.Pots(t.players),
		InProgress:     t.inProgress,
		Over:           t.over,
		Winner:         t.winner,
	}
	current := -1
	if t.round != nil && t.inProgress {
		s.TableBet = t.round.TableBet
		current = t.round.Current()
	}
	for _, p := range t.players {
		s.Players = append(s.Players, SeatSnapshot{
			Seat:       p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			Bet:        p.Bet,
			HoleCards:  slices.Clone(p.HoleCards),
			Cards:      cardStrings(p.HoleCards),
			Folded:     p.HasFolded,
			AllIn:      p.IsAllIn,
			Eliminated: p.IsEliminated,
			Active:     p.ID == current,
		})
	}
	return s
}

// Masked returns a copy with hole cards hidden unless the hand went to a
// showdown. Uncontested winners and folded hands are never revealed.
func (s Snapshot) Masked() Snapshot {
	out := s
	out.Players = slices.Clone(s.Players)
	reveal := s.Street == Showdown || s.Showdown
	for i := range out.Players {
		if !reveal || out.Players[i].Folded {
			out.Players[i].HoleCards = nil
			out.Players[i].Cards = nil
		}
	}
	return out
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// OpponentView is what a player can see of another seat.
type OpponentView struct {
	Name   string
	Chips  int
	Bet    int
	Folded bool
	AllIn  bool
}

// View is the information handed to a decider for one turn.
type View struct {
	Seat      int
	Name      string
	Persona   string
	HoleCards []poker.Card
	Community []poker.Card
	Chips     int
	Bet       int
	Pot       int
	TableBet  int
	ToCall    int
	MinRaise  int // raise-to minimum, zero when raising is impossible
	MaxRaise  int // raise-to maximum (all-in)
	BigBlind  int
	Street    Street
	Opponents []OpponentView
	Legal     []ActionKind
	Hand      int
}

// CanCheck reports whether checking is legal.
func (v View) CanCheck() bool {
	return slices.Contains(v.Legal, Check)
}

// CanRaise reports whether a bet or raise is legal.
func (v View) CanRaise() bool {
	return slices.Contains(v.Legal, Bet) || slices.Contains(v.Legal, Raise)
}

// RaiseKind returns Bet when nobody has bet this street and Raise otherwise.
func (v View) RaiseKind() ActionKind {
	if v.TableBet == 0 {
		return Bet
	}
	return Raise
}

func (t *Tournament) viewFor(p *Player) View {
	toCall, minTo, maxTo := t.round.Limits(p)
	v := View{
		Seat:      p.ID,
		Name:      p.Name,
		Persona:   p.Persona,
		HoleCards: slices.Clone(p.HoleCards),
		Community: slices.Clone(t.community),
		Chips:     p.Chips,
		Bet:       p.Bet,
		Pot:       t.potTotal(),
		TableBet:  t.round.TableBet,
		ToCall:    toCall,
		MinRaise:  minTo,
		MaxRaise:  maxTo,
		BigBlind:  t.cfg.bigBlind,
		Street:    t.street,
		Legal:     t.round.LegalActions(p),
		Hand:      t.handNumber,
	}
	for _, o := range t.players {
		if o == p || o.IsEliminated {
			continue
		}
		v.Opponents = append(v.Opponents, OpponentView{
			Name: o.Name, Chips: o.Chips, Bet: o.Bet, Folded: o.HasFolded, AllIn: o.IsAllIn,
		})
	}
	return v
}
