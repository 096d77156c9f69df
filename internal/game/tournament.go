package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/lox/pokertourney/poker"
)

var (
	// ErrTournamentOver is returned when a hand is requested after a winner
	// has been decided.
	ErrTournamentOver = errors.New("tournament is over")
	// ErrDecisionTimeout is reported when a decider misses the turn deadline.
	ErrDecisionTimeout = errors.New("decision timed out")
	// ErrChipConservation is wrapped by PlayHand when chips appeared or vanished.
	ErrChipConservation = errors.New("chip conservation violated")
	// ErrHandInProgress is returned by StartNextHand while a hand is running.
	ErrHandInProgress = errors.New("hand already in progress")
	// ErrNoHand is returned by Step when no hand is running.
	ErrNoHand = errors.New("no hand in progress")
)

// Decider chooses an action for a seat. It is the only point where the
// tournament waits on the outside world.
type Decider interface {
	Decide(ctx context.Context, v View) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, v View) (Decision, error)

func (f DeciderFunc) Decide(ctx context.Context, v View) (Decision, error) { return f(ctx, v) }

// Seat configures one player at tournament creation.
type Seat struct {
	Name    string
	Persona string
	Chips   int // starting stack; zero uses the tournament default
	Decider Decider
}

// TournamentOption configures a Tournament during creation.
type TournamentOption func(*tournamentConfig)

type tournamentConfig struct {
	rng             *rand.Rand
	logger          *log.Logger
	clock           quartz.Clock
	observers       []Observer
	startingChips   int
	smallBlind      int
	bigBlind        int
	maxHands        int
	decisionTimeout time.Duration
	dealer          int
	deckFactory     func(hand int, rng *rand.Rand) *poker.Deck
	id              string
}

// WithRNG sets the random source used to shuffle every hand.
func WithRNG(rng *rand.Rand) TournamentOption {
	return func(c *tournamentConfig) { c.rng = rng }
}

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) TournamentOption {
	return func(c *tournamentConfig) { c.logger = logger }
}

// WithClock sets the clock driving decision deadlines.
func WithClock(clock quartz.Clock) TournamentOption {
	return func(c *tournamentConfig) { c.clock = clock }
}

// WithObserver registers an observer for state snapshots.
func WithObserver(o Observer) TournamentOption {
	return func(c *tournamentConfig) { c.observers = append(c.observers, o) }
}

// WithStartingChips sets the default stack for seats without an explicit one.
func WithStartingChips(chips int) TournamentOption {
	return func(c *tournamentConfig) { c.startingChips = chips }
}

// WithBlinds sets the fixed small and big blind.
func WithBlinds(small, big int) TournamentOption {
	return func(c *tournamentConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithMaxHands ends the tournament after n hands with the chip leader as
// winner. Zero means no limit.
func WithMaxHands(n int) TournamentOption {
	return func(c *tournamentConfig) { c.maxHands = n }
}

// WithDecisionTimeout sets the per-turn deadline.
func WithDecisionTimeout(d time.Duration) TournamentOption {
	return func(c *tournamentConfig) { c.decisionTimeout = d }
}

// WithDealer sets the dealer seat for the first hand.
func WithDealer(seat int) TournamentOption {
	return func(c *tournamentConfig) { c.dealer = seat }
}

// WithDeckFactory overrides deck construction, mainly to stack decks in tests.
func WithDeckFactory(f func(hand int, rng *rand.Rand) *poker.Deck) TournamentOption {
	return func(c *tournamentConfig) { c.deckFactory = f }
}

// WithID sets the tournament ID instead of generating one.
func WithID(id string) TournamentOption {
	return func(c *tournamentConfig) { c.id = id }
}

// HandResult summarizes a finished hand.
type HandResult struct {
	HandNumber     int
	Resolution     Resolution
	Board          []poker.Card
	ForcedShowdown bool
	Eliminated     []int
}

// Summary is the outcome of a whole tournament.
type Summary struct {
	ID              string
	Winner          int
	WinnerName      string
	Hands           int
	Chips           []int
	Eliminated      []int
	Undistributed   int
	ForcedShowdowns int
	HandLimitHit    bool
}

// Tournament owns all state of a single-table tournament. It is not safe
// for concurrent use; independent tournaments share nothing.
type Tournament struct {
	ID string

	cfg      tournamentConfig
	logger   *log.Logger
	players  []*Player
	deciders []Decider

	deck      *poker.Deck
	community []poker.Card
	street    Street
	pots      *PotManager
	round     *BettingRound

	handNumber int
	dealer     int
	sbSeat     int
	bbSeat     int
	eliminated []int
	inProgress bool
	over       bool
	winner     int
	limitHit   bool

	// Undistributed counts chips lost to uneven split remainders.
	Undistributed int

	startingTotal   int
	forcedShowdowns int
	forcedThisHand  bool
	last            *HandResult
	lastAction      *ActionResult

	log     ActionLog
	logMark int
}

// NewTournament creates a tournament. It panics on fewer than two seats,
// more than ten, or a nil RNG.
func NewTournament(seats []Seat, opts ...TournamentOption) *Tournament {
	if len(seats) < 2 {
		panic("at least 2 seats required")
	}
	if 2*len(seats)+5 > poker.DeckSize {
		panic("too many seats for one deck")
	}

	cfg := tournamentConfig{
		startingChips:   1000,
		smallBlind:      10,
		bigBlind:        20,
		decisionTimeout: 30 * time.Second,
		clock:           quartz.NewReal(),
		logger:          log.New(io.Discard),
		deckFactory: func(_ int, rng *rand.Rand) *poker.Deck {
			return poker.NewShuffledDeck(rng)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		panic("rng is required for tournament creation")
	}
	if cfg.dealer < 0 || cfg.dealer >= len(seats) {
		panic("dealer seat out of range")
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	t := &Tournament{
		ID:       cfg.id,
		cfg:      cfg,
		logger:   cfg.logger.WithPrefix("tournament").With("id", cfg.id[:min(8, len(cfg.id))]),
		pots:     NewPotManager(len(seats)),
		dealer:   cfg.dealer,
		sbSeat:   -1,
		bbSeat:   -1,
		winner:   -1,
		deciders: make([]Decider, len(seats)),
	}
	for i, s := range seats {
		chips := s.Chips
		if chips == 0 {
			chips = cfg.startingChips
		}
		t.players = append(t.players, &Player{ID: i, Name: s.Name, Persona: s.Persona, Chips: chips})
		t.deciders[i] = s.Decider
		t.startingTotal += chips
	}
	return t
}

// Players returns the seats. Callers must treat them as read-only.
func (t *Tournament) Players() []*Player { return t.players }

// HandNumber returns the number of hands started so far.
func (t *Tournament) HandNumber() int { return t.handNumber }

// Street returns the current street.
func (t *Tournament) Street() Street { return t.street }

// Community returns the board dealt so far.
func (t *Tournament) Community() []poker.Card { return t.community }

// DealerPosition returns the dealer seat.
func (t *Tournament) DealerPosition() int { return t.dealer }

// Eliminated returns the eliminated seats in elimination order.
func (t *Tournament) Eliminated() []int { return t.eliminated }

// InProgress reports whether a hand is being played.
func (t *Tournament) InProgress() bool { return t.inProgress }

// Over reports whether the tournament has finished.
func (t *Tournament) Over() bool { return t.over }

// Winner returns the winning seat, or -1 while the tournament runs.
func (t *Tournament) Winner() int { return t.winner }

// Log returns the action log.
func (t *Tournament) Log() *ActionLog { return &t.log }

// LastHand returns the result of the most recently finished hand.
func (t *Tournament) LastHand() *HandResult { return t.last }

// Run plays hands until the tournament ends or ctx is cancelled.
func (t *Tournament) Run(ctx context.Context) (Summary, error) {
	t.logger.Info("Tournament started", "seats", len(t.players), "chips", t.startingTotal,
		"blinds", fmt.Sprintf("%d/%d", t.cfg.smallBlind, t.cfg.bigBlind))
	for !t.over {
		if _, err := t.PlayHand(ctx); err != nil {
			if errors.Is(err, ErrTournamentOver) {
				break
			}
			return t.Summary(), err
		}
	}
	return t.Summary(), nil
}

// Summary reports the current standings.
func (t *Tournament) Summary() Summary {
	s := Summary{
		ID:              t.ID,
		Winner:          t.winner,
		Hands:           t.handNumber,
		Eliminated:      append([]int(nil), t.eliminated...),
		Undistributed:   t.Undistributed,
		ForcedShowdowns: t.forcedShowdowns,
		HandLimitHit:    t.limitHit,
	}
	if t.winner >= 0 {
		s.WinnerName = t.players[t.winner].Name
	}
	for _, p := range t.players {
		s.Chips = append(s.Chips, p.Chips)
	}
	return s
}

// PlayHand starts the next hand and plays it to completion.
func (t *Tournament) PlayHand(ctx context.Context) (*HandResult, error) {
	if err := t.StartNextHand(); err != nil {
		return nil, err
	}
	for t.inProgress {
		if err := t.Step(ctx); err != nil {
			return nil, fmt.Errorf("hand %d: %w", t.handNumber, err)
		}
	}
	if err := t.ValidateChipConservation(); err != nil {
		return t.last, fmt.Errorf("hand %d: %w", t.handNumber, err)
	}
	return t.last, nil
}

// StartNextHand removes busted players, rotates the dealer, deals and posts
// blinds.
func (t *Tournament) StartNextHand() error {
	if t.over {
		return ErrTournamentOver
	}
	if t.inProgress {
		return ErrHandInProgress
	}
	t.markEliminated()
	if t.checkOver() {
		return ErrTournamentOver
	}

	t.handNumber++
	if t.handNumber > 1 {
		t.dealer = t.nextActive(t.dealer)
	}

	t.deck = t.cfg.deckFactory(t.handNumber, t.cfg.rng)
	t.community = nil
	t.street = PreFlop
	t.pots.Reset()
	t.forcedThisHand = false
	for _, p := range t.players {
		if !p.IsEliminated {
			p.resetForHand()
		}
	}
	t.inProgress = true

	t.addf("--- Hand #%d ---", t.handNumber)
	t.postBlinds()
	t.addf("%s is the dealer. %s posts small blind $%d, %s posts big blind $%d.",
		t.players[t.dealer].Name,
		t.players[t.sbSeat].Name, t.players[t.sbSeat].Bet,
		t.players[t.bbSeat].Name, t.players[t.bbSeat].Bet)
	t.dealHoleCards()
	t.logger.Info("Hand started", "hand", t.handNumber, "dealer", t.players[t.dealer].Name,
		"active", t.activeCount())

	t.round = NewBettingRound(t.players, PreFlop, t.cfg.bigBlind, t.cfg.bigBlind)
	t.notify(HandStarted)
	t.startRound(t.nextActive(t.bbSeat))
	return nil
}

// postBlinds picks blind seats relative to the dealer and posts them.
// Heads-up the dealer posts the small blind.
func (t *Tournament) postBlinds() {
	if t.players[t.dealer].IsEliminated {
		t.dealer = t.nextActive(t.dealer)
	}
	if t.activeCount() == 2 {
		t.sbSeat = t.dealer
	} else {
		t.sbSeat = t.nextActive(t.dealer)
	}
	t.bbSeat = t.nextActive(t.sbSeat)

	t.players[t.sbSeat].commit(t.cfg.smallBlind)
	t.players[t.bbSeat].commit(t.cfg.bigBlind)
}

func (t *Tournament) dealHoleCards() {
	start := t.nextActive(t.dealer)
	for range 2 {
		seat := start
		for range t.activeCount() {
			p := t.players[seat]
			p.HoleCards = append(p.HoleCards, t.draw())
			seat = t.nextActive(seat)
		}
	}
	t.logger.Debug("Dealt hole cards", "hand", t.handNumber, "remaining", t.deck.Remaining())
}

// draw takes the top card. Running out is a dealing bug, not a game state.
func (t *Tournament) draw() poker.Card {
	c, err := t.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("dealing-logic bug: %v", err))
	}
	return c
}

// Step performs one unit of progress: a single player's turn, or closing the
// street when betting is settled.
func (t *Tournament) Step(ctx context.Context) error {
	if !t.inProgress {
		return ErrNoHand
	}
	if t.round.ShouldEnd() {
		t.endStreet()
		return nil
	}
	p := t.round.Actor()
	if p == nil {
		t.forceShowdown(ErrNoActor)
		return nil
	}

	t.addf("%s's turn to act.", p.Name)
	view := t.viewFor(p)
	logger := t.logger.With("hand", t.handNumber, "player", p.Name, "street", t.street)

	decision, err := t.decide(ctx, p, view)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		decision = t.round.Fallback(p)
		logger.Warn("Decision failed, using fallback", "error", err, "fallback", decision.Action)
	}
	if decision.Reasoning != "" {
		t.addf("%s thinks: %q", p.Name, decision.Reasoning)
	}

	sanitized, note := t.round.Sanitize(decision)
	if note != "" {
		logger.Warn("Adjusted decision", "requested", decision, "applied", sanitized, "note", note)
	}
	res, err := t.round.Apply(sanitized)
	if err != nil {
		// Sanitize only produces legal actions; reaching here is an engine bug.
		fallback := t.round.Fallback(p)
		logger.Error("Failed to apply decision", "error", err, "fallback", fallback.Action)
		if res, err = t.round.Apply(fallback); err != nil {
			t.forceShowdown(err)
			return nil
		}
	}

	t.lastAction = &res
	t.addf("%s", formatAction(p.Name, res, t.potTotal()))
	logger.Debug("Player action", "action", res.Action, "chips", res.Chips, "bet", res.Total)

	if !t.round.ShouldEnd() {
		if err := t.round.Advance(); err != nil {
			t.notify(ActionTaken)
			t.forceShowdown(err)
			return nil
		}
	}
	t.notify(ActionTaken)
	return nil
}

type decisionResult struct {
	decision Decision
	err      error
}

// decide asks the seat's decider with a deadline driven by the tournament clock.
func (t *Tournament) decide(ctx context.Context, p *Player, v View) (Decision, error) {
	decider := t.deciders[p.ID]
	if decider == nil {
		return Decision{}, fmt.Errorf("seat %d has no decider", p.ID)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timedOut := make(chan struct{})
	timer := t.cfg.clock.AfterFunc(t.cfg.decisionTimeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	done := make(chan decisionResult, 1)
	go func() {
		d, err := decider.Decide(ctx, v)
		done <- decisionResult{decision: d, err: err}
	}()

	select {
	case r := <-done:
		return r.decision, r.err
	case <-timedOut:
		return Decision{}, fmt.Errorf("%w after %s", ErrDecisionTimeout, t.cfg.decisionTimeout)
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

func (t *Tournament) startRound(from int) {
	if t.round.ShouldEnd() {
		return
	}
	if err := t.round.Start(from); err != nil {
		t.forceShowdown(err)
	}
}

func (t *Tournament) endStreet() {
	t.pots.Collect(t.players)
	t.addf("Betting round concluded.")

	if t.contenderCount() < 2 {
		t.resolve()
		return
	}
	if t.street == River {
		t.street = Showdown
		t.addf("Showdown!")
		t.resolve()
		return
	}
	t.advanceStreet()
}

func (t *Tournament) advanceStreet() {
	t.street++
	switch t.street {
	case Flop:
		t.dealCommunity(3)
		t.addf("Dealing the flop: %s", poker.FormatCards(t.community))
	case Turn:
		t.dealCommunity(1)
		t.addf("Dealing the turn: %s", poker.FormatCards(t.community))
	case River:
		t.dealCommunity(1)
		t.addf("Dealing the river: %s", poker.FormatCards(t.community))
	}
	t.logger.Debug("Street dealt", "hand", t.handNumber, "street", t.street, "board", poker.FormatCards(t.community))

	open := 0
	for _, p := range t.players {
		if p.InHand() && !p.IsAllIn {
			p.HasActed = false
			open++
		}
	}
	if open == 0 {
		t.dealRemaining()
		t.street = Showdown
		t.addf("Showdown!")
		t.notify(StreetDealt)
		t.resolve()
		return
	}

	t.round = NewBettingRound(t.players, t.street, 0, t.cfg.bigBlind)
	t.notify(StreetDealt)
	t.startRound(t.nextActive(t.dealer))
}

func (t *Tournament) dealCommunity(n int) {
	for range n {
		t.community = append(t.community, t.draw())
	}
}

func (t *Tournament) dealRemaining() {
	if missing := 5 - len(t.community); missing > 0 {
		t.dealCommunity(missing)
		t.addf("Running out the board: %s", poker.FormatCards(t.community))
	}
}

// forceShowdown ends a hand whose betting round can no longer make progress.
func (t *Tournament) forceShowdown(cause error) {
	t.forcedShowdowns++
	t.forcedThisHand = true
	t.logger.Error("Betting round stalled, forcing showdown",
		"hand", t.handNumber, "street", t.street, "error", cause)
	t.logger.Debug("State at stall", "snapshot", litter.Sdump(t.Snapshot()))

	t.pots.Collect(t.players)
	t.dealRemaining()
	t.street = Showdown
	t.addf("Showdown!")
	t.resolve()
}

func (t *Tournament) resolve() {
	res := t.pots.Resolve(t.players, t.community)

	if res.Showdown {
		for _, p := range t.players {
			if hand, ok := res.Hands[p.ID]; ok {
				t.addf("%s shows %s (%s)", p.Name, poker.FormatCards(p.HoleCards), hand)
			}
		}
	}
	for _, pay := range res.Payouts {
		p := t.players[pay.Seat]
		p.Chips += pay.Amount
		potName := "the pot"
		if pay.Pot > 0 {
			potName = fmt.Sprintf("side pot %d", pay.Pot)
		}
		if res.Showdown {
			t.addf("%s wins %s of %d with %s", p.Name, potName, pay.Amount, pay.Hand)
		} else {
			t.addf("%s wins %s of %d", p.Name, potName, pay.Amount)
		}
	}
	if res.Remainder > 0 {
		t.Undistributed += res.Remainder
		t.addf("%d chips from an uneven split remain undistributed.", res.Remainder)
	}

	t.inProgress = false
	before := len(t.eliminated)
	t.markEliminated()

	t.last = &HandResult{
		HandNumber:     t.handNumber,
		Resolution:     res,
		Board:          append([]poker.Card(nil), t.community...),
		ForcedShowdown: t.forcedThisHand,
		Eliminated:     append([]int(nil), t.eliminated[before:]...),
	}
	t.logger.Info("Hand complete", "hand", t.handNumber, "showdown", res.Showdown,
		"payouts", len(res.Payouts), "eliminated", len(t.last.Eliminated))
	t.notify(HandEnded)
	t.checkOver()
}

// markEliminated flags every busted seat. Elimination is permanent.
func (t *Tournament) markEliminated() {
	for _, p := range t.players {
		if !p.IsEliminated && p.Chips <= 0 {
			p.IsEliminated = true
			p.HoleCards = nil
			t.eliminated = append(t.eliminated, p.ID)
			t.addf("%s has been eliminated.", p.Name)
			t.logger.Info("Player eliminated", "player", p.Name, "hand", t.handNumber)
		}
	}
}

// checkOver ends the tournament when one player remains or the hand limit
// is reached. It reports whether the tournament is over.
func (t *Tournament) checkOver() bool {
	if t.over {
		return true
	}

	var alive []int
	for _, p := range t.players {
		if !p.IsEliminated {
			alive = append(alive, p.ID)
		}
	}
	switch {
	case len(alive) <= 1:
		if len(alive) == 1 {
			t.winner = alive[0]
		}
	case t.cfg.maxHands > 0 && t.handNumber >= t.cfg.maxHands:
		t.limitHit = true
		t.winner = alive[0]
		for _, seat := range alive {
			if t.players[seat].Chips > t.players[t.winner].Chips {
				t.winner = seat
			}
		}
		t.addf("Hand limit of %d reached.", t.cfg.maxHands)
	default:
		return false
	}

	t.over = true
	if t.winner >= 0 {
		w := t.players[t.winner]
		t.addf("%s wins the tournament with %d chips!", w.Name, w.Chips)
		t.logger.Info("Tournament complete", "winner", w.Name, "chips", w.Chips, "hands", t.handNumber)
	}
	t.notify(TournamentEnded)
	return true
}

// ValidateChipConservation checks that stacks, bets, pots and split
// remainders still add up to the chips the tournament started with.
func (t *Tournament) ValidateChipConservation() error {
	total := t.pots.Total() + t.Undistributed
	for _, p := range t.players {
		total += p.Chips + p.Bet
	}
	if total != t.startingTotal {
		t.logger.Error("Chip conservation violated", "have", total, "want", t.startingTotal)
		t.logger.Debug("State at violation", "snapshot", litter.Sdump(t.Snapshot()))
		return fmt.Errorf("%w: have %d, started with %d", ErrChipConservation, total, t.startingTotal)
	}
	return nil
}

func (t *Tournament) nextActive(seat int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		next := (seat + i) % n
		if !t.players[next].IsEliminated {
			return next
		}
	}
	return seat
}

func (t *Tournament) activeCount() int {
	n := 0
	for _, p := range t.players {
		if !p.IsEliminated {
			n++
		}
	}
	return n
}

func (t *Tournament) contenderCount() int {
	n := 0
	for _, p := range t.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (t *Tournament) potTotal() int {
	total := t.pots.Total()
	for _, p := range t.players {
		total += p.Bet
	}
	return total
}

func (t *Tournament) addf(format string, args ...any) {
	line := t.log.Addf(format, args...)
	t.logger.Debug(line)
}

func (t *Tournament) notify(kind UpdateKind) {
	if len(t.cfg.observers) == 0 {
		t.logMark = t.log.Len()
		return
	}
	s := t.Snapshot()
	s.Kind = kind
	s.Events = t.log.Since(t.logMark)
	t.logMark = t.log.Len()
	switch kind {
	case ActionTaken:
		s.Action = t.lastAction
	case HandEnded:
		if t.last != nil {
			s.Payouts = slices.Clone(t.last.Resolution.Payouts)
			s.Showdown = t.last.Resolution.Showdown
		}
	}
	t.lastAction = nil
	for _, o := range t.cfg.observers {
		o.Observe(s)
	}
}
