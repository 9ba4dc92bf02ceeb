package engine

// Play is a single card played by a single player.
type Play struct {
	Card   Card
	Player uint8
}

// Trick holds up to four plays, the trump in effect, and a cached
// running winner so legality checks and scoring never rescan the
// full play list.
type Trick struct {
	plays    [4]Play
	n        uint8
	trump    Suit
	hasTrump bool
	leadSuit Suit
	winner   Play
	score    int
}

// NewTrick starts an empty trick under the given trump.
func NewTrick(trump Suit, hasTrump bool) Trick {
	return Trick{trump: trump, hasTrump: hasTrump}
}

// Size returns the number of cards played so far (0..4).
func (t *Trick) Size() int {
	return int(t.n)
}

// IsEmpty reports whether no card has been played yet.
func (t *Trick) IsEmpty() bool {
	return t.n == 0
}

// IsFull reports whether all four seats have played.
func (t *Trick) IsFull() bool {
	return t.n >= 4
}

// LeadSuit returns the suit to follow (the first card's suit). Only
// meaningful once the trick is non-empty.
func (t *Trick) LeadSuit() Suit {
	return t.leadSuit
}

// Plays returns the cards played so far, in play order.
func (t *Trick) Plays() []Play {
	return append([]Play(nil), t.plays[:t.n]...)
}

// Winner returns the currently-winning play. Only meaningful once the
// trick is non-empty.
func (t *Trick) Winner() Play {
	return t.winner
}

// Score returns the accumulated card-point value of the trick so far.
func (t *Trick) Score() int {
	return t.score
}

// strength ranks a card for trick-winning purposes: trump beats
// everything, then the lead suit, then cards that cannot win at all.
// Only comparable within the same trick (same trump/leadSuit).
func (t *Trick) strength(c Card) int {
	switch {
	case t.hasTrump && c.Suit() == t.trump:
		return 2000 + int(c.Rank())
	case c.Suit() == t.leadSuit:
		return 1000 + int(c.Rank())
	default:
		return int(c.Rank())
	}
}

// Play records a card played by player, updating the lead suit (on
// the first card) and the cached winner/score.
func (t *Trick) Play(card Card, player uint8) {
	if t.n == 0 {
		t.leadSuit = card.Suit()
	}
	t.plays[t.n] = Play{Card: card, Player: player}
	t.n++
	t.score += card.ScoreValue()

	if t.n == 1 || t.strength(card) > t.strength(t.winner.Card) {
		t.winner = Play{Card: card, Player: player}
	}
}
