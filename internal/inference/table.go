// Package inference tracks, for each opponent, a per-card likelihood
// distribution over where the unplayed cards are held. It narrows the
// distribution as actions are observed and feeds weighted
// determinization in the searcher.
package inference

import "github.com/bran/manille/internal/engine"

const uniformStart = 1.0 / float64(engine.NumCards)

// Table is a 4x32 likelihood matrix L[player][card]. Row entries for a
// player sum to 1 across cards that player might still hold; a column
// goes to zero permanently once the card is known played.
type Table struct {
	likelihood [4][engine.NumCards]float64
	played     engine.Stack
}

// NewTable starts every player equally likely to hold every card.
func NewTable() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset returns the table to its initial uniform state. Called at the
// start of every round: a redeal invalidates everything learned about
// the previous hand, including which cards were played.
func (t *Table) Reset() {
	t.played = engine.Empty
	for p := 0; p < 4; p++ {
		for c := engine.Card(0); c < engine.NumCards; c++ {
			t.likelihood[p][c] = uniformStart
		}
	}
}

// Weight implements engine.Weigher.
func (t *Table) Weight(player uint8, card engine.Card) float64 {
	return t.likelihood[player][card]
}

func (t *Table) zero(player uint8, cards engine.Stack) {
	cards = cards.Diff(t.played)
	m := cards
	for !m.IsEmpty() {
		c, _ := m.Lowest()
		m = m.Without(c)
		t.likelihood[player][c] = 0
	}
}

func (t *Table) renormalizeRow(player uint8) {
	sum := 0.0
	for c := engine.Card(0); c < engine.NumCards; c++ {
		sum += t.likelihood[player][c]
	}
	if sum <= 0 {
		return
	}
	for c := engine.Card(0); c < engine.NumCards; c++ {
		t.likelihood[player][c] /= sum
	}
}

func (t *Table) renormalizeAll() {
	for p := uint8(0); p < 4; p++ {
		t.renormalizeRow(p)
	}
}

// ObserveCardPlayed zeroes card out for every player: it is now known
// to be accounted for and can never be "held" again.
func (t *Table) ObserveCardPlayed(card engine.Card) {
	t.played = t.played.With(card)
	for p := uint8(0); p < 4; p++ {
		t.likelihood[p][card] = 0
	}
	t.renormalizeAll()
}

// ObserveVoidInSuit records that player failed to follow suit when it
// was led: every still-unplayed card of that suit is ruled out for them.
func (t *Table) ObserveVoidInSuit(player uint8, suit engine.Suit) {
	t.zero(player, engine.OfSuit(suit))
	t.renormalizeRow(player)
}

// ObserveUnderWinningCard records that player, while losing the trick,
// played a card of the winning suit below the current winning card:
// every still-unplayed higher card of that suit is ruled out (they'd
// have played it instead to take the trick).
func (t *Table) ObserveUnderWinningCard(player uint8, winningCard engine.Card) {
	t.zero(player, engine.AboveCard(winningCard))
	t.renormalizeRow(player)
}

// ObserveVoidInTrump records that player could not follow suit and
// chose not to trump, while the winning card is not a trump: every
// still-unplayed trump is ruled out for them.
func (t *Table) ObserveVoidInTrump(player uint8, trump engine.Suit) {
	t.zero(player, engine.OfSuit(trump))
	t.renormalizeRow(player)
}

// ObserveUnderWinningTrump records that player could not follow and
// played a non-trump while the winning card is a trump: every
// still-unplayed higher trump is ruled out for them.
func (t *Table) ObserveUnderWinningTrump(player uint8, winningTrumpCard engine.Card) {
	t.zero(player, engine.AboveCard(winningTrumpCard))
	t.renormalizeRow(player)
}

// ObserveTrumpSelection records that player P chose trump. Higher
// trumps are more likely in P's hand and correspondingly less likely
// elsewhere: for each still-unplayed card of the chosen suit,
// prob = (rank+5)/12 * 0.7, applied only where currently nonzero, then
// every other player's entry for that card is scaled by (1-prob).
func (t *Table) ObserveTrumpSelection(player uint8, trump engine.Suit) {
	m := engine.OfSuit(trump).Diff(t.played)
	for !m.IsEmpty() {
		c, _ := m.Lowest()
		m = m.Without(c)
		if t.likelihood[player][c] == 0 {
			continue
		}
		prob := (float64(c.Rank()) + 5) / 12 * 0.7
		t.likelihood[player][c] = prob
		for p := uint8(0); p < 4; p++ {
			if p == player {
				continue
			}
			t.likelihood[p][c] *= 1 - prob
		}
	}
	t.renormalizeAll()
}
