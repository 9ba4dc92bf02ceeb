package engine

import "github.com/bran/manille/internal/rng"

// Phase is the round's current stage.
type Phase uint8

const (
	PhasePickTrump Phase = iota
	PhasePlayCards
)

func (p Phase) String() string {
	if p == PhasePickTrump {
		return "PickTrump"
	}
	return "PlayCards"
}

// cardsPerHand is the number of cards dealt to each of the four
// players (32-card deck / 4 players).
const cardsPerHand = 8

// Round is the full per-hand state: a flat value type of bitmasks and
// small scalars, intentionally free of slices so it stays cheaply
// copyable and allocation-free on the searcher's hot path. It
// implements the State interface.
type Round struct {
	playerCards [4]Stack
	playedCards Stack
	trick       Trick
	dealer      uint8
	turn        uint8
	phase       Phase
	scores      [2]int
	trump       Suit
	hasTrump    bool
}

// NewRound deals a fresh 8-card hand to each of the four players and
// enters PickTrump. The dealer chooses trump (Turn() returns dealer
// during PickTrump); turn is set to the seat left of dealer, who leads
// the first trick once PlayCards begins.
func NewRound(dealer uint8, src *rng.Source) *Round {
	r := &Round{dealer: dealer, phase: PhasePickTrump}
	r.deal(src)
	r.turn = leftOf(dealer)
	return r
}

// SetupForNextRound rotates the dealer to the next seat, redeals a
// fresh hand, clears the trick and scores, and re-enters PickTrump.
// It mutates r in place so the match controller can reuse one Round
// across a whole match.
func (r *Round) SetupForNextRound(src *rng.Source) {
	dealer := leftOf(r.dealer)
	*r = Round{dealer: dealer, phase: PhasePickTrump}
	r.deal(src)
	r.turn = leftOf(dealer)
}

func leftOf(p uint8) uint8 { return (p + 1) % 4 }

func (r *Round) deal(src *rng.Source) {
	remaining := All
	for seat := uint8(0); seat < 4; seat++ {
		for i := 0; i < cardsPerHand; i++ {
			var c Card
			c, remaining = remaining.PopRandomCard(src)
			r.playerCards[seat] = r.playerCards[seat].With(c)
		}
	}
}

// Team returns which of the two teams a player belongs to: players
// 0,2 are team 0; players 1,3 are team 1.
func Team(player uint8) int { return int(player % 2) }

// Partner returns a player's partner.
func Partner(player uint8) uint8 { return (player + 2) % 4 }

// Dealer returns the dealing seat.
func (r *Round) Dealer() uint8 { return r.dealer }

// Phase returns the round's current stage.
func (r *Round) Phase() Phase { return r.phase }

// Trump returns the trump suit and whether a trump is in effect.
func (r *Round) Trump() (Suit, bool) { return r.trump, r.hasTrump }

// Scores returns the per-team accumulated scores.
func (r *Round) Scores() [2]int { return r.scores }

// Hand returns the given player's remaining cards.
func (r *Round) Hand(player uint8) Stack { return r.playerCards[player] }

// PlayedCards returns the union of all cards played this round.
func (r *Round) PlayedCards() Stack { return r.playedCards }

// CurrentTrick returns a copy of the trick in progress.
func (r *Round) CurrentTrick() Trick { return r.trick }

// Turn implements State: the player to act next. During PickTrump
// this is the dealer, who chooses trump from their own hand; during
// PlayCards it is the turn field, set once to the seat left of dealer
// when the round began and advanced by card plays thereafter — trump
// selection never touches it, so whoever leads the first trick is
// independent of who picked trump.
func (r *Round) Turn() uint8 {
	if r.phase == PhasePickTrump {
		return r.dealer
	}
	return r.turn
}

// IsTerminal implements State.
func (r *Round) IsTerminal() bool { return r.playedCards == All }

// Reward implements State: (scores[team]-30)/30 from perspective's
// team, only valid at a terminal round.
func (r *Round) Reward(perspective uint8) float32 {
	if !r.IsTerminal() {
		panic(errRewardNonTerminal)
	}
	team := Team(perspective)
	return float32(r.scores[team]-30) / 30
}

// Clone implements State: a full, independent value copy.
func (r *Round) Clone() State {
	out := *r
	return &out
}

// PossibleActions implements State.
func (r *Round) PossibleActions() ActionList {
	switch r.phase {
	case PhasePickTrump:
		return r.possibleTrumpActions()
	default:
		return CardsActionList(r.legalPlays())
	}
}

// possibleTrumpActions offers every suit the dealer holds, plus
// no-trump, always. The dealer is also who Turn() reports during
// PickTrump, so this is always the acting player's own hand.
func (r *Round) possibleTrumpActions() ActionList {
	var al ActionList
	held := r.playerCards[r.dealer]
	for s := Suit(0); s < numSuits; s++ {
		if held.HasSuit(s) {
			al = al.PushTrump(s)
		}
	}
	return al.PushNoTrump()
}

// legalPlays implements the three-step legality filter, in order:
//  1. follow suit if able (else the whole hand)
//  2. if the mover's team isn't winning, must overtake when possible
//  3. never return an empty set: fall back to the most recent
//     non-empty filter if "must overtake" can't be satisfied
func (r *Round) legalPlays() Stack {
	hand := r.playerCards[r.turn]
	t := &r.trick

	if t.IsEmpty() {
		return hand
	}

	filtered := hand.Intersect(OfSuit(t.LeadSuit()))
	if filtered.IsEmpty() {
		filtered = hand
	}

	movingTeam := Team(r.turn)
	winner := t.Winner()
	if movingTeam == Team(winner.Player) {
		return filtered
	}

	var candidates Stack
	if r.hasTrump {
		winningIsTrump := winner.Card.Suit() == r.trump
		if winningIsTrump {
			candidates = filtered.Intersect(OfSuit(r.trump)).Intersect(AboveCard(winner.Card))
		} else {
			higher := filtered.Intersect(OfSuit(t.LeadSuit())).Intersect(AboveCard(winner.Card))
			anyTrump := filtered.Intersect(OfSuit(r.trump))
			candidates = higher.Union(anyTrump)
		}
	} else {
		candidates = filtered.Intersect(OfSuit(t.LeadSuit())).Intersect(AboveCard(winner.Card))
	}

	if candidates.IsEmpty() {
		return filtered
	}
	return candidates
}

// ApplyAction implements State. Submitting an action outside
// PossibleActions() is a programmer error: it panics rather than
// returning an error.
func (r *Round) ApplyAction(a Action) {
	switch r.phase {
	case PhasePickTrump:
		r.applyPickTrump(a)
	case PhasePlayCards:
		r.applyPlayCard(a)
	}
}

func (r *Round) applyPickTrump(a Action) {
	if a.Kind != KindPickTrump {
		panic(errWrongPhase)
	}
	if !r.possibleTrumpActions().Has(a) {
		panic(errIllegalPickTrump)
	}
	if a.NoTrump {
		r.hasTrump = false
	} else {
		r.hasTrump = true
		r.trump = a.TrumpSuit
	}
	r.trick = NewTrick(r.trump, r.hasTrump)
	r.phase = PhasePlayCards
	// r.turn (the seat left of dealer, set at deal time) is untouched:
	// trump selection doesn't move the turn, it only changes what Turn()
	// reports now that the phase has switched away from PickTrump.
}

func (r *Round) applyPlayCard(a Action) {
	if a.Kind != KindPlayCard {
		panic(errWrongPhase)
	}
	if !CardsActionList(r.legalPlays()).Has(a) {
		panic(errIllegalPlayCard)
	}

	player := r.turn
	r.playerCards[player] = r.playerCards[player].Without(a.Card)
	r.playedCards = r.playedCards.With(a.Card)
	r.trick.Play(a.Card, player)

	if r.trick.IsFull() {
		r.completeTrick()
		return
	}
	r.turn = (player + 1) % 4
}

func (r *Round) completeTrick() {
	winner := r.trick.Winner()
	r.scores[Team(winner.Player)] += r.trick.Score()
	r.turn = winner.Player
	if !r.IsTerminal() {
		r.trick = NewTrick(r.trump, r.hasTrump)
	}
}

// Randomize implements State: the mover's hand stays fixed; every
// other player's unplayed cards are re-dealt card-by-card (lowest
// index first) to whichever player still needs cards, sampled
// proportional to w.Weight(player, card) with a uniform fallback
// when every remaining candidate has weight zero.
func (r *Round) Randomize(observer uint8, w Weigher, src *rng.Source) State {
	out := *r

	unknown := All.Diff(r.playedCards).Diff(r.playerCards[observer])
	var need [4]int
	for p := uint8(0); p < 4; p++ {
		if p == observer {
			continue
		}
		need[p] = r.playerCards[p].Len()
		out.playerCards[p] = Empty
	}

	remaining := unknown
	var candidates [4]uint8
	var weights [4]float64
	for !remaining.IsEmpty() {
		card, _ := remaining.Lowest()
		remaining = remaining.Without(card)

		n := 0
		for p := uint8(0); p < 4; p++ {
			if p == observer || need[p] == 0 {
				continue
			}
			candidates[n] = p
			weights[n] = w.Weight(p, card)
			n++
		}
		idx := src.WeightedChoice(weights[:n])
		chosen := candidates[idx]
		out.playerCards[chosen] = out.playerCards[chosen].With(card)
		need[chosen]--
	}

	return &out
}
