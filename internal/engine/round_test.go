package engine

import (
	"testing"

	"github.com/bran/manille/internal/rng"
)

func TestNewRoundDealsEightEach(t *testing.T) {
	r := NewRound(0, rng.New(1))

	seen := Empty
	for seat := uint8(0); seat < 4; seat++ {
		hand := r.Hand(seat)
		if hand.Len() != cardsPerHand {
			t.Errorf("seat %d has %d cards, want %d", seat, hand.Len(), cardsPerHand)
		}
		if !seen.Intersect(hand).IsEmpty() {
			t.Errorf("seat %d's hand overlaps a previous seat's hand", seat)
		}
		seen = seen.Union(hand)
	}
	if seen != All {
		t.Error("all 32 cards should be dealt across the four hands")
	}
}

func TestNewRoundTurnIsDealerDuringPickTrump(t *testing.T) {
	r := NewRound(2, rng.New(1))
	if r.Turn() != 2 {
		t.Errorf("Turn() = %d, want 2 (dealer decides trump)", r.Turn())
	}
	if r.turn != 3 {
		t.Errorf("internal turn field = %d, want 3 (left of dealer, held aside to lead the first trick)", r.turn)
	}
	if r.Phase() != PhasePickTrump {
		t.Errorf("Phase() = %s, want PickTrump", r.Phase())
	}
}

func TestTurnDuringPickTrumpMatchesPossibleTrumpActionsHand(t *testing.T) {
	// Turn() and PossibleActions() must agree on who is acting: whatever
	// seat PossibleActions() drew its suits from during PickTrump must
	// be the same seat Turn() names, for every dealer/turn combination
	// (they can legitimately differ once PlayCards starts).
	r := &Round{dealer: 1, turn: 2, phase: PhasePickTrump}
	r.playerCards[1] = StackOf(NewCard(Diamonds, 0))
	r.playerCards[2] = StackOf(NewCard(Spades, 0))

	actor := r.Turn()
	if actor != r.dealer {
		t.Fatalf("Turn() = %d, want dealer %d during PickTrump", actor, r.dealer)
	}
	actions := r.PossibleActions()
	if !actions.Has(PickTrump(Diamonds)) {
		t.Error("offered suits should come from Turn()'s own hand")
	}
	if actions.Has(PickTrump(Spades)) {
		t.Error("a suit Turn() doesn't hold should not be offered, even if another seat holds it")
	}
}

func TestPossibleTrumpActionsComeFromDealersHand(t *testing.T) {
	// turn (1) is deliberately left different from dealer (0) here: the
	// turn field only matters once PlayCards begins (it holds whoever
	// leads the first trick), and PossibleActions during PickTrump must
	// ignore it entirely and offer the dealer's own suits — the same
	// seat Turn() reports while phase is still PickTrump.
	r := &Round{
		dealer: 0,
		turn:   1,
		phase:  PhasePickTrump,
	}
	r.playerCards[0] = StackOf(NewCard(Hearts, 0), NewCard(Clubs, 1))
	r.playerCards[1] = StackOf(NewCard(Spades, 0))

	actions := r.PossibleActions()
	if !actions.Has(PickTrump(Hearts)) || !actions.Has(PickTrump(Clubs)) {
		t.Error("trump options should be drawn from the dealer's suits")
	}
	if actions.Has(PickTrump(Spades)) {
		t.Error("a suit only seat 1 holds, not the dealer who is actually deciding, should not be offered")
	}
	if !actions.Has(PickNoTrump()) {
		t.Error("no-trump should always be offered")
	}
}

func TestApplyPickTrumpEntersPlayCardsKeepingTurn(t *testing.T) {
	r := &Round{dealer: 0, turn: 1, phase: PhasePickTrump}
	r.playerCards[0] = StackOf(NewCard(Hearts, 0))
	r.playerCards[1] = StackOf(NewCard(Spades, 0))

	r.ApplyAction(PickTrump(Hearts))

	if r.Phase() != PhasePlayCards {
		t.Fatalf("Phase() = %s, want PlayCards", r.Phase())
	}
	if r.Turn() != 1 {
		t.Errorf("Turn() = %d, want 1 (unchanged: same seat leads the first trick)", r.Turn())
	}
	trump, has := r.Trump()
	if !has || trump != Hearts {
		t.Errorf("Trump() = (%s, %v), want (Hearts, true)", trump, has)
	}
}

func TestApplyPickNoTrump(t *testing.T) {
	r := &Round{dealer: 0, turn: 1, phase: PhasePickTrump}
	r.playerCards[0] = StackOf(NewCard(Hearts, 0))

	r.ApplyAction(PickNoTrump())

	_, has := r.Trump()
	if has {
		t.Error("PickNoTrump should leave hasTrump false")
	}
}

func TestApplyPickTrumpPanicsOnIllegalSuit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("choosing a suit the dealer doesn't hold should panic")
		}
	}()
	r := &Round{dealer: 0, turn: 1, phase: PhasePickTrump}
	r.playerCards[0] = StackOf(NewCard(Hearts, 0))
	r.ApplyAction(PickTrump(Spades))
}

// legalPlays scenarios, using a beatable led card (King) so overtake
// rules are unambiguous: within a suit, 10 outranks Ace, so leading
// with the suit's own 10 would make it unbeatable in-suit by
// construction, not by rule violation.

func newPlayRound(trump Suit, hasTrump bool, turn uint8, hands [4]Stack, trick Trick) *Round {
	return &Round{
		dealer:      3,
		turn:        turn,
		phase:       PhasePlayCards,
		trump:       trump,
		hasTrump:    hasTrump,
		playerCards: hands,
		trick:       trick,
	}
}

func TestLegalPlaysMustFollowSuit(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 5), 2) // King of spades led by seat 0's partner (0,2 share team 0)

	hands := [4]Stack{}
	hands[0] = StackOf(NewCard(Spades, 6), NewCard(Spades, 2), NewCard(Hearts, 0))

	r := newPlayRound(Hearts, true, 0, hands, trick)
	// seat 0's team is already winning, so both spades are legal: no
	// overtake requirement, but the heart is still filtered out.
	legal := r.legalPlays()

	if legal.HasSuit(Hearts) {
		t.Error("holding spades, the player must follow suit and may not discard a heart")
	}
	if !legal.Has(NewCard(Spades, 6)) || !legal.Has(NewCard(Spades, 2)) {
		t.Error("both spades should be legal when following suit")
	}
}

func TestLegalPlaysVoidInLeadSuitAndTeamWinningAllowsAnyCard(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 5), 2) // led by seat 0's own teammate, already winning

	hands := [4]Stack{}
	hands[0] = StackOf(NewCard(Clubs, 1), NewCard(Hearts, 0))

	r := newPlayRound(Hearts, true, 0, hands, trick)
	legal := r.legalPlays()

	if legal.Len() != 2 {
		t.Errorf("void in lead suit with team already winning: all %d held cards should be legal, got %d", hands[0].Len(), legal.Len())
	}
}

func TestLegalPlaysVoidMustTrumpWhenTeamNotWinning(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 5), 3) // led by the opposing team, not yet overtaken

	hands := [4]Stack{}
	hands[0] = StackOf(NewCard(Clubs, 1), NewCard(Hearts, 0)) // void in spades, holds one trump

	r := newPlayRound(Hearts, true, 0, hands, trick)
	legal := r.legalPlays()

	if legal.Len() != 1 || !legal.Has(NewCard(Hearts, 0)) {
		t.Errorf("void and behind: only the trump can overtake, got %d legal cards", legal.Len())
	}
}

func TestLegalPlaysMustOvertakeWhenTeamNotWinning(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 5), 3) // King led by seat 3 (opponent of seat 2's team)

	hands := [4]Stack{}
	// seat 2 is on team 0, opposing the leader seat 3 (teams are p%2).
	hands[2] = StackOf(NewCard(Spades, 6), NewCard(Spades, 4)) // Ace (beats King), Queen (doesn't)

	r := newPlayRound(Hearts, true, 2, hands, trick)
	legal := r.legalPlays()

	if !legal.Has(NewCard(Spades, 6)) {
		t.Error("the Ace of spades overtakes the led King and must be a legal option")
	}
	if legal.Has(NewCard(Spades, 4)) {
		t.Error("the Queen of spades cannot overtake and should be filtered out when overtaking is possible")
	}
}

func TestLegalPlaysFallsBackWhenCannotOvertake(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 6), 3) // Ace led, unbeatable within spades by a Queen/King

	hands := [4]Stack{}
	hands[2] = StackOf(NewCard(Spades, 4), NewCard(Spades, 1)) // Queen, 8: neither beats Ace, no trump held

	r := newPlayRound(Hearts, true, 2, hands, trick)
	legal := r.legalPlays()

	if legal.Len() != 2 {
		t.Errorf("with no overtake possible, both held spades should fall back as legal, got %d", legal.Len())
	}
}

func TestLegalPlaysMayTrumpWhenCannotFollowAndNotWinning(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 6), 3) // Ace of spades led

	hands := [4]Stack{}
	hands[2] = StackOf(NewCard(Clubs, 0), NewCard(Hearts, 2)) // void in spades, holds a trump

	r := newPlayRound(Hearts, true, 2, hands, trick)
	legal := r.legalPlays()

	if !legal.Has(NewCard(Hearts, 2)) {
		t.Error("a void player on the losing team should be allowed to trump in")
	}
}

func TestApplyPlayCardAdvancesTurnAndCompletesTrick(t *testing.T) {
	r := &Round{dealer: 3, turn: 0, phase: PhasePlayCards, trump: Hearts, hasTrump: true}
	r.playerCards[0] = StackOf(NewCard(Spades, 2))
	r.playerCards[1] = StackOf(NewCard(Spades, 3))
	r.playerCards[2] = StackOf(NewCard(Spades, 4))
	r.playerCards[3] = StackOf(NewCard(Spades, 6)) // Ace, wins
	r.trick = NewTrick(Hearts, true)

	r.ApplyAction(PlayCard(NewCard(Spades, 2)))
	if r.Turn() != 1 {
		t.Fatalf("Turn() = %d, want 1 after seat 0 plays", r.Turn())
	}
	r.ApplyAction(PlayCard(NewCard(Spades, 3)))
	r.ApplyAction(PlayCard(NewCard(Spades, 4)))
	r.ApplyAction(PlayCard(NewCard(Spades, 6)))

	if r.Turn() != 3 {
		t.Errorf("Turn() = %d, want 3 (the trick winner leads next)", r.Turn())
	}
	if r.Scores()[Team(3)] == 0 {
		t.Error("the winning team should have been credited the trick's score")
	}
}

func TestApplyPlayCardPanicsOnIllegalCard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("playing a card outside PossibleActions should panic")
		}
	}()
	r := &Round{dealer: 3, turn: 0, phase: PhasePlayCards, trump: Hearts, hasTrump: true}
	r.playerCards[0] = StackOf(NewCard(Spades, 2))
	r.trick = NewTrick(Hearts, true)

	r.ApplyAction(PlayCard(NewCard(Hearts, 2))) // not in hand
}

func TestIsTerminalAndReward(t *testing.T) {
	r := &Round{dealer: 3, phase: PhasePlayCards}
	r.playedCards = All
	r.scores = [2]int{40, 20}

	if !r.IsTerminal() {
		t.Fatal("round with every card played should be terminal")
	}
	if got := r.Reward(0); got != float32(40-30)/30 {
		t.Errorf("Reward(0) = %v, want %v", got, float32(40-30)/30)
	}
	if got := r.Reward(1); got != float32(20-30)/30 {
		t.Errorf("Reward(1) = %v, want %v", got, float32(20-30)/30)
	}
}

func TestRewardPanicsWhenNotTerminal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Reward on a non-terminal round should panic")
		}
	}()
	r := &Round{dealer: 0}
	r.Reward(0)
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRound(0, rng.New(4))
	clone := r.Clone().(*Round)

	clone.playerCards[0] = Empty
	if r.playerCards[0] == Empty {
		t.Error("mutating the clone should not affect the original")
	}
}

type uniformWeigher struct{}

func (uniformWeigher) Weight(uint8, Card) float64 { return 1 }

func TestRandomizeKeepsObserverHandFixed(t *testing.T) {
	r := NewRound(0, rng.New(5))
	observer := uint8(1)
	before := r.Hand(observer)

	out := r.Randomize(observer, uniformWeigher{}, rng.New(6)).(*Round)

	if out.Hand(observer) != before {
		t.Error("Randomize must not alter the observer's own hand")
	}
	for seat := uint8(0); seat < 4; seat++ {
		if out.Hand(seat).Len() != r.Hand(seat).Len() {
			t.Errorf("seat %d hand size changed: %d -> %d", seat, r.Hand(seat).Len(), out.Hand(seat).Len())
		}
	}

	total := Empty
	for seat := uint8(0); seat < 4; seat++ {
		total = total.Union(out.Hand(seat))
	}
	if total != All {
		t.Error("Randomize should redistribute every unplayed card exactly once")
	}
}

func TestRandomizeNeverAssignsObserverCardsElsewhere(t *testing.T) {
	r := NewRound(2, rng.New(8))
	observer := uint8(2)
	own := r.Hand(observer)

	out := r.Randomize(observer, uniformWeigher{}, rng.New(9)).(*Round)

	for seat := uint8(0); seat < 4; seat++ {
		if seat == observer {
			continue
		}
		if !out.Hand(seat).Intersect(own).IsEmpty() {
			t.Errorf("seat %d was dealt a card from the observer's own hand", seat)
		}
	}
}
