package engine

import "testing"

func TestNewTrick(t *testing.T) {
	trick := NewTrick(Hearts, true)
	if trick.Size() != 0 {
		t.Errorf("new trick should be empty, got %d cards", trick.Size())
	}
	if !trick.IsEmpty() {
		t.Error("new trick should report IsEmpty")
	}
}

func TestTrickPlayTracksLeadSuitAndSize(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 6), 0) // Ace

	if trick.Size() != 1 {
		t.Errorf("Size() = %d, want 1", trick.Size())
	}
	if trick.LeadSuit() != Spades {
		t.Errorf("LeadSuit() = %s, want Spades", trick.LeadSuit())
	}

	trick.Play(NewCard(Spades, 5), 1)
	trick.Play(NewCard(Spades, 4), 2)
	trick.Play(NewCard(Spades, 2), 3)

	if !trick.IsFull() {
		t.Error("trick with 4 plays should be full")
	}
}

func TestTrickWinnerHighestOfLeadSuit(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 2), 0) // 9
	trick.Play(NewCard(Spades, 6), 1) // Ace
	trick.Play(NewCard(Spades, 5), 2) // King
	trick.Play(NewCard(Spades, 7), 3) // 10 (outranks Ace)

	// 10 outranks Ace, so player 3 should win, not player 1.
	winner := trick.Winner()
	if winner.Player != 3 {
		t.Errorf("player 3 (10♠, highest rank) should win, got player %d", winner.Player)
	}
}

func TestTrickWinnerTrumpBeatsOffSuit(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 6), 0) // Ace led
	trick.Play(NewCard(Spades, 5), 1)
	trick.Play(NewCard(Hearts, 2), 2) // lowly trump 9
	trick.Play(NewCard(Spades, 4), 3)

	winner := trick.Winner()
	if winner.Player != 2 {
		t.Errorf("player 2 (trump) should win, got player %d", winner.Player)
	}
}

func TestTrickWinnerHighestTrumpWins(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 6), 0)
	trick.Play(NewCard(Hearts, 2), 1) // low trump
	trick.Play(NewCard(Hearts, 6), 2) // high trump (Ace)
	trick.Play(NewCard(Hearts, 7), 3) // trump 10, even higher

	winner := trick.Winner()
	if winner.Player != 3 {
		t.Errorf("player 3 (10♥, highest trump) should win, got player %d", winner.Player)
	}
}

func TestTrickWinnerOffSuitCannotWin(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 2), 0) // 9 led
	trick.Play(NewCard(Clubs, 6), 1)  // can't follow, discards Ace
	trick.Play(NewCard(Spades, 7), 2) // follows with 10, highest spade
	trick.Play(NewCard(Diamonds, 6), 3)

	winner := trick.Winner()
	if winner.Player != 2 {
		t.Errorf("player 2 (10♠) should win, got player %d", winner.Player)
	}
}

func TestTrickScoreAccumulates(t *testing.T) {
	trick := NewTrick(Hearts, true)
	trick.Play(NewCard(Spades, 3), 0) // J = 1
	trick.Play(NewCard(Spades, 4), 1) // Q = 2
	trick.Play(NewCard(Spades, 5), 2) // K = 3
	trick.Play(NewCard(Spades, 6), 3) // A = 4

	if trick.Score() != 10 {
		t.Errorf("Score() = %d, want 10", trick.Score())
	}
}

func TestTrickWithoutTrumpCannotBeTrumped(t *testing.T) {
	trick := NewTrick(Spades, false) // no-trump round
	trick.Play(NewCard(Clubs, 2), 0) // 9 led
	trick.Play(NewCard(Spades, 6), 1) // an "Ace of Spades" can't trump here

	winner := trick.Winner()
	if winner.Player != 0 {
		t.Errorf("with no trump in effect, off-suit discards never win: got player %d", winner.Player)
	}
}
