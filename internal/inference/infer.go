package inference

import "github.com/bran/manille/internal/engine"

// Infer translates one observed action into Table updates. It must be
// called against round's state *before* the action is applied (it
// reads the trick in progress and the mover's would-be void/overtake
// evidence from that pre-mutation state), once per seat's Inference
// table, for every action any seat takes — including the acting
// player's own, since opponents need to learn from it too.
func Infer(t *Table, round *engine.Round, actor uint8, action engine.Action) {
	if action.Kind == engine.KindPickTrump {
		if !action.NoTrump {
			t.ObserveTrumpSelection(actor, action.TrumpSuit)
		}
		return
	}

	card := action.Card
	trick := round.CurrentTrick()
	trump, hasTrump := round.Trump()

	if !trick.IsEmpty() {
		leadSuit := trick.LeadSuit()
		winner := trick.Winner()
		followed := card.Suit() == leadSuit
		losing := engine.Team(actor) != engine.Team(winner.Player)

		if !followed {
			t.ObserveVoidInSuit(actor, leadSuit)

			// The remaining rules only follow from the overtake
			// obligation, which only binds a mover whose team isn't
			// already winning the trick: a mover on the winning team
			// may discard freely, so no void/overtake inference can
			// be drawn from it.
			if losing && hasTrump && card.Suit() != trump {
				if winner.Card.Suit() == trump {
					t.ObserveUnderWinningTrump(actor, winner.Card)
				} else {
					t.ObserveVoidInTrump(actor, trump)
				}
			}
		}

		if losing && card.Suit() == winner.Card.Suit() && card.Rank() < winner.Card.Rank() {
			t.ObserveUnderWinningCard(actor, winner.Card)
		}
	}

	t.ObserveCardPlayed(card)
}
