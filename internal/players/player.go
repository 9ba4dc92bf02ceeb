// Package players implements the seat-level decision strategies the
// match controller drives: a uniform-random baseline, the IS-MCTS
// searcher, and a line-reading human seat for the REPL.
package players

import "github.com/bran/manille/internal/engine"

// Kind tags the closed set of player implementations. A tagged sum
// rather than an open extension mechanism: the match controller only
// ever drives these three strategies.
type Kind uint8

const (
	KindRandom Kind = iota
	KindMCTS
	KindHuman
)

// String names the kind, for CLI output.
func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "Random"
	case KindMCTS:
		return "MCTS"
	case KindHuman:
		return "Human"
	default:
		return "Unknown"
	}
}

// Player is the seat-level decision interface. ChooseAction is only
// ever invoked by the match controller when round.Turn() is this
// seat, so implementations derive their own seat from the round
// rather than storing it. Observe is called for every action any seat
// takes, including the player's own, before the match controller
// applies it to the shared round, so an MCTS seat can feed its
// private Inference table. StartRound is called by the match
// controller after every (re)deal, before any decision is requested:
// a redeal invalidates whatever a seat learned about the previous
// hand.
type Player interface {
	Name() string
	Kind() Kind
	StartRound(round *engine.Round)
	ChooseAction(round *engine.Round) engine.Action
	Observe(round *engine.Round, actor uint8, action engine.Action)
}
