package engine

import "github.com/bran/manille/internal/rng"

// Weigher supplies a per-(player,card) likelihood, used by Randomize
// to bias determinization toward plausible worlds. inference.Table
// implements this without engine needing to import the inference
// package.
type Weigher interface {
	Weight(player uint8, card Card) float64
}

// State is the contract the searcher consumes. Round is the only
// implementation in this repository, but the searcher is written
// against the interface so it never assumes Round's internal layout.
type State interface {
	Turn() uint8
	PossibleActions() ActionList
	ApplyAction(Action)
	IsTerminal() bool
	Reward(perspective uint8) float32
	Randomize(observer uint8, w Weigher, src *rng.Source) State
	Clone() State
}
