package players

import (
	"github.com/bran/manille/internal/engine"
	"github.com/bran/manille/internal/rng"
)

// RandomPlayer samples uniformly from PossibleActions(). It is the
// baseline opponent the tournament and sprt harnesses measure the
// MCTS seat's win rate against.
type RandomPlayer struct {
	name string
	src  *rng.Source
}

// NewRandomPlayer builds a RandomPlayer drawing from src.
func NewRandomPlayer(name string, src *rng.Source) *RandomPlayer {
	return &RandomPlayer{name: name, src: src}
}

func (p *RandomPlayer) Name() string { return p.name }
func (p *RandomPlayer) Kind() Kind   { return KindRandom }

// StartRound is a no-op: a random seat carries no per-round state.
func (p *RandomPlayer) StartRound(round *engine.Round) {}

func (p *RandomPlayer) ChooseAction(round *engine.Round) engine.Action {
	action, _ := round.PossibleActions().PopRandom(p.src)
	return action
}

// Observe is a no-op: a random seat tracks no hidden-information state.
func (p *RandomPlayer) Observe(round *engine.Round, actor uint8, action engine.Action) {}
