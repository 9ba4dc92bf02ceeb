package players

import (
	"time"

	"github.com/bran/manille/internal/engine"
	"github.com/bran/manille/internal/inference"
	"github.com/bran/manille/internal/rng"
	"github.com/bran/manille/internal/search"
)

// MCTSPlayer wraps the IS-MCTS searcher as a seat strategy. It
// maintains its own Inference table, fed exclusively through Observe
// by the match controller's observation stream, and biases the
// searcher's determinizations with it.
type MCTSPlayer struct {
	name        string
	think       time.Duration
	exploration float64

	searcher *search.Searcher
	table    *inference.Table

	lastResult search.Result
}

// NewMCTSPlayer builds an MCTS seat that thinks for think per
// decision, with the given UCB exploration constant (0 = search's
// default) and arena capacity (0 = search's default). src is the
// Searcher's private RNG source; see internal/rng's per-goroutine
// ownership model.
func NewMCTSPlayer(name string, think time.Duration, exploration float64, arenaCap int, src *rng.Source) *MCTSPlayer {
	return &MCTSPlayer{
		name:        name,
		think:       think,
		exploration: exploration,
		searcher:    search.New(arenaCap, src),
		table:       inference.NewTable(),
	}
}

func (p *MCTSPlayer) Name() string { return p.name }
func (p *MCTSPlayer) Kind() Kind   { return KindMCTS }

// StartRound resets the Inference table: a redeal puts every unseen
// card back in play, so evidence from the previous hand no longer
// constrains who holds what.
func (p *MCTSPlayer) StartRound(round *engine.Round) {
	p.table.Reset()
}

func (p *MCTSPlayer) ChooseAction(round *engine.Round) engine.Action {
	observer := round.Turn()
	result := p.searcher.Search(round, observer, p.table, search.Options{
		Budget:      p.think,
		Exploration: p.exploration,
	})
	p.lastResult = result
	return result.BestAction
}

// LastResult returns the statistics from the most recent search, for
// REPL/debug display.
func (p *MCTSPlayer) LastResult() search.Result { return p.lastResult }

// Observe feeds every seat's action (including this player's own)
// into the private Inference table, narrowing where the hidden cards
// can be.
func (p *MCTSPlayer) Observe(round *engine.Round, actor uint8, action engine.Action) {
	inference.Infer(p.table, round, actor, action)
}
