package search

import (
	"math"
	"time"

	"github.com/bran/manille/internal/engine"
	"github.com/bran/manille/internal/rng"
)

// DefaultExploration is the UCB1 exploration constant, empirically
// tuned for this game rather than the canonical sqrt(2).
const DefaultExploration = 4.5

// DefaultArenaCapacity is sized generously enough that a single
// search at typical think-times never grows the arena.
const DefaultArenaCapacity = 500_000

// checkInterval is how often (in iterations) the wall-clock deadline
// is checked, keeping the hot loop free of a syscall per simulation.
const checkInterval = 2048

// Options configures one Search call. The arena's capacity is fixed
// at Searcher construction (New), not per call: the arena is reused
// and reset, never resized, across searches.
type Options struct {
	Budget      time.Duration
	Exploration float64 // 0 uses DefaultExploration
}

func (o Options) exploration() float64 {
	if o.Exploration == 0 {
		return DefaultExploration
	}
	return o.Exploration
}

// ChildStat reports one root child's search statistics.
type ChildStat struct {
	Action    engine.Action
	Visits    int
	AvgReward float64
}

// Result is everything a caller gets back from a search: the chosen
// action, per-root-child statistics (robust-child visit counts and
// average reward), and overall search bookkeeping.
type Result struct {
	BestAction  engine.Action
	Stats       []ChildStat
	Simulations int
	Elapsed     time.Duration
}

// Searcher owns a reusable node arena and the RNG source its
// simulations draw from. Create one per goroutine that searches
// (never shared, never locked) so rollouts sustain the tens of
// millions of draws/sec the searcher demands.
type Searcher struct {
	arena *arena
	src   *rng.Source

	// scratch path, reused across iterations to avoid a per-iteration
	// heap allocation. 64 is far beyond any reachable tree depth (a
	// round is at most 33 decisions deep: 1 trump pick + 32 plays).
	path [64]nodeID
}

// New creates a Searcher with the given arena capacity (0 = default).
func New(arenaCap int, src *rng.Source) *Searcher {
	if arenaCap == 0 {
		arenaCap = DefaultArenaCapacity
	}
	return &Searcher{arena: newArena(arenaCap), src: src}
}

// Search runs IS-MCTS from root (as seen by observer, the mover) until
// opts.Budget elapses, and returns the most-visited legal root action
// (robust-child rule) plus search statistics. If root has exactly one
// legal action, it is returned immediately without searching.
func (s *Searcher) Search(root engine.State, observer uint8, w engine.Weigher, opts Options) Result {
	start := time.Now()
	rootActions := root.PossibleActions()

	if rootActions.Len() == 1 {
		only := rootActions.Actions()[0]
		return Result{BestAction: only, Stats: []ChildStat{{Action: only, Visits: 0}}}
	}

	s.arena.reset()
	rootID := s.arena.alloc(noNode, engine.Action{}, observer, false)

	deadline := start.Add(opts.Budget)
	exploration := opts.exploration()

	sims := 0
	for {
		if sims%checkInterval == 0 && sims > 0 && time.Now().After(deadline) {
			break
		}
		if s.arena.full() {
			break
		}
		s.simulate(rootID, root, observer, w, exploration)
		sims++
	}

	rootNode := s.arena.get(rootID)
	stats := make([]ChildStat, 0, rootNode.numChildren)
	var best nodeID = noNode
	bestVisits := -1
	for i := 0; i < rootNode.numChildren; i++ {
		childID := rootNode.children[i]
		child := s.arena.get(childID)
		if !rootActions.Has(child.action) {
			continue
		}
		stats = append(stats, ChildStat{Action: child.action, Visits: child.numSims, AvgReward: child.avgReward()})
		if child.numSims > bestVisits {
			bestVisits = child.numSims
			best = childID
		}
	}

	result := Result{Stats: stats, Simulations: sims, Elapsed: time.Since(start)}
	if best == noNode {
		// No root child was ever created (the arena was already full
		// before the first simulation): fall back to a uniform legal
		// action so a result is always returned.
		action, _ := rootActions.PopRandom(s.src)
		result.BestAction = action
		return result
	}
	result.BestAction = s.arena.get(best).action
	return result
}

// simulate runs one determinize/select/expand/rollout/backpropagate
// pass from the root.
func (s *Searcher) simulate(rootID nodeID, root engine.State, observer uint8, w engine.Weigher, c float64) {
	world := root.Randomize(observer, w, s.src)

	depth := 0
	s.path[0] = rootID
	cur := rootID

	for !world.IsTerminal() {
		n := s.arena.get(cur)
		if n.terminal {
			// Selected a node already known to end the round: skip
			// expansion, backpropagate its reward directly.
			break
		}

		legal := world.PossibleActions()
		if legal.IsEmpty() {
			// No legal actions in this determinized world: treat as
			// terminal for this iteration and roll out (a no-op,
			// since the rollout loop below also checks IsEmpty).
			break
		}

		untried := legal.Without(n.tried)
		if !untried.IsEmpty() {
			action, _ := untried.PopRandom(s.src)
			actor := world.Turn()
			child := s.arena.alloc(cur, action, actor, true)

			n = s.arena.get(cur)
			n.tried = n.tried.Push(action)
			if n.numChildren < maxChildren {
				n.children[n.numChildren] = child
				n.numChildren++
			}

			world.ApplyAction(action)
			if world.IsTerminal() {
				s.arena.get(child).terminal = true
			}
			depth++
			s.path[depth] = child
			cur = child
			break
		}

		chosen := s.selectChild(n, legal, c)
		if chosen == noNode {
			break
		}
		world.ApplyAction(s.arena.get(chosen).action)
		depth++
		s.path[depth] = chosen
		cur = chosen
	}

	// Rollout: random legal play to terminal.
	for !world.IsTerminal() {
		legal := world.PossibleActions()
		if legal.IsEmpty() {
			break
		}
		action, _ := legal.PopRandom(s.src)
		world.ApplyAction(action)
	}

	s.backpropagate(depth, world)
}

// selectChild picks the legal child maximizing UCB1, incrementing
// avails on every legal child it passes over (chosen or not), per the
// information-set variant's availability accounting.
func (s *Searcher) selectChild(n *node, legal engine.ActionList, c float64) nodeID {
	best := noNode
	bestUCB := math.Inf(-1)
	for i := 0; i < n.numChildren; i++ {
		childID := n.children[i]
		child := s.arena.get(childID)
		if !legal.Has(child.action) {
			continue
		}
		child.avails++
		u := ucb1(child, c)
		if u > bestUCB {
			bestUCB = u
			best = childID
		}
	}
	return best
}

func ucb1(n *node, c float64) float64 {
	if n.numSims == 0 {
		return math.Inf(1)
	}
	exploitation := n.avgReward()
	exploration := c * math.Sqrt(2*math.Log(float64(n.avails))/float64(n.numSims))
	return exploitation + exploration
}

// backpropagate walks the simulated path from leaf to root. Each
// node's reward is taken from the perspective of the player who chose
// the action leading into it, so opponents' nodes accumulate the
// opposite-team reward automatically; the root (no incoming edge)
// only gets its visit count bumped.
func (s *Searcher) backpropagate(depth int, world engine.State) {
	for d := depth; d >= 0; d-- {
		n := s.arena.get(s.path[d])
		n.numSims++
		if n.hasEdge {
			n.reward += float64(terminalReward(world, n.actor))
		}
	}
}

// terminalReward reads world.Reward(perspective), returning 0 instead
// of panicking if world somehow isn't terminal. Round's legality rules
// guarantee a non-empty action set at every non-terminal state, so
// this only guards the generic State contract, not a reachable Round
// path.
func terminalReward(world engine.State, perspective uint8) float32 {
	if !world.IsTerminal() {
		return 0
	}
	return world.Reward(perspective)
}
