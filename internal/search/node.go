// Package search implements the information-set Monte Carlo tree
// search that chooses actions for the MCTS player: determinize,
// select, expand, rollout, backpropagate, repeated under a wall-clock
// budget.
package search

import "github.com/bran/manille/internal/engine"

// maxChildren bounds a node's branching factor: PlayCards offers at
// most 8 cards, PickTrump at most 5 options (4 suits + no-trump).
const maxChildren = 24

// nodeID indexes into an arena's node slice. noNode marks "absent"
// (the root has no parent, a leaf has no children yet).
type nodeID int32

const noNode nodeID = -1

// node is one information-set decision point. Nodes live in an
// append-only arena and are never individually freed; the whole arena
// is reset before each Search call.
type node struct {
	parent      nodeID
	children    [maxChildren]nodeID
	numChildren int

	// incoming edge: the action and actor that produced this node.
	// hasEdge is false only for the root.
	action  engine.Action
	actor   uint8
	hasEdge bool

	tried    engine.ActionList // actions already expanded from this node
	numSims  int
	avails   int
	reward   float64
	terminal bool
}

// arena is a pre-sized, append-only store of nodes, cleared (not
// deallocated) before each search so no reallocation happens during
// one search call.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{nodes: make([]node, 0, capacity)}
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) full() bool {
	return len(a.nodes) >= cap(a.nodes)-1
}

func (a *arena) alloc(parent nodeID, action engine.Action, actor uint8, hasEdge bool) nodeID {
	id := nodeID(len(a.nodes))
	a.nodes = append(a.nodes, node{parent: parent, action: action, actor: actor, hasEdge: hasEdge})
	return id
}

func (a *arena) get(id nodeID) *node {
	return &a.nodes[id]
}

// avgReward returns the node's mean backpropagated reward, 0 for an
// unvisited node.
func (n *node) avgReward() float64 {
	if n.numSims == 0 {
		return 0
	}
	return n.reward / float64(n.numSims)
}
