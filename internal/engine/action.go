package engine

import (
	"math/bits"

	"github.com/bran/manille/internal/rng"
)

// Kind distinguishes the two action shapes a player can submit.
type Kind uint8

const (
	KindPickTrump Kind = iota
	KindPlayCard
)

// Action is a single decision: either a trump choice (including the
// option to play without trump) or a card play.
type Action struct {
	Kind      Kind
	TrumpSuit Suit // valid when Kind == KindPickTrump && !NoTrump
	NoTrump   bool // valid when Kind == KindPickTrump
	Card      Card // valid when Kind == KindPlayCard
}

// PickTrump builds a trump-selection action for the given suit.
func PickTrump(suit Suit) Action {
	return Action{Kind: KindPickTrump, TrumpSuit: suit}
}

// PickNoTrump builds the "play without trump" action.
func PickNoTrump() Action {
	return Action{Kind: KindPickTrump, NoTrump: true}
}

// PlayCard builds a card-play action.
func PlayCard(c Card) Action {
	return Action{Kind: KindPlayCard, Card: c}
}

// String renders the action as the suit glyph or "None" for trump
// choices, "<suit><rank>" for card plays.
func (a Action) String() string {
	switch a.Kind {
	case KindPickTrump:
		if a.NoTrump {
			return "None"
		}
		return a.TrumpSuit.Symbol()
	case KindPlayCard:
		return a.Card.String()
	default:
		return "?"
	}
}

// ActionList is a compact set of actions, represented as a bitset over
// 37 bits: bits 0..31 are PlayCard(card i); bits 32..35 are
// PickTrump(suit); bit 36 is PickNoTrump. This single representation
// satisfies the push/pop_random/len/has/without/sentinel contract
// uniformly across both game phases.
type ActionList uint64

const (
	trumpBitBase  = 32
	noTrumpBit    = 36
	cardBitsMask  = uint64(1)<<32 - 1
	trumpBitsMask = uint64(0xF) << trumpBitBase
)

// UninitializedActionList is the sentinel empty set, used as the
// initial "tried actions" value in the searcher.
const UninitializedActionList ActionList = 0

// CardsActionList builds an ActionList of PlayCard actions from a Stack.
func CardsActionList(s Stack) ActionList {
	return ActionList(uint64(s))
}

// PushCard adds a PlayCard action.
func (a ActionList) PushCard(c Card) ActionList {
	return a | ActionList(uint64(1)<<uint(c))
}

// PushTrump adds a PickTrump(suit) action.
func (a ActionList) PushTrump(suit Suit) ActionList {
	return a | ActionList(uint64(1)<<(trumpBitBase+uint(suit)))
}

// PushNoTrump adds the PickNoTrump action.
func (a ActionList) PushNoTrump() ActionList {
	return a | ActionList(uint64(1)<<noTrumpBit)
}

// Push adds an arbitrary Action.
func (a ActionList) Push(act Action) ActionList {
	switch act.Kind {
	case KindPickTrump:
		if act.NoTrump {
			return a.PushNoTrump()
		}
		return a.PushTrump(act.TrumpSuit)
	case KindPlayCard:
		return a.PushCard(act.Card)
	default:
		return a
	}
}

// Has reports whether act is a member of the set.
func (a ActionList) Has(act Action) bool {
	switch act.Kind {
	case KindPickTrump:
		if act.NoTrump {
			return a&(1<<noTrumpBit) != 0
		}
		return a&(1<<(trumpBitBase+uint(act.TrumpSuit))) != 0
	case KindPlayCard:
		return a&ActionList(uint64(1)<<uint(act.Card)) != 0
	default:
		return false
	}
}

// Len returns the number of actions in the set.
func (a ActionList) Len() int {
	return bits.OnesCount64(uint64(a))
}

// IsEmpty reports whether the set has no actions.
func (a ActionList) IsEmpty() bool {
	return a == 0
}

// Without returns a with every action in other removed.
func (a ActionList) Without(other ActionList) ActionList {
	return a &^ other
}

// Cards returns the PlayCard cards present in the set, as a Stack.
func (a ActionList) Cards() Stack {
	return Stack(uint64(a) & cardBitsMask)
}

// Actions expands the set into concrete Action values, in ascending
// bit order (cards first, then trump suits, then no-trump).
func (a ActionList) Actions() []Action {
	out := make([]Action, 0, a.Len())
	m := uint64(a) & cardBitsMask
	for m != 0 {
		idx := bits.TrailingZeros64(m)
		m &= m - 1
		out = append(out, PlayCard(Card(idx)))
	}
	for s := Suit(0); s < numSuits; s++ {
		if a&(1<<(trumpBitBase+uint(s))) != 0 {
			out = append(out, PickTrump(s))
		}
	}
	if a&(1<<noTrumpBit) != 0 {
		out = append(out, PickNoTrump())
	}
	return out
}

// PopRandom removes and returns a uniformly random action from the set.
func (a ActionList) PopRandom(src *rng.Source) (Action, ActionList) {
	actions := a.Actions()
	if len(actions) == 0 {
		return Action{}, a
	}
	idx := src.RangeUsize(len(actions))
	picked := actions[idx]
	singleton := ActionList(0).Push(picked)
	return picked, a.Without(singleton)
}
