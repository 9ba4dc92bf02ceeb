package engine

import (
	"math/bits"

	"github.com/bran/manille/internal/rng"
)

// Stack is a bitmask over the 32-card deck; bit i set means card i is
// present. All Stack operations are O(1) bitwise and dominate rollout
// speed in the searcher's hot path.
type Stack uint32

// Empty is the empty stack.
const Empty Stack = 0

// All is the full 32-card deck.
const All Stack = (1 << NumCards) - 1

// StackOf builds a Stack from individual cards.
func StackOf(cards ...Card) Stack {
	var s Stack
	for _, c := range cards {
		s = s.With(c)
	}
	return s
}

// With returns the stack with card added.
func (s Stack) With(c Card) Stack {
	return s | (1 << uint(c))
}

// Without returns the stack with card removed.
func (s Stack) Without(c Card) Stack {
	return s &^ (1 << uint(c))
}

// Has reports whether card is present.
func (s Stack) Has(c Card) bool {
	return s&(1<<uint(c)) != 0
}

// Union returns the set union.
func (s Stack) Union(other Stack) Stack {
	return s | other
}

// Intersect returns the set intersection.
func (s Stack) Intersect(other Stack) Stack {
	return s & other
}

// Diff returns the set difference s \ other.
func (s Stack) Diff(other Stack) Stack {
	return s &^ other
}

// Complement returns ALL \ s.
func (s Stack) Complement() Stack {
	return All &^ s
}

// Len returns the number of cards in the stack.
func (s Stack) Len() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether the stack has no cards.
func (s Stack) IsEmpty() bool {
	return s == 0
}

// OfSuit returns the mask of all cards of the given suit.
func OfSuit(suit Suit) Stack {
	return Stack(uint32(0xFF) << (numRanks * uint(suit)))
}

// HasSuit reports whether the stack holds any card of the given suit.
func (s Stack) HasSuit(suit Suit) bool {
	return !s.Intersect(OfSuit(suit)).IsEmpty()
}

// AboveCard returns the mask of cards strictly stronger than c within
// c's own suit.
func AboveCard(c Card) Stack {
	rank := uint(c.Rank())
	template := (uint32(0xFF) << (rank + 1)) & 0xFF
	return Stack(template << (numRanks * uint(c.Suit())))
}

// Lowest returns the weakest card in the stack (within its own byte
// ordering; cross-suit "low" has no game meaning and callers should
// only use this within a single suit's mask).
func (s Stack) Lowest() (Card, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return Card(bits.TrailingZeros32(uint32(s))), true
}

// Highest returns the strongest card in the stack, same caveat as Lowest.
func (s Stack) Highest() (Card, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return Card(31 - bits.LeadingZeros32(uint32(s))), true
}

// nthSetBit returns the card at the given zero-based position among
// the stack's set bits, in ascending index order.
func (s Stack) nthSetBit(n int) Card {
	m := uint32(s)
	for i := 0; i < n; i++ {
		m &= m - 1 // clear lowest set bit
	}
	return Card(bits.TrailingZeros32(m))
}

// RandomCard selects a uniformly random card from the stack.
func (s Stack) RandomCard(src *rng.Source) (Card, bool) {
	n := s.Len()
	if n == 0 {
		return 0, false
	}
	return s.nthSetBit(src.RangeUsize(n)), true
}

// PopRandomCard selects and removes a uniformly random card.
func (s Stack) PopRandomCard(src *rng.Source) (Card, Stack) {
	c, ok := s.RandomCard(src)
	if !ok {
		return 0, s
	}
	return c, s.Without(c)
}

// WeightedRandomCard selects a random card from the stack weighted by
// weight(card); falls back to a uniform choice when every weight is
// zero (contradictory evidence).
func (s Stack) WeightedRandomCard(src *rng.Source, weight func(Card) float64) (Card, bool) {
	n := s.Len()
	if n == 0 {
		return 0, false
	}
	cards := make([]Card, 0, n)
	weights := make([]float64, 0, n)
	mm := uint32(s)
	for mm != 0 {
		idx := bits.TrailingZeros32(mm)
		mm &= mm - 1
		c := Card(idx)
		cards = append(cards, c)
		weights = append(weights, weight(c))
	}
	i := src.WeightedChoice(weights)
	return cards[i], true
}
