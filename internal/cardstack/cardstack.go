// Package cardstack holds the index arithmetic behind the swipeable quote
// stack. Swiping left moves forward and swiping right moves back, both
// wrapping around the list. A list of zero or one card does not move.
package cardstack

import (
	"math/rand/v2"
	"sync"
)

// DefaultMaxVisible is the number of cards drawn on the stack.
const DefaultMaxVisible = 3

// NextIndexAfterLeftSwipe returns the index shown after a left swipe and
// false when the stack cannot move (total <= 1). An out-of-range current is
// clamped first.
func NextIndexAfterLeftSwipe(current, total int) (int, bool) {
	if total <= 1 {
		return 0, false
	}
	return (Clamp(current, total) + 1) % total, true
}

// PreviousIndexAfterRightSwipe mirrors NextIndexAfterLeftSwipe.
func PreviousIndexAfterRightSwipe(current, total int) (int, bool) {
	if total <= 1 {
		return 0, false
	}
	return (Clamp(current, total) - 1 + total) % total, true
}

// Clamp forces current into [0, total-1], or 0 for an empty list.
func Clamp(current, total int) int {
	switch {
	case total <= 0 || current < 0:
		return 0
	case current >= total:
		return total - 1
	default:
		return current
	}
}

// Visible returns the indices of the cards drawn on the stack, front card
// first, wrapping past the end of the list. At most max cards are returned
// and never more than total.
func Visible(current, total, max int) []int {
	n := min(max, total)
	if n <= 0 {
		return nil
	}
	c := Clamp(current, total)
	out := make([]int, n)
	for i := range out {
		out[i] = (c + i) % total
	}
	return out
}

// Navigator tracks the front card of a stack whose length can change.
// It is safe for concurrent use.
type Navigator struct {
	mu    sync.Mutex
	index int
	total int

	// Intn is the random source for Shuffle; tests pin it.
	Intn func(n int) int
}

// NewNavigator returns a navigator over total cards starting at start.
func NewNavigator(start, total int) *Navigator {
	return &Navigator{index: Clamp(start, total), total: total, Intn: rand.IntN}
}

// Index returns the front card index.
func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// Total returns the current stack length.
func (n *Navigator) Total() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.total
}

// Resize records a new list length and re-clamps the index.
func (n *Navigator) Resize(total int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.total = total
	n.index = Clamp(n.index, total)
}

// Reset moves back to the first card, e.g. after a category switch.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.index = 0
}

// SwipeLeft advances to the next card. It reports whether the index moved.
func (n *Navigator) SwipeLeft() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	next, ok := NextIndexAfterLeftSwipe(n.index, n.total)
	if ok {
		n.index = next
	}
	return ok
}

// SwipeRight goes back to the previous card. It reports whether the index
// moved.
func (n *Navigator) SwipeRight() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	prev, ok := PreviousIndexAfterRightSwipe(n.index, n.total)
	if ok {
		n.index = prev
	}
	return ok
}

// Shuffle jumps to a random card other than the current one. It reports
// false when there is nothing to jump to.
func (n *Navigator) Shuffle() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.total <= 1 {
		return false
	}
	intn := n.Intn
	if intn == nil {
		intn = rand.IntN
	}
	// Draw from the other total-1 cards and skip over the current one.
	j := intn(n.total - 1)
	if j >= n.index {
		j++
	}
	n.index = j
	return true
}

// Visible returns the stack's visible indices for at most max cards.
func (n *Navigator) Visible(max int) []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Visible(n.index, n.total, max)
}
