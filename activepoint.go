package suffixtree

// activePoint is the pending suffix not yet made explicit in the tree,
// held as the inclusive range [start, end] of the sequence. Together with the
// builder's active node it locates where the next extension applies.
type activePoint struct {
	start int
	end   int
}

func (a *activePoint) length() int {
	return a.end - a.start + 1
}

// firstCharacter returns the key of the first pending character.
func (a *activePoint) firstCharacter(keys []int32) (int32, bool) {
	if a.length() == 0 {
		return 0, false
	}
	return keys[a.start], true
}

// shrinkFront drops n characters from the front, used when descending.
func (a *activePoint) shrinkFront(n int) {
	if n > a.length() {
		invariant("cannot drop %d characters from active point of length %d", n, a.length())
	}
	a.start += n
}

// growBack defers n more characters to a later extension.
func (a *activePoint) growBack(n int) {
	a.end += n
}

// shift moves both bounds, keeping the length.
func (a *activePoint) shift(n int) {
	a.start += n
	a.end += n
}
