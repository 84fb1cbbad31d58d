package suffixtree

import (
	"iter"

	"github.com/pkg/errors"
)

// Alphabet is a bijection between a finite character domain and the dense
// range [0, Size()). Trees use it to size and index each node's child edges.
type Alphabet interface {
	// Size returns the number of characters in the domain.
	Size() int

	// IndexOf maps a character to its index. Characters outside the domain
	// fail with an error wrapping ErrOutOfDomain.
	IndexOf(c byte) (int, error)

	// CharacterAt maps an index in [0, Size()) back to its character.
	CharacterAt(i int) byte
}

// Predefined alphabets.
var (
	// PrintableASCII covers the 96 characters from ' ' through DEL.
	PrintableASCII = NewRangeAlphabet(' ', 96)

	// LowercaseASCII covers 'a' through 'z'.
	LowercaseASCII = NewRangeAlphabet('a', 26)

	// FiveLetters covers 'a' through 'e'.
	FiveLetters = NewRangeAlphabet('a', 5)
)

// funcAlphabet adapts a pair of mapping functions to the Alphabet interface.
type funcAlphabet struct {
	size        int
	indexOf     func(c byte) int
	characterAt func(i int) byte
}

// NewAlphabet builds an Alphabet from raw mapping functions. indexOf may
// return any integer; values outside [0, size) are reported as ErrOutOfDomain.
func NewAlphabet(size int, indexOf func(c byte) int, characterAt func(i int) byte) Alphabet {
	return &funcAlphabet{size: size, indexOf: indexOf, characterAt: characterAt}
}

func (a *funcAlphabet) Size() int { return a.size }

func (a *funcAlphabet) IndexOf(c byte) (int, error) {
	i := a.indexOf(c)
	if i < 0 || i >= a.size {
		return 0, errors.Wrapf(ErrOutOfDomain, "character %q", c)
	}
	return i, nil
}

func (a *funcAlphabet) CharacterAt(i int) byte { return a.characterAt(i) }

// RangeAlphabet is a contiguous run of byte values starting at First.
type RangeAlphabet struct {
	First byte
	Count int
}

// NewRangeAlphabet returns the alphabet [first, first+size).
func NewRangeAlphabet(first byte, size int) *RangeAlphabet {
	return &RangeAlphabet{First: first, Count: size}
}

func (a *RangeAlphabet) Size() int { return a.Count }

func (a *RangeAlphabet) IndexOf(c byte) (int, error) {
	i := int(c) - int(a.First)
	if i < 0 || i >= a.Count {
		return 0, errors.Wrapf(ErrOutOfDomain, "character %q", c)
	}
	return i, nil
}

func (a *RangeAlphabet) CharacterAt(i int) byte { return a.First + byte(i) }

// SetAlphabet is an explicit, possibly sparse, set of characters. Indices
// follow the order the characters were given in.
type SetAlphabet struct {
	chars string
	index [256]int16
}

// NewSetAlphabet builds an alphabet from the distinct characters of chars,
// e.g. "ACGT$". Duplicates and an empty set are rejected.
func NewSetAlphabet(chars string) (*SetAlphabet, error) {
	if len(chars) == 0 {
		return nil, errors.Wrap(ErrInvalidAlphabet, "empty character set")
	}
	a := &SetAlphabet{chars: chars}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		if a.index[c] >= 0 {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "duplicate character %q", c)
		}
		a.index[c] = int16(i)
	}
	return a, nil
}

func (a *SetAlphabet) Size() int { return len(a.chars) }

func (a *SetAlphabet) IndexOf(c byte) (int, error) {
	i := a.index[c]
	if i < 0 {
		return 0, errors.Wrapf(ErrOutOfDomain, "character %q", c)
	}
	return int(i), nil
}

func (a *SetAlphabet) CharacterAt(i int) byte { return a.chars[i] }

// Characters yields every character of the alphabet in index order.
func Characters(a Alphabet) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < a.Size(); i++ {
			if !yield(a.CharacterAt(i)) {
				return
			}
		}
	}
}

// encode maps s to alphabet indices, re-checking that the alphabet stays
// inside its own declared range.
func encode(a Alphabet, s string) ([]int32, error) {
	keys := make([]int32, len(s), len(s)+1)
	size := a.Size()
	for i := 0; i < len(s); i++ {
		k, err := a.IndexOf(s[i])
		if err != nil || k < 0 || k >= size {
			return nil, domainError(s[i], i)
		}
		keys[i] = int32(k)
	}
	return keys, nil
}
