// Package suffixtree builds suffix trees with Ukkonen's online algorithm and
// answers suffix and substring-occurrence queries against them.
package suffixtree

import (
	goerrors "github.com/go-errors/errors"
	"github.com/pkg/errors"
)

// Input errors
var (
	// ErrOutOfDomain indicates that a character is not part of the configured alphabet.
	ErrOutOfDomain = errors.New("character not in alphabet")

	// ErrEmptyPattern indicates that a query needs at least one character.
	ErrEmptyPattern = errors.New("pattern cannot be empty")
)

// Structure errors
var (
	// ErrOutOfRange indicates an offset past the end of an edge label.
	ErrOutOfRange = errors.New("offset past end of edge")

	// ErrInvalidAlphabet indicates an alphabet that cannot index child edges.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrInternal indicates an internal consistency error (should not happen).
	ErrInternal = errors.New("internal error")
)

// invariant panics with a stack-carrying error. It marks conditions that can
// only arise from a bug in the builder and must never be recovered from.
func invariant(format string, args ...interface{}) {
	panic(goerrors.Wrap(errors.Wrapf(ErrInternal, format, args...), 1))
}

// domainError reports c at the given offset of the input.
func domainError(c byte, offset int) error {
	return errors.Wrapf(ErrOutOfDomain, "character %q at offset %d", c, offset)
}
