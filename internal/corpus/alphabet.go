package corpus

import (
	"strconv"
	"strings"

	"github.com/phroun/suffixtree"
	"github.com/pkg/errors"
)

// ParseAlphabet resolves an alphabet name as used on command lines and in
// bench profiles:
//
//	printable, lowercase, five   the predefined alphabets
//	set:ACGT$                    an explicit character set
//	range:a:10                   ten characters starting at 'a'
func ParseAlphabet(spec string) (suffixtree.Alphabet, error) {
	switch spec {
	case "", "printable":
		return suffixtree.PrintableASCII, nil
	case "lowercase":
		return suffixtree.LowercaseASCII, nil
	case "five":
		return suffixtree.FiveLetters, nil
	}

	kind, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, errors.Wrapf(suffixtree.ErrInvalidAlphabet, "unknown alphabet %q", spec)
	}
	switch kind {
	case "set":
		a, err := suffixtree.NewSetAlphabet(rest)
		if err != nil {
			return nil, err
		}
		return a, nil
	case "range":
		first, size, ok := strings.Cut(rest, ":")
		if !ok || len(first) != 1 {
			return nil, errors.Wrapf(suffixtree.ErrInvalidAlphabet, "range alphabet %q wants range:<char>:<size>", spec)
		}
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 || int(first[0])+n > 256 {
			return nil, errors.Wrapf(suffixtree.ErrInvalidAlphabet, "bad range size in %q", spec)
		}
		return suffixtree.NewRangeAlphabet(first[0], n), nil
	}
	return nil, errors.Wrapf(suffixtree.ErrInvalidAlphabet, "unknown alphabet kind %q", kind)
}
