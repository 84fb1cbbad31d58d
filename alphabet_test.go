package suffixtree

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedAlphabets(t *testing.T) {
	tests := []struct {
		name     string
		alphabet Alphabet
		size     int
		first    byte
		last     byte
		outside  byte
	}{
		{"printable", PrintableASCII, 96, ' ', 0x7f, '\n'},
		{"lowercase", LowercaseASCII, 26, 'a', 'z', 'A'},
		{"five letters", FiveLetters, 5, 'a', 'e', 'f'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.alphabet.Size())
			assert.Equal(t, tt.first, tt.alphabet.CharacterAt(0))
			assert.Equal(t, tt.last, tt.alphabet.CharacterAt(tt.size-1))

			i, err := tt.alphabet.IndexOf(tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.size-1, i)

			_, err = tt.alphabet.IndexOf(tt.outside)
			assert.True(t, errors.Is(err, ErrOutOfDomain), "got %v", err)
		})
	}
}

func TestAlphabetRoundTrip(t *testing.T) {
	for _, a := range []Alphabet{PrintableASCII, LowercaseASCII, FiveLetters} {
		for i := 0; i < a.Size(); i++ {
			got, err := a.IndexOf(a.CharacterAt(i))
			require.NoError(t, err)
			require.Equal(t, i, got)
		}
	}
}

func TestSetAlphabet(t *testing.T) {
	dna, err := NewSetAlphabet("ACGT$")
	require.NoError(t, err)
	assert.Equal(t, 5, dna.Size())
	assert.Equal(t, []byte("ACGT$"), slices.Collect(Characters(dna)))

	i, err := dna.IndexOf('T')
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = dna.IndexOf('U')
	assert.True(t, errors.Is(err, ErrOutOfDomain))

	_, err = NewSetAlphabet("ACGA")
	assert.True(t, errors.Is(err, ErrInvalidAlphabet))

	_, err = NewSetAlphabet("")
	assert.True(t, errors.Is(err, ErrInvalidAlphabet))
}

func TestFuncAlphabetChecksRange(t *testing.T) {
	// A mapping that happily returns indices past its own size.
	sloppy := NewAlphabet(3, func(c byte) int { return int(c) - 'x' }, func(i int) byte { return byte('x' + i) })

	i, err := sloppy.IndexOf('z')
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = sloppy.IndexOf('w')
	assert.True(t, errors.Is(err, ErrOutOfDomain))
	_, err = sloppy.IndexOf('{')
	assert.True(t, errors.Is(err, ErrOutOfDomain))
}

// lyingAlphabet claims success for indices outside its range.
type lyingAlphabet struct{}

func (lyingAlphabet) Size() int                   { return 2 }
func (lyingAlphabet) IndexOf(c byte) (int, error) { return int(c - 'a'), nil }
func (lyingAlphabet) CharacterAt(i int) byte      { return byte('a' + i) }

func TestEncodeRejectsMisbehavingAlphabet(t *testing.T) {
	_, err := encode(lyingAlphabet{}, "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfDomain))
	assert.Contains(t, err.Error(), "offset 2")

	_, err = New("abc", lyingAlphabet{})
	assert.True(t, errors.Is(err, ErrOutOfDomain))
}

func TestCharactersStopsEarly(t *testing.T) {
	var got []byte
	for c := range Characters(LowercaseASCII) {
		if c == 'd' {
			break
		}
		got = append(got, c)
	}
	assert.Equal(t, []byte("abc"), got)
}
