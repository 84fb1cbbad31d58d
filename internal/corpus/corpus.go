// Package corpus loads and generates sequences for the command-line tools.
package corpus

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/phroun/suffixtree"
	"github.com/pkg/errors"
)

// Load reads a corpus file. Files ending in .gz or .zst are decompressed.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	s, err := Read(f, filepath.Ext(path))
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return s, nil
}

// Read reads a corpus from r, decompressing according to ext (".gz",
// ".zst" or anything else for plain text).
func Read(r io.Reader, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return "", errors.WithStack(err)
		}
		defer zr.Close()
		r = zr
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return "", errors.WithStack(err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(data), nil
}

// Sanitize replaces every byte outside the alphabet with replacement and
// returns the number of bytes replaced. replacement must be in the alphabet.
func Sanitize(s string, a suffixtree.Alphabet, replacement byte) (string, int, error) {
	if _, err := a.IndexOf(replacement); err != nil {
		return "", 0, errors.Wrap(err, "replacement character")
	}
	buf := []byte(s)
	replaced := 0
	for i, c := range buf {
		if _, err := a.IndexOf(c); err != nil {
			buf[i] = replacement
			replaced++
		}
	}
	return string(buf), replaced, nil
}

// Random draws length characters uniformly from the first k characters of
// the alphabet. A non-zero sentinel replaces the last character.
func Random(rng *rand.Rand, a suffixtree.Alphabet, length, k int, sentinel byte) string {
	if k <= 0 || k > a.Size() {
		k = a.Size()
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = a.CharacterAt(rng.Intn(k))
	}
	if sentinel != 0 && length > 0 {
		buf[length-1] = sentinel
	}
	return string(buf)
}

// Occurrences finds every start of pattern in s by direct scanning. The
// tools use it to cross-check tree answers.
func Occurrences(s, pattern string) []int {
	out := []int{}
	if len(pattern) == 0 {
		return out
	}
	for i := 0; ; {
		j := strings.Index(s[i:], pattern)
		if j < 0 {
			return out
		}
		out = append(out, i+j)
		i += j + 1
	}
}
