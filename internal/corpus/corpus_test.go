package corpus

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/phroun/suffixtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "the quick brown fox jumps over the lazy dog"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadPlain(t *testing.T) {
	got, err := Load(writeFile(t, "plain.txt", []byte(sample)))
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := Load(writeFile(t, "sample.txt.gz", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestLoadZstd(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := Load(writeFile(t, "sample.zst", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCorruptGzip(t *testing.T) {
	_, err := Load(writeFile(t, "bad.gz", []byte("not gzip at all")))
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	got, n, err := Sanitize("ab\ncd\t!", suffixtree.LowercaseASCII, 'z')
	require.NoError(t, err)
	assert.Equal(t, "abzcdzz", got)
	assert.Equal(t, 3, n)

	_, _, err = Sanitize("abc", suffixtree.LowercaseASCII, '#')
	assert.True(t, errors.Is(err, suffixtree.ErrOutOfDomain))
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Random(rng, suffixtree.LowercaseASCII, 1000, 3, 0)
	assert.Len(t, s, 1000)
	for i := 0; i < len(s); i++ {
		assert.Contains(t, "abc", string(s[i]))
	}

	s = Random(rng, suffixtree.PrintableASCII, 10, 4, '$')
	assert.Equal(t, byte('$'), s[9])

	s = Random(rng, suffixtree.FiveLetters, 50, 0, 0)
	for i := 0; i < len(s); i++ {
		assert.Contains(t, "abcde", string(s[i]))
	}
}

func TestOccurrences(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, Occurrences("aaaa", "aa"))
	assert.Equal(t, []int{1, 3}, Occurrences("banana$", "ana"))
	assert.Equal(t, []int{}, Occurrences("banana", "x"))
	assert.Equal(t, []int{}, Occurrences("banana", ""))
}
