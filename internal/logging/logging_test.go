package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phroun/suffixtree"
	"github.com/stretchr/testify/assert"
)

var _ suffixtree.Logger = (*Logger)(nil)

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		trace bool
		want  []string
	}{
		{"quiet", false, false, []string{"[INF] n 1", "[WRN] w 2", "[ERR] e 3"}},
		{"debug", true, false, []string{"[INF] n 1", "[WRN] w 2", "[ERR] e 3", "[DBG] d 4"}},
		{"trace", true, true, []string{"[INF] n 1", "[WRN] w 2", "[ERR] e 3", "[DBG] d 4", "[TRC] t 5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, false, tt.debug, tt.trace)
			l.Noticef("n %d", 1)
			l.Warnf("w %d", 2)
			l.Errorf("e %d", 3)
			l.Debugf("d %d", 4)
			l.Tracef("t %d", 5)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, tt.want, lines)
			assert.Equal(t, tt.trace, l.TraceEnabled())
		})
	}
}

func TestBuildTracing(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, true, true)
	_, err := suffixtree.NewWithOptions("abab", suffixtree.Options{
		Alphabet: suffixtree.LowercaseASCII,
		Logger:   l,
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[TRC] phase 0, j 0: rule 2a")
	assert.Contains(t, buf.String(), "[DBG] built suffix tree: 4 characters")
}
