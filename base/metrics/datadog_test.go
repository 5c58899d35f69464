package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	assert.Nil(t, parseTag(nil))
	assert.Equal(t, []string{"a:b", "c:d"}, parseTag([]string{"a", "b", "c", "d"}))
	assert.Panics(t, func() { parseTag([]string{"odd"}) })
}

func TestMetricsWithoutAgent(t *testing.T) {
	m := New("test", WithoutPodName())
	assert.NotPanics(t, func() {
		m.BumpSum("count", 1, "k", "v")
		m.BumpAvg("avg", 1)
		m.BumpHistogram("hist", 3)
		m.BumpTime("time").End()
		// odd tags are recovered into a panic counter instead of crashing
		m.BumpSum("count", 1, "odd")
	})
}
