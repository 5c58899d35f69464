package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "a", *String("a"))
	assert.Equal(t, int64(3), *Int64(3))
	assert.True(t, *Bool(true))
	assert.Equal(t, now, *Time(now))
	assert.Equal(t, "", StringValue(nil))
	assert.Equal(t, "x", StringValue(String("x")))
}
