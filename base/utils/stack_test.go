package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := string(Stack(1))
	assert.True(t, strings.Contains(s, "utils.TestStack"), s)
	assert.True(t, strings.Contains(s, "stack_test.go"), s)
}
