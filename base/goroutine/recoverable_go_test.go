package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	<-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
}

func TestRecoverableGoWithoutPanic(t *testing.T) {
	done := false
	ev, ok := <-RecoverableGo(func() { done = true }, WithName("worker"))
	assert.Nil(t, ev)
	assert.False(t, ok)
	assert.True(t, done)
}

func TestRecoverableGoNamedPanic(t *testing.T) {
	ev := <-RecoverableGo(func() { panic("boom") }, WithName("watcher"))
	assert.Equal(t, "watcher", ev.Name)
	assert.Equal(t, "boom", ev.Panic)
	assert.NotEmpty(t, ev.Stack)
}
