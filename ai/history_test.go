package ai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimHistory(t *testing.T) {
	build := func(n int) []Message {
		msgs := make([]Message, n)
		for i := range msgs {
			msgs[i] = Message{Role: RoleUser, Content: fmt.Sprintf("m%d", i)}
		}
		return msgs
	}

	t.Run("short history untouched", func(t *testing.T) {
		msgs := build(3)
		assert.Equal(t, msgs, TrimHistory(msgs))
	})

	t.Run("exactly the limit", func(t *testing.T) {
		assert.Len(t, TrimHistory(build(MaxHistory)), MaxHistory)
	})

	t.Run("keeps most recent", func(t *testing.T) {
		got := TrimHistory(build(13))
		assert.Len(t, got, MaxHistory)
		assert.Equal(t, "m3", got[0].Content)
		assert.Equal(t, "m12", got[len(got)-1].Content)
	})

	t.Run("nil history", func(t *testing.T) {
		assert.Empty(t, TrimHistory(nil))
	})
}
