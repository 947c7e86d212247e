package server

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/grantmatch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStore(t *testing.T) {
	s := NewConversationStore(2)

	s.Append("a", ai.Message{Role: ai.RoleUser, Content: "1"})
	s.Append("b", ai.Message{Role: ai.RoleUser, Content: "2"})
	s.Append("a", ai.Message{Role: ai.RoleAssistant, Content: "3"})
	assert.Len(t, s.History("a"), 2)

	// "b" is now least recently updated
	s.Append("c", ai.Message{Role: ai.RoleUser, Content: "4"})
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, s.History("b"))
	assert.Len(t, s.History("a"), 2)
	assert.Len(t, s.History("c"), 1)
}

func TestConversationStore_TrimsHistory(t *testing.T) {
	s := NewConversationStore(0)
	for i := 0; i < 15; i++ {
		s.Append("a", ai.Message{Role: ai.RoleUser, Content: fmt.Sprint(i)})
	}

	history := s.History("a")
	assert.Len(t, history, ai.MaxHistory)
	assert.Equal(t, "5", history[0].Content)
	assert.Equal(t, "14", history[len(history)-1].Content)
}

func TestConversationStore_HistoryIsCopy(t *testing.T) {
	s := NewConversationStore(0)
	s.Append("a", ai.Message{Role: ai.RoleUser, Content: "hi"})

	h := s.History("a")
	h[0].Content = "changed"
	assert.Equal(t, "hi", s.History("a")[0].Content)
}

func TestConversationStore_Exchange(t *testing.T) {
	s := NewConversationStore(0)
	s.Append("a", ai.Message{Role: ai.RoleUser, Content: "earlier"})

	var seen []ai.Message
	reply, err := s.Exchange("a", ai.Message{Role: ai.RoleUser, Content: "hi"}, func(history []ai.Message) (string, error) {
		seen = history
		return "hello", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)

	require.Len(t, seen, 2)
	assert.Equal(t, "hi", seen[1].Content)

	history := s.History("a")
	require.Len(t, history, 3)
	assert.Equal(t, ai.Message{Role: ai.RoleAssistant, Content: "hello"}, history[2])
}

func TestConversationStore_ExchangeFailureKeepsHistory(t *testing.T) {
	s := NewConversationStore(0)
	s.Append("a", ai.Message{Role: ai.RoleUser, Content: "earlier"})

	boom := errors.New("upstream down")
	_, err := s.Exchange("a", ai.Message{Role: ai.RoleUser, Content: "hi"}, func([]ai.Message) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []ai.Message{{Role: ai.RoleUser, Content: "earlier"}}, s.History("a"))
}

func TestConversationStore_ConcurrentExchanges(t *testing.T) {
	s := NewConversationStore(0)
	const turns = 4

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("q%d", i)}
			_, err := s.Exchange("a", user, func(history []ai.Message) (string, error) {
				time.Sleep(5 * time.Millisecond)
				return fmt.Sprintf("a%d", i), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := s.History("a")
	require.Len(t, history, 2*turns)
	for i := 0; i < turns; i++ {
		assert.Contains(t, history, ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("q%d", i)})
		assert.Contains(t, history, ai.Message{Role: ai.RoleAssistant, Content: fmt.Sprintf("a%d", i)})
	}
	// each reply directly follows its question
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, "q"+history[i+1].Content[1:], history[i].Content)
	}
}
