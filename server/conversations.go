package server

import (
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/grantmatch/ai"
)

// DefaultMaxConversations bounds the number of conversations kept in memory.
const DefaultMaxConversations = 1000

// ConversationStore keeps recent advisor conversations in memory. Each
// conversation holds at most ai.MaxHistory messages. When the store is full
// the least recently updated conversation is dropped.
type ConversationStore struct {
	cache *lru.Cache[string, *conversation]
}

// conversation serializes turns on one conversation ID.
type conversation struct {
	mu       sync.Mutex
	messages []ai.Message
}

// NewConversationStore creates a store holding up to max conversations.
func NewConversationStore(max int) *ConversationStore {
	if max < 1 {
		max = DefaultMaxConversations
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *conversation](max)
	return &ConversationStore{cache: cache}
}

// lookup returns the conversation for id, creating it if needed. Peek keeps
// reads from refreshing the eviction order.
func (s *ConversationStore) lookup(id string) *conversation {
	fresh := &conversation{}
	if conv, ok, _ := s.cache.PeekOrAdd(id, fresh); ok {
		return conv
	}
	return fresh
}

// History returns a copy of the conversation's messages, oldest first.
func (s *ConversationStore) History(id string) []ai.Message {
	conv, ok := s.cache.Peek(id)
	if !ok {
		return nil
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return slices.Clone(conv.messages)
}

// Append adds messages to the conversation, keeping only the most recent ones.
func (s *ConversationStore) Append(id string, msgs ...ai.Message) {
	conv := s.lookup(id)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	conv.messages = ai.TrimHistory(append(slices.Clone(conv.messages), msgs...))
	s.cache.Add(id, conv)
}

// Exchange runs one advisor turn. reply receives the trimmed history ending
// with user. The user message and the reply are stored only when reply
// succeeds. Turns on the same conversation run one at a time, so concurrent
// requests never drop each other's messages.
func (s *ConversationStore) Exchange(id string, user ai.Message, reply func(history []ai.Message) (string, error)) (string, error) {
	conv := s.lookup(id)
	conv.mu.Lock()
	defer conv.mu.Unlock()

	history := ai.TrimHistory(append(slices.Clone(conv.messages), user))
	answer, err := reply(history)
	if err != nil {
		return "", err
	}

	conv.messages = ai.TrimHistory(append(history, ai.Message{Role: ai.RoleAssistant, Content: answer}))
	// re-adding refreshes recency and restores a conversation evicted mid-turn
	s.cache.Add(id, conv)
	return answer, nil
}

// Len returns the number of stored conversations.
func (s *ConversationStore) Len() int {
	return s.cache.Len()
}
