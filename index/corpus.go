package index

import (
	"sync/atomic"
	"time"

	"github.com/poiesic/grantmatch/core"
)

// Corpus is an immutable pair of buyer and grant indices built together.
type Corpus struct {
	Buyers  *Index[*core.Buyer]
	Grants  *Index[*core.Grant]
	BuiltAt time.Time
}

// Holder publishes the current Corpus. Readers always see either the old or
// the new corpus in full, never a partially rebuilt one.
type Holder struct {
	current atomic.Pointer[Corpus]
}

// Load returns the published corpus, or nil if none has been published.
func (h *Holder) Load() *Corpus {
	return h.current.Load()
}

// Publish atomically replaces the published corpus and returns the previous one.
func (h *Holder) Publish(c *Corpus) *Corpus {
	return h.current.Swap(c)
}
