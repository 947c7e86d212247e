package badger

import (
	"fmt"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// Key prefixes for different data types
const (
	embeddingPrefix  = "emb"
	checkpointPrefix = "chkpt"
)

// modelTerminator ends the model name inside a key. Model names routinely
// contain ':' ("qwen2.5:3b"), so a NUL keeps one model's prefix from matching another's.
const modelTerminator = "\x00"

// makeEmbeddingPrefix generates the key prefix shared by all vectors of a model.
// Format: prefix:model\x00
func makeEmbeddingPrefix(model string) []byte {
	return []byte(fmt.Sprintf("%s:%s%s", embeddingPrefix, model, modelTerminator))
}

// makeEmbeddingKey generates a composite key for a cached vector.
// Format: prefix:model\x00id (id as a varint)
func makeEmbeddingKey(model string, id core.ID) []byte {
	prefix := makeEmbeddingPrefix(model)
	buf := make([]byte, 0, len(prefix)+core.IDMUS.Size(id))
	buf = append(buf, prefix...)
	return append(buf, storage.MarshalID(id)...)
}

// makeCheckpointKey generates a key for corpus checkpoints.
func makeCheckpointKey(corpus string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, corpus))
}
