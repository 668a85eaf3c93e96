package moodboard

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh item id on every call. Ids must be unique
// within a board and never empty.
type IDGenerator func() string

// NewID returns a random UUID string. It is the default IDGenerator.
func NewID() string {
	return uuid.NewString()
}

// SequentialIDs returns a generator producing prefix1, prefix2, ... in order.
// Replaying the same action log with a fresh SequentialIDs yields the same
// board, which makes it the generator of choice for scripts and tests.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}
