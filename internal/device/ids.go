package device

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces a unique device identifier for a kind prefix.
//
// The generator is injectable so identifier collisions are either
// structurally impossible (UUID source) or fully deterministic (sequence
// source, for tests). Registration still rejects duplicates outright.
type IDGenerator func(prefix string) string

// UUIDGenerator is the default IDGenerator. It produces short prefixed
// identifiers such as "lgt-3f2a91c4".
func UUIDGenerator(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// NewSequenceGenerator returns a deterministic IDGenerator for tests,
// producing "lgt-0001", "lgt-0002", … across all prefixes.
func NewSequenceGenerator() IDGenerator {
	var n atomic.Uint64
	return func(prefix string) string {
		return fmt.Sprintf("%s-%04d", prefix, n.Add(1))
	}
}

// ID prefixes per device kind.
const (
	prefixLight    = "lgt"
	prefixFan      = "fan"
	prefixClimate  = "cli"
	prefixSecurity = "sec"
)
