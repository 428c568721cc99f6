// Package ids issues opaque string identifiers for stored entities.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers unique for the lifetime of the store.
// Each id combines a monotonically increasing counter with a random
// suffix, so ids stay unique even if the random component repeats.
// Ids are not stable across restarts; callers must treat them as opaque.
type Generator struct {
	// counter is incremented atomically so concurrent callers never
	// observe the same value
	counter atomic.Uint64
}

// NewGenerator returns a Generator with its counter at the initial value.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns a fresh id. kind is a short tag naming the entity type
// ("user", "room", "msg"); it makes ids easier to eyeball in the
// database but carries no meaning callers may rely on.
func (g *Generator) Next(kind string) string {
	n := g.counter.Add(1)
	// first 8 hex chars of a random UUID keep ids short while making
	// them hard to guess
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s%d_%s", kind, n, suffix)
}

// Reset returns the counter to its initial value. Used by the store-wide
// clear operation; not safe to call concurrently with Next.
func (g *Generator) Reset() {
	g.counter.Store(0)
}
