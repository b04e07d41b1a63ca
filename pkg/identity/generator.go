// Package identity produces process-unique control identifiers.
package identity

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultPrefix is prepended to generated ids when no prefix is configured.
const DefaultPrefix = "uic"

// Source hands out identifiers for controls that were created without one.
type Source interface {
	NewID() string
}

// Generator is a counter seeded from the wall clock at construction. Callers
// share one Generator by reference; ids stay unique for as long as the
// Generator lives.
type Generator struct {
	prefix  string
	counter atomic.Uint64
}

var _ Source = (*Generator)(nil)

// NewGenerator constructs a generator seeded with the current time in
// milliseconds.
func NewGenerator(prefix string) *Generator {
	return NewGeneratorAt(prefix, time.Now())
}

// NewGeneratorAt seeds the counter from the supplied instant.
func NewGeneratorAt(prefix string, seed time.Time) *Generator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g := &Generator{prefix: prefix}
	ms := seed.UnixMilli()
	if ms < 0 {
		ms = 0
	}
	g.counter.Store(uint64(ms))
	return g
}

// NewID returns the prefix followed by the next counter value.
func (g *Generator) NewID() string {
	next := g.counter.Add(1) - 1
	return g.prefix + strconv.FormatUint(next, 10)
}

// Prefix exposes the configured prefix.
func (g *Generator) Prefix() string {
	return g.prefix
}

// UUIDSource produces prefix + random UUID identifiers for hosts that merge
// controls created by several processes.
type UUIDSource struct {
	Prefix string
}

var _ Source = UUIDSource{}

// NewID returns a prefixed UUIDv4 string.
func (s UUIDSource) NewID() string {
	return s.Prefix + uuid.NewString()
}
