// Package id generates the identifiers ucalc hands out.
//
// Every identifier is a ULID, optionally behind a short type prefix
// (sess_..., req_...). ULIDs sort by creation time, so session listings and
// log lines order naturally without a separate timestamp.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionID identifies an interpreter session.
type SessionID string

// RequestID identifies an API request.
type RequestID string

// TraceID groups the spans of one request.
type TraceID string

// SpanID identifies a unit of work within a trace.
type SpanID string

const (
	SessionPrefix = "sess"
	RequestPrefix = "req"
)

// ErrInvalidID reports a malformed identifier.
var ErrInvalidID = errors.New("invalid id")

// Generator produces ULIDs that increase monotonically within a millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	return NewGenerator(rand.Reader)
})

// Default returns the shared generator.
func Default() *Generator { return defaultGenerator() }

// NewGenerator creates a generator reading randomness from entropy.
// Tests pass a deterministic reader.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     time.Now,
	}
}

// Generate returns a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// String returns a new ULID in its canonical 26-character form.
func (g *Generator) String() string {
	return g.Generate().String()
}

// WithPrefix returns "prefix_ULID".
func (g *Generator) WithPrefix(prefix string) string {
	return prefix + "_" + g.String()
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() SessionID {
	return SessionID(Default().WithPrefix(SessionPrefix))
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() RequestID {
	return RequestID(Default().WithPrefix(RequestPrefix))
}

// NewTraceID returns a fresh trace identifier.
func NewTraceID() TraceID {
	return TraceID(Default().String())
}

// NewSpanID returns a fresh span identifier.
func NewSpanID() SpanID {
	return SpanID(Default().String())
}

func (id SessionID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }
func (id TraceID) String() string   { return string(id) }
func (id SpanID) String() string    { return string(id) }

// ParseSessionID validates s as a session identifier.
func ParseSessionID(s string) (SessionID, error) {
	if _, err := parsePrefixed(s, SessionPrefix); err != nil {
		return "", err
	}
	return SessionID(s), nil
}

// Time returns the creation time encoded in the session identifier.
func (id SessionID) Time() (time.Time, error) {
	u, err := parsePrefixed(string(id), SessionPrefix)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}

// IsValid reports whether s is a bare ULID.
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

func parsePrefixed(s, prefix string) (ulid.ULID, error) {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("%w: %q lacks prefix %q", ErrInvalidID, s, prefix)
	}
	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("%w: %q: %v", ErrInvalidID, s, err)
	}
	return u, nil
}
