package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
	"github.com/GriffinCanCode/ucalc/internal/utils"
)

// ErrSessionNotFound reports an unknown or pruned session.
var ErrSessionNotFound = errors.New("session not found")

// Metrics receives session lifecycle events.
type Metrics interface {
	SetActiveSessions(n int)
	ObserveEvaluation(source, status string, d time.Duration)
	SessionSaved()
	SessionRestored()
}

type noopMetrics struct{}

func (noopMetrics) SetActiveSessions(int)                           {}
func (noopMetrics) ObserveEvaluation(string, string, time.Duration) {}
func (noopMetrics) SessionSaved()                                   {}
func (noopMetrics) SessionRestored()                                {}

// Info describes a live session.
type Info struct {
	ID          id.SessionID `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	LastUsed    time.Time    `json:"last_used"`
	Evaluations int          `json:"evaluations"`
	Variables   int          `json:"variables"`
}

// Stats summarises manager activity.
type Stats struct {
	Active       int        `json:"active"`
	LastSaved    *time.Time `json:"last_saved,omitempty"`
	LastRestored *time.Time `json:"last_restored,omitempty"`
}

type session struct {
	mu          sync.Mutex
	id          id.SessionID
	createdAt   time.Time
	lastUsed    time.Time
	evaluations int
	interp      *calc.Interpreter
}

func (s *session) info() Info {
	return Info{
		ID:          s.id,
		CreatedAt:   s.createdAt,
		LastUsed:    s.lastUsed,
		Evaluations: s.evaluations,
		Variables:   len(s.interp.Variables()),
	}
}

// Manager owns the calculator sessions. Each session has its own
// interpreter and is evaluated under its own lock.
type Manager struct {
	registry *catalog.Registry
	store    Store
	log      *zap.Logger
	metrics  Metrics
	now      func() time.Time

	mu           sync.RWMutex
	sessions     map[id.SessionID]*session
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a manager. A nil store keeps snapshots in memory and a
// nil registry uses the built-in catalogue.
func NewManager(reg *catalog.Registry, store Store, log *zap.Logger) *Manager {
	if reg == nil {
		reg = catalog.Default()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		registry: reg,
		store:    store,
		log:      log,
		metrics:  noopMetrics{},
		now:      time.Now,
		sessions: make(map[id.SessionID]*session),
	}
}

// WithMetrics attaches a metrics sink.
func (m *Manager) WithMetrics(metrics Metrics) *Manager {
	if metrics != nil {
		m.metrics = metrics
	}
	return m
}

// Create opens a new empty session.
func (m *Manager) Create() Info {
	s := m.open(id.NewSessionID())
	m.log.Debug("session created", zap.String("session_id", s.id.String()))
	return s.info()
}

func (m *Manager) open(sid id.SessionID) *session {
	now := m.now()
	s := &session{
		id:        sid,
		createdAt: now,
		lastUsed:  now,
		interp:    calc.NewInterpreter(m.registry),
	}
	m.mu.Lock()
	m.sessions[sid] = s
	n := len(m.sessions)
	m.mu.Unlock()
	m.metrics.SetActiveSessions(n)
	return s
}

func (m *Manager) lookup(sid id.SessionID) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sid)
	}
	return s, nil
}

// Get describes one session.
func (m *Manager) Get(sid id.SessionID) (Info, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info(), nil
}

// List returns every live session, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	list := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()

	out := make([]Info, 0, len(list))
	for _, s := range list {
		s.mu.Lock()
		out = append(out, s.info())
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Delete closes a session. Saved snapshots are kept.
func (m *Manager) Delete(sid id.SessionID) error {
	m.mu.Lock()
	_, ok := m.sessions[sid]
	delete(m.sessions, sid)
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sid)
	}
	m.metrics.SetActiveSessions(n)
	m.log.Debug("session deleted", zap.String("session_id", sid.String()))
	return nil
}

// Evaluate runs every statement of input in the session and returns the
// last result. A nil value means input held no statement.
func (m *Manager) Evaluate(ctx context.Context, sid id.SessionID, input string) (calc.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := m.lookup(sid)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateExpression(input); err != nil {
		return nil, err
	}

	start := m.now()
	s.mu.Lock()
	results, err := s.interp.Run(input)
	s.evaluations++
	s.lastUsed = m.now()
	s.mu.Unlock()

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.ObserveEvaluation("session", status, m.now().Sub(start))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[len(results)-1], nil
}

// Variables returns a copy of the session's environment.
func (m *Manager) Variables(sid id.SessionID) (map[string]calc.Value, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.Variables(), nil
}

// Reset clears the session's variables.
func (m *Manager) Reset(sid id.SessionID) error {
	s, err := m.lookup(sid)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.interp.Reset()
	s.lastUsed = m.now()
	s.mu.Unlock()
	return nil
}

// Prune closes sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	removed := 0
	for sid, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, sid)
			removed++
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if removed > 0 {
		m.metrics.SetActiveSessions(n)
		m.log.Info("pruned idle sessions", zap.Int("removed", removed), zap.Int("active", n))
	}
	return removed
}

// StartJanitor prunes idle sessions every interval until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Prune(maxIdle)
			}
		}
	}()
}

// Save writes the session's variables to the store.
func (m *Manager) Save(ctx context.Context, sid id.SessionID) (Snapshot, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	snap := Snapshot{
		ID:        s.id,
		CreatedAt: s.createdAt,
		SavedAt:   m.now(),
		Variables: encodeVariables(s.interp.Variables()),
	}
	s.mu.Unlock()

	if err := m.store.Save(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("save session %s: %w", sid, err)
	}

	m.mu.Lock()
	saved := snap.SavedAt
	m.lastSaved = &saved
	m.mu.Unlock()
	m.metrics.SessionSaved()
	m.log.Info("session saved",
		zap.String("session_id", sid.String()),
		zap.Int("variables", len(snap.Variables)))
	return snap, nil
}

// Restore loads a snapshot into the session, replacing its variables. A
// session that is no longer live is reopened under the same ID.
func (m *Manager) Restore(ctx context.Context, sid id.SessionID) (Info, error) {
	snap, err := m.store.Load(ctx, sid)
	if err != nil {
		return Info{}, err
	}
	vars, err := decodeVariables(m.registry, snap.Variables)
	if err != nil {
		return Info{}, fmt.Errorf("restore session %s: %w", sid, err)
	}

	s, err := m.lookup(sid)
	if errors.Is(err, ErrSessionNotFound) {
		s = m.open(sid)
		s.mu.Lock()
		s.createdAt = snap.CreatedAt
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.interp.Reset()
	for name, v := range vars {
		// names and values come from a decoded snapshot and are never empty
		_ = s.interp.SetVariable(name, v)
	}
	s.lastUsed = m.now()
	info := s.info()
	s.mu.Unlock()

	m.mu.Lock()
	restored := m.now()
	m.lastRestored = &restored
	m.mu.Unlock()
	m.metrics.SessionRestored()
	m.log.Info("session restored",
		zap.String("session_id", sid.String()),
		zap.Int("variables", len(vars)))
	return info, nil
}

// Stats reports activity counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Active:       len(m.sessions),
		LastSaved:    m.lastSaved,
		LastRestored: m.lastRestored,
	}
}
