package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/GriffinCanCode/ucalc/internal/shared/id"
)

// ErrSnapshotNotFound reports a session that was never saved.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store persists snapshots.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, sid id.SessionID) (Snapshot, error)
	Delete(ctx context.Context, sid id.SessionID) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[id.SessionID]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[id.SessionID]Snapshot)}
}

func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	snap.Variables = append([]Variable(nil), snap.Variables...)
	s.mu.Lock()
	s.snaps[snap.ID] = snap
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sid id.SessionID) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[sid]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, sid)
	}
	snap.Variables = append([]Variable(nil), snap.Variables...)
	return snap, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid id.SessionID) error {
	s.mu.Lock()
	delete(s.snaps, sid)
	s.mu.Unlock()
	return nil
}

// FileStore writes one zstd-compressed JSON file per session.
type FileStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

const snapshotExt = ".json.zst"

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &FileStore{dir: dir, encoder: enc, decoder: dec}, nil
}

// Close releases the codec resources.
func (s *FileStore) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

func (s *FileStore) path(sid id.SessionID) (string, error) {
	if _, err := id.ParseSessionID(sid.String()); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, sid.String()+snapshotExt), nil
}

func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(snap.ID)
	if err != nil {
		return err
	}

	data, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	compressed := s.encoder.EncodeAll(data, nil)

	tmp, err := os.CreateTemp(s.dir, ".snap-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, sid id.SessionID) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	path, err := s.path(sid)
	if err != nil {
		return Snapshot{}, err
	}

	compressed, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, sid)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decompress snapshot %s: %w", sid, err)
	}
	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", sid, err)
	}
	return snap, nil
}

func (s *FileStore) Delete(ctx context.Context, sid id.SessionID) error {
	path, err := s.path(sid)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return ctx.Err()
}
