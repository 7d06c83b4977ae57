package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		ID:        id.NewSessionID(),
		CreatedAt: time.Unix(1_700_000_000, 0).UTC(),
		SavedAt:   time.Unix(1_700_000_600, 0).UTC(),
		Variables: []Variable{
			{Name: "n", Kind: kindNumber, Value: 4},
			{Name: "v", Kind: kindMeasurement, Value: 3, Terms: []Term{
				{Unit: "meter", Prefix: "kilo", Power: 1},
				{Unit: "hour", Power: -1},
			}},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	snap := sampleSnapshot()
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, snap.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, snap.Variables, got.Variables)

	entries, err := os.ReadDir(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, snap.ID.String()+snapshotExt, entries[0].Name())

	require.NoError(t, store.Delete(ctx, snap.ID))
	_, err = store.Load(ctx, snap.ID)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.NoError(t, store.Delete(ctx, snap.ID))
}

func TestFileStoreRejectsBadID(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(context.Background(), id.SessionID("../../etc/passwd"))
	assert.ErrorIs(t, err, id.ErrInvalidID)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	sid := id.NewSessionID()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sid.String()+snapshotExt), []byte("plain"), 0o644))

	_, err = store.Load(context.Background(), sid)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	snap := sampleSnapshot()
	require.NoError(t, store.Save(ctx, snap))

	snap.Variables[0].Value = 99
	got, err := store.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Variables[0].Value)
}

func TestVariableEncoding(t *testing.T) {
	reg := catalog.Default()
	km, err := reg.Resolve("km")
	require.NoError(t, err)
	h, err := reg.Resolve("h")
	require.NoError(t, err)

	speed := units.NewMeasurement(3, units.Of(km).DivideUnit(h))
	encoded := encodeVariables(map[string]calc.Value{"v": speed, "n": calc.Number(2)})
	require.Len(t, encoded, 2)
	assert.Equal(t, "n", encoded[0].Name)
	assert.Equal(t, "v", encoded[1].Name)

	decoded, err := decodeVariables(reg, encoded)
	require.NoError(t, err)
	assert.Equal(t, calc.Number(2), decoded["n"])
	got := decoded["v"].(units.Measurement)
	assert.Equal(t, "km/h", got.Unit.Symbol())
	assert.True(t, got.ApproxEqual(speed, 1e-12))

	_, err = decodeVariables(reg, []Variable{{Name: "x", Kind: "vector"}})
	assert.Error(t, err)
}
