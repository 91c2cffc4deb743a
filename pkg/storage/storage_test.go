package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/onemax_sweep/pkg/engine"
	"github.com/wildfunctions/onemax_sweep/pkg/grid"
	"github.com/wildfunctions/onemax_sweep/pkg/results"
	"github.com/wildfunctions/onemax_sweep/pkg/trial"
)

func sampleReport(score float64) engine.FinalReport {
	best := results.New(500, 1.0)
	best.Add(trial.Outcome{Generation: 12, GenerationFitness: 0.996, BestFitness: 1.0})
	best.Score = score

	point := grid.Point{MutationRate: 0.005, CrossoverRate: 0.35}
	return engine.FinalReport{
		Config:     engine.DefaultConfig(),
		BestPoint:  point,
		Best:       best,
		Cells:      []engine.CellReport{{Point: point, Results: best}},
		TotalCells: 40,
	}
}

func storeRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Init(ctx))

	first := NewRecord(sampleReport(0.91))
	second := NewRecord(sampleReport(0.95))
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	require.NoError(t, store.SaveReport(ctx, first))
	require.NoError(t, store.SaveReport(ctx, second))

	loaded, ok, err := store.GetReport(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, loaded.ID)
	assert.Equal(t, first.Report.BestPoint, loaded.Report.BestPoint)
	assert.InDelta(t, 0.91, loaded.Report.Best.Score, 1e-12)
	assert.Len(t, loaded.Report.Cells, 1)
	assert.Equal(t, first.Report.Best.Outcomes, loaded.Report.Best.Outcomes)

	_, ok, err = store.GetReport(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	summaries, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.ID, summaries[0].ID)
	assert.Equal(t, second.ID, summaries[1].ID)
	assert.InDelta(t, 0.95, summaries[1].BestScore, 1e-12)
	assert.Equal(t, 1, summaries[1].CellsEvaluated)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	storeRoundTrip(t, NewMemoryStore())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "sweeps.db"))
	t.Cleanup(func() { _ = store.Close() })
	storeRoundTrip(t, store)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "sweeps.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { _ = store.Close() })

	record := NewRecord(sampleReport(0.5))
	require.NoError(t, store.SaveReport(ctx, record))
	record.Report.Best.Score = 0.7
	require.NoError(t, store.SaveReport(ctx, record))

	summaries, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 0.7, summaries[0].BestScore, 1e-12)
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "sweeps.db"))
	err := store.SaveReport(context.Background(), NewRecord(sampleReport(0.5)))
	assert.Error(t, err)

	assert.Error(t, NewSQLiteStore("").Init(context.Background()))
}

func TestDecodeRecordVersionMismatch(t *testing.T) {
	record := NewRecord(sampleReport(0.5))
	record.CodecVersion = 99
	payload, err := EncodeRecord(record)
	require.NoError(t, err)

	_, err = DecodeRecord(payload)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestNewRecordAssignsID(t *testing.T) {
	a := NewRecord(sampleReport(0.5))
	b := NewRecord(sampleReport(0.5))
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, CloseIfSupported(store))

	store, err = NewStore("sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, CloseIfSupported(store))

	_, err = NewStore("unknown", "")
	assert.Error(t, err)
}

func TestPersistent(t *testing.T) {
	assert.True(t, Persistent("sqlite"))
	assert.False(t, Persistent("memory"))
	assert.False(t, Persistent(""))
	for _, name := range PersistentNames() {
		assert.Contains(t, Names(), name)
	}
}
