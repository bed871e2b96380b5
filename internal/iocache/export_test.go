package iocache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRecordExport(t *testing.T) {
	ctx := context.Background()
	resetGlobals(t)
	dir := t.TempDir()
	require.NoError(t, InitStores(schema.SQLiteBackend, filepath.Join(dir, "records.db"), schema.NoneBackend, ""))

	out := filepath.Join(dir, "export")
	assert.Error(t, ExecuteRecordExport(ctx, Manager, out), "nothing to export yet")
	assert.Error(t, ExecuteRecordExport(ctx, Manager, ""))

	store := Manager.GetRecordStore()
	sector, err := store.AddSector(ctx, 1, "TI", "")
	require.NoError(t, err)
	_, err = store.InsertRecord(ctx, schema.Record{
		EmployeeID: 5, CompanyID: 1, SectorID: sector.ID,
		Ratings: schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5},
	})
	require.NoError(t, err)

	require.NoError(t, ExecuteRecordExport(ctx, Manager, out))
	info, err := os.Stat(out + ".records.parquet")
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	status, err := store.GetStatus()
	require.NoError(t, err)
	PrintRecordStatus(status)
	PrintCacheStatus(schema.CacheStatus{Backend: "none"})
}

func TestExecuteRecordExportStoreErrors(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "export")

	t.Run("no store", func(t *testing.T) {
		mgr := &MockStoreManager{}
		mgr.On("GetRecordStore").Return(nil)
		assert.ErrorContains(t, ExecuteRecordExport(ctx, mgr, out), "not initialized")
		mgr.AssertExpectations(t)
	})

	t.Run("status failure", func(t *testing.T) {
		store := &MockRecordStore{}
		store.On("GetStatus").Return(schema.RecordStatus{}, errors.New("db down"))
		mgr := &MockStoreManager{}
		mgr.On("GetRecordStore").Return(store)
		assert.ErrorContains(t, ExecuteRecordExport(ctx, mgr, out), "db down")
		store.AssertExpectations(t)
	})
}
