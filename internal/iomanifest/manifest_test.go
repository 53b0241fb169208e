package iomanifest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/mycocurate/internal/iomanifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *iomanifest.Manifest {
	path := filepath.Join(t.TempDir(), "json_files", "manifest.sqlite")
	m, err := iomanifest.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestClaimFinish(t *testing.T) {
	ctx := context.Background()
	m := open(t)

	empty, err := m.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	ok, err := m.Claim(ctx, "Aaoar1", "run1")
	require.NoError(t, err)
	assert.True(t, ok)

	// the same run cannot claim twice
	ok, err = m.Claim(ctx, "Aaoar1", "run1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Finish(ctx, "Aaoar1", iomanifest.StatusDone, 2, 75))
	e, found, err := m.Get(ctx, "Aaoar1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, iomanifest.StatusDone, e.Status)
	assert.Equal(t, 2, e.Pages)
	assert.Equal(t, 75, e.Files)
	assert.Equal(t, "run1", e.RunID)
	assert.False(t, e.UpdatedAt.IsZero())

	// done is never claimed again
	ok, err = m.Claim(ctx, "Aaoar1", "run2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err = m.Get(ctx, "Abobi1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClaimStatuses(t *testing.T) {
	tests := []struct {
		msg    string
		status iomanifest.Status
		claim  bool
	}{
		{"done", iomanifest.StatusDone, false},
		{"empty", iomanifest.StatusEmpty, false},
		{"failed", iomanifest.StatusFailed, true},
		{"stale running", iomanifest.StatusRunning, true},
	}

	ctx := context.Background()
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			m := open(t)
			ok, err := m.Claim(ctx, "Org1", "old")
			require.NoError(t, err)
			require.True(t, ok)
			require.NoError(t, m.Finish(ctx, "Org1", v.status, 0, 0))

			ok, err = m.Claim(ctx, "Org1", "new")
			require.NoError(t, err)
			assert.Equal(t, v.claim, ok)
			assert.Equal(t, !v.claim, v.status.IsCached())
		})
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	m := open(t)

	require.NoError(t, m.Import(ctx, "Org1", "legacy", 3, 120))
	require.NoError(t, m.Import(ctx, "Org1", "legacy", 1, 1))
	_, err := m.Claim(ctx, "Org2", "run")
	require.NoError(t, err)
	require.NoError(t, m.Finish(ctx, "Org2", iomanifest.StatusFailed, 0, 0))

	es, err := m.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, es, 2)
	assert.Equal(t, "Org1", es[0].Organism)
	assert.Equal(t, iomanifest.StatusDone, es[0].Status)
	assert.Equal(t, 3, es[0].Pages)
	assert.Equal(t, 120, es[0].Files)
	assert.Equal(t, iomanifest.StatusFailed, es[1].Status)

	empty, err := m.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.sqlite")
	m, err := iomanifest.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Import(ctx, "Org1", "r", 1, 1))
	require.NoError(t, m.Close())

	m, err = iomanifest.Open(ctx, path)
	require.NoError(t, err)
	defer m.Close()
	e, found, err := m.Get(ctx, "Org1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, iomanifest.StatusDone, e.Status)
	assert.Equal(t, path, m.Path())
}
