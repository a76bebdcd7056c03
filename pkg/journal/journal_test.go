package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRecent(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(ctx, Entry{At: at, Source: "openmeteo", Samples: 72}))
	require.NoError(t, j.Record(ctx, Entry{At: at.Add(time.Hour), Source: "openmeteo", Err: "fetch failed"}))
	require.NoError(t, j.Record(ctx, Entry{At: at.Add(2 * time.Hour), Source: "wttr", Samples: 24}))

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "wttr", got[0].Source)
	assert.True(t, got[0].OK())
	assert.True(t, got[0].At.Equal(at.Add(2*time.Hour)))
	assert.False(t, got[1].OK())
	assert.Equal(t, "fetch failed", got[1].Err)
}

func TestFileJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), Entry{At: time.Now(), Source: "replay"}))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	got, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNilJournal(t *testing.T) {
	var j *Journal
	assert.NoError(t, j.Record(context.Background(), Entry{}))
	got, err := j.Recent(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, j.Close())
}
