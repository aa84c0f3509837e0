package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SeedAndCommit(t *testing.T) {
	ctx := context.Background()
	content := "X"
	m := NewMemory().Seed(&Meta{VersionTag: "v1"}, &content)

	got, err := m.LoadArtifact(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X", got)
	assert.Zero(t, m.ArtifactWrites)

	require.NoError(t, m.Commit(ctx, Meta{VersionTag: "v2"}, "Y"))
	meta, err := m.LoadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", meta.VersionTag)
	assert.Equal(t, 1, m.MetaWrites)
	assert.Equal(t, 1, m.ArtifactWrites)
}

func TestMemory_CommitArtifactFailureSkipsMeta(t *testing.T) {
	m := NewMemory()
	m.SaveArtifactErr = errors.New("disk full")

	err := m.Commit(context.Background(), Meta{VersionTag: "v2"}, "Y")
	require.Error(t, err)
	assert.Zero(t, m.MetaWrites)

	_, err = m.LoadMeta(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeta_Matches(t *testing.T) {
	assert.True(t, Meta{}.Matches("anything"))
	assert.True(t, Meta{Checksum: Checksum("a")}.Matches("a"))
	assert.False(t, Meta{Checksum: Checksum("a")}.Matches("b"))
}
