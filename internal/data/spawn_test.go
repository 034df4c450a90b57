package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
spawns:
  - frame: 5
    template: wall
    x: 10
  - frame: 0
    template: drone
    count: 3
    spread_x: 2
    vx: 1.5
    hp: 10
    radius: 0.5
    damage: 4
`

func TestParseSpawnList(t *testing.T) {
	l, err := ParseSpawnList([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, l.Count())

	due := l.Due(0)
	require.Len(t, due, 1)
	assert.Equal(t, "drone", due[0].Template)
	assert.Equal(t, 3, due[0].Count)
	assert.Equal(t, 1.5, due[0].VX)

	assert.Empty(t, l.Due(4))
	assert.False(t, l.Done())

	due = l.Due(10)
	require.Len(t, due, 1)
	assert.Equal(t, "wall", due[0].Template)
	assert.Equal(t, 1, due[0].Count, "count defaults to 1")
	assert.Equal(t, 1, due[0].HP, "hp defaults to 1")
	assert.True(t, l.Done())
}

func TestSpawnListRequiresTemplate(t *testing.T) {
	_, err := ParseSpawnList([]byte("spawns:\n  - frame: 1\n"))
	assert.Error(t, err)
}

func TestLoadSpawnList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	l, err := LoadSpawnList(path)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Count())

	_, err = LoadSpawnList(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
