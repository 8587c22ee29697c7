package multitrack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-multitrack/internal/testutil"
)

func TestProject_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	a := NewWaveTrack("drums", 44100)
	a.Append(testutil.Constant(500, 0.25))
	a.SetGain(0.8)
	a.SetSelected(true)
	b := NewWaveTrack("bass", 44100)
	b.Append(testutil.Constant(300, -0.5))
	b.SetPan(-0.5)
	b.SetOffset(1.5)
	b.SetSyncGroup(2)
	list := NewTrackList(a, b)
	list.SetSyncLocked(true)

	require.NoError(t, SaveProject(dir, list))

	got, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.True(t, got.SyncLocked())

	ga := got.Track(0)
	assert.Equal(t, "drums", ga.Name())
	assert.Equal(t, 44100.0, ga.Rate())
	assert.Equal(t, 0.8, ga.Gain())
	assert.True(t, ga.Selected())
	assert.Equal(t, 500, ga.Len())
	testutil.AssertSamplesInDelta(t, testutil.Constant(500, 0.25), ga.Samples(), testutil.PCM32Tolerance)

	gb := got.Track(1)
	assert.Equal(t, "bass", gb.Name())
	assert.Equal(t, -0.5, gb.Pan())
	assert.Equal(t, 1.5, gb.Offset())
	assert.Equal(t, 2, gb.SyncGroup())
	assert.False(t, gb.Selected())
	testutil.AssertSamplesInDelta(t, testutil.Constant(300, -0.5), gb.Samples(), testutil.PCM32Tolerance)
}

func TestProject_SaveEmptyList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveProject(dir, NewTrackList()))

	got, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.False(t, got.SyncLocked())
}

func TestProject_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")
	list := NewTrackList(NewWaveTrack("t", 44100))

	require.NoError(t, SaveProject(dir, list))

	_, err := os.Stat(filepath.Join(dir, projectFileName))
	assert.NoError(t, err)
}

func TestProject_LoadMissingDirectory(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestProject_LoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	meta := "version: 99\ntracks: []\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectFileName), []byte(meta), 0o644))

	_, err := LoadProject(dir)
	assert.ErrorContains(t, err, "unsupported project version")
}

func TestProject_LoadRejectsMalformedMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectFileName), []byte("{not yaml"), 0o644))

	_, err := LoadProject(dir)
	assert.Error(t, err)
}

func TestProject_LoadMissingTrackFile(t *testing.T) {
	dir := t.TempDir()
	meta := "version: 1\ntracks:\n  - name: ghost\n    file: missing.wav\n    rate: 44100\n    gain: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectFileName), []byte(meta), 0o644))

	_, err := LoadProject(dir)
	assert.ErrorContains(t, err, "ghost")
}
