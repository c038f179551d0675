package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVolume struct {
	dirs  []string
	files map[string][]byte
	failOn string
}

func newFakeVolume() *fakeVolume {
	return &fakeVolume{files: map[string][]byte{}}
}

func (f *fakeVolume) MakeDir(path string) error {
	if path == f.failOn {
		return assertErr
	}
	f.dirs = append(f.dirs, path)
	return nil
}

func (f *fakeVolume) WriteFile(path string, data []byte) error {
	if path == f.failOn {
		return assertErr
	}
	f.files[path] = data
	return nil
}

var assertErr = errSentinel("boom")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }

func TestPopulateTreeReplaysSourceDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "leaf.txt"), []byte("leaf"), 0o644))

	vol := newFakeVolume()
	require.NoError(t, populateTree(vol, src))

	assert.Contains(t, vol.dirs, "/sub")
	assert.Equal(t, []byte("top"), vol.files["/top.txt"])
	assert.Equal(t, []byte("leaf"), vol.files["/sub/leaf.txt"])
}

func TestPopulateTreeAggregatesErrors(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.txt"), []byte("b"), 0o644))

	vol := newFakeVolume()
	vol.failOn = "/a.txt"

	err := populateTree(vol, src)
	require.Error(t, err)
	assert.Equal(t, []byte("b"), vol.files["/b.txt"])
}
