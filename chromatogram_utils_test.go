package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChromatogramAsFile_PlainPath(t *testing.T) {
	path, cleanup, err := getChromatogramAsFile("data/sample_hplc_chromatogram.txt")
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, filepath.IsAbs(path))
	assert.Contains(t, path, "sample_hplc_chromatogram.txt")
}

func TestGetChromatogramAsFile_FileURI(t *testing.T) {
	src := filepath.Join(t.TempDir(), "run.txt")
	require.NoError(t, os.WriteFile(src, []byte("0.00\t2.0\n0.10\t2.1\n"), 0644))

	path, cleanup, err := getChromatogramAsFile("file://" + src)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, src, path)
}

func TestGetChromatogramAsFile_UnsupportedScheme(t *testing.T) {
	_, _, err := getChromatogramAsFile("ftp://example.org/run.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported URI scheme")
}

func TestTempFileTracking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromatogram-tmp.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	trackTempFile(path)
	cleanupTempFiles()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
