package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/localstore/localstore/util"
)

func TestCreateAllDirs(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a", "b", "c.db")

	require.NoError(t, util.CreateAllDirs(f, 0700))

	info, err := os.Stat(filepath.Dir(f))
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// The file itself isn't created
	_, err = os.Stat(f)
	require.True(t, os.IsNotExist(err))

	// Existing files are fine
	require.NoError(t, os.WriteFile(f, nil, 0600))
	require.NoError(t, util.CreateAllDirs(f, 0700))
}

func TestCreateAllDirsWorkingDir(t *testing.T) {
	require.NoError(t, util.CreateAllDirs("does-not-exist.db", 0700))
	_, err := os.Stat("does-not-exist.db")
	require.True(t, os.IsNotExist(err))
}
