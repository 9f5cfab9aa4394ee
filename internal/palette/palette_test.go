package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltin_Category(t *testing.T) {
	p := Builtin()
	require.Equal(t, "#8B0A50", p.Category("WINE").Main)
	require.Equal(t, p.Default, p.Category("UNKNOWN"))
}

func TestBuiltin_WarehouseWraps(t *testing.T) {
	p := Builtin()
	n := len(p.Cycle)
	require.Equal(t, p.Cycle[0], p.Warehouse(0))
	require.Equal(t, p.Cycle[1], p.Warehouse(n+1))
	require.Equal(t, p.Default, p.Warehouse(-1))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  WINE: {main: "#000000", light: "rgba(0, 0, 0, 0.3)"}
cycle:
  - {main: "#111111", light: "rgba(17, 17, 17, 0.3)"}
  - {main: "#222222", light: "rgba(34, 34, 34, 0.3)"}
`), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "#000000", p.Category("WINE").Main)
	require.Equal(t, Builtin().Default, p.Default)
	require.Equal(t, "#222222", p.Warehouse(3).Main)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "reading palette file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cycle: [ {main: \"\"} ]"), 0o644))
	_, err = LoadFile(path)
	require.ErrorContains(t, err, "cycle[0].main must not be empty")

	require.NoError(t, os.WriteFile(path, []byte("categories: ["), 0o644))
	_, err = LoadFile(path)
	require.ErrorContains(t, err, "parsing palette file")
}
