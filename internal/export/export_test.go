package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gearworks/pkg/gear"
)

func TestWriteOBJ(t *testing.T) {
	spec := gear.Default()
	spec.Teeth = 3
	mesh := gear.MustBuild(spec)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, mesh, "small"))

	counts := map[string]int{}
	var firstFace string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "f" && firstFace == "" {
			firstFace = sc.Text()
		}
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, 1, counts["o"])
	assert.Equal(t, 3*gear.VerticesPerTooth, counts["v"])
	assert.Equal(t, 3*gear.VerticesPerTooth, counts["vn"])
	assert.Equal(t, 3*gear.TrianglesPerTooth, counts["f"])
	// OBJ indices are 1-based
	assert.Equal(t, "f 1//1 2//2 3//3", firstFace)
}

func TestWriteSTL(t *testing.T) {
	mesh := gear.MustBuild(gear.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, mesh, "default"))

	data := buf.Bytes()
	require.Len(t, data, stlHeaderSize+4+mesh.TriangleCount()*50)
	assert.True(t, bytes.HasPrefix(data, []byte("gearworks default")))
	assert.Equal(t, uint32(286), binary.LittleEndian.Uint32(data[stlHeaderSize:]))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	mesh := gear.MustBuild(gear.Default())

	objPath := filepath.Join(dir, "out", "gear.obj")
	require.NoError(t, WriteFile(objPath, mesh, "gear"))
	data, err := os.ReadFile(objPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "o gear\n")

	stlPath := filepath.Join(dir, "gear.STL")
	require.NoError(t, WriteFile(stlPath, mesh, "gear"))

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "gear.ply"), mesh, "gear"), ErrUnknownFormat)
}
