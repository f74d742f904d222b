package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-daichendt/comp3110/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arrayReference = `<?xml version="1.0"?>
<TEST FILE="src/ArrayReference.java">
  <VERSION NUMBER="2" CHECKED="true">
    <LOCATION ORIG="1" NEW="1"/>
    <LOCATION ORIG="2" NEW="-1"/>
  </VERSION>
  <VERSION NUMBER="1" CHECKED="FALSE">
  </VERSION>
</TEST>
`

func TestParseXML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ArrayReference_1.java"), []byte("class A {}\n"), 0644))

	tc, err := fixture.ParseXML([]byte(arrayReference), dir)
	require.NoError(t, err)
	assert.Equal(t, "src/ArrayReference.java", tc.File)
	require.Len(t, tc.Versions, 2)

	v1, v2 := tc.Versions[0], tc.Versions[1]
	assert.Equal(t, 1, v1.Number)
	assert.False(t, v1.Checked)
	assert.Empty(t, v1.Locations)
	require.NotNil(t, v1.JavaPath)
	assert.Equal(t, filepath.Join(dir, "ArrayReference_1.java"), *v1.JavaPath)

	assert.Equal(t, 2, v2.Number)
	assert.True(t, v2.Checked)
	assert.Nil(t, v2.JavaPath)
	require.Len(t, v2.Locations, 2)
	assert.Equal(t, 1, v2.Locations[0].Orig)
	assert.Equal(t, 1, *v2.Locations[0].New)
	assert.Nil(t, v2.Locations[1].New)
}

func TestParseXML_Errors(t *testing.T) {
	_, err := fixture.ParseXML([]byte("<TEST"), t.TempDir())
	assert.Error(t, err)

	_, err = fixture.ParseXML([]byte("<TEST></TEST>"), t.TempDir())
	assert.ErrorContains(t, err, "FILE")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("b.xml", `<TEST FILE="Zeta.java"><VERSION NUMBER="1"/></TEST>`)
	write("a.xml", `<TEST FILE="Alpha.java"><VERSION NUMBER="1"/></TEST>`)
	write("c.xml~", `not xml`)
	write("notes.txt", `ignored`)

	cases, err := fixture.Convert(dir)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "Alpha.java", cases[0].File)
	assert.Equal(t, "Zeta.java", cases[1].File)
}

func TestConvert_Empty(t *testing.T) {
	cases, err := fixture.Convert(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestLoadWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.xml"), []byte(arrayReference), 0644))
	cases, err := fixture.Convert(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "test_data.json")
	require.NoError(t, fixture.Write(path, cases))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"java_path": null`)
	assert.Contains(t, string(data), `"new": null`)

	loaded, err := fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cases, loaded)
}
