package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSlides(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# "+name), 0o644))
	}
	return dir
}

func TestDeck_ReadAndExists(t *testing.T) {
	t.Parallel()

	d, err := Open(writeSlides(t, "1.md", "2.md"))
	require.NoError(t, err)

	assert.True(t, d.Exists(1))
	assert.True(t, d.Exists(2))
	assert.False(t, d.Exists(3))
	assert.False(t, d.Exists(0))

	src, err := d.Read(2)
	require.NoError(t, err)
	assert.Equal(t, "# 2.md", src)
}

func TestDeck_ReadMissingSlide(t *testing.T) {
	t.Parallel()

	d, err := Open(writeSlides(t, "1.md"))
	require.NoError(t, err)

	_, err = d.Read(7)
	assert.ErrorIs(t, err, ErrMissingSlide)
	_, err = d.Read(-1)
	assert.ErrorIs(t, err, ErrMissingSlide)
}

func TestDeck_ReadSeesEdits(t *testing.T) {
	t.Parallel()

	dir := writeSlides(t, "1.md")
	d, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte("changed"), 0o644))
	src, err := d.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "changed", src)
}

func TestDeck_CountStopsAtGap(t *testing.T) {
	t.Parallel()

	d, err := Open(writeSlides(t, "1.md", "2.md", "3.md", "5.md", "notes.md", "02.md", "style.yml"))
	require.NoError(t, err)

	numbers, err := d.Numbers()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 5}, numbers)
	assert.Equal(t, 3, d.Count())
}

func TestOpen_RejectsFiles(t *testing.T) {
	t.Parallel()

	dir := writeSlides(t, "1.md")
	_, err := Open(filepath.Join(dir, "1.md"))
	assert.ErrorIs(t, err, errNotDir)

	_, err = Open(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
