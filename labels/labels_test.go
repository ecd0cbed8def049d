package labels_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/fcgraph/labels"
)

func TestRead_TrimsAndKeepsBlankLines(t *testing.T) {
	got, err := labels.Read(strings.NewReader("mirai\n  gafgyt \r\n\ntsunami"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mirai", "gafgyt", "", "tsunami"}, got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.label")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\na\n"), 0o600))

	got, err := labels.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, got)

	_, err = labels.Load(filepath.Join(dir, "nope.label"))
	assert.ErrorIs(t, err, labels.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDistribution(t *testing.T) {
	d := labels.Distribution([]string{"b", "a", "c", "a", "b", "a"})
	assert.Equal(t, []labels.Count{{"a", 3}, {"b", 2}, {"c", 1}}, d)
	assert.Empty(t, labels.Distribution(nil))
}

func TestLoadAndLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "l")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\nx\n"), 0o600))

	core, logs := observer.New(zap.InfoLevel)
	got, err := labels.LoadAndLog(path, zap.New(core))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	entries := logs.FilterMessage("loaded labels").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 3, entries[0].ContextMap()["labels"])
}
