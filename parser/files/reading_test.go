package files

import (
	"compress/gzip"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/activecm/flowmon/pkg/flowstats"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return &log.Logger{
		Out:       ioutil.Discard,
		Formatter: new(log.TextFormatter),
		Hooks:     make(log.LevelHooks),
		Level:     log.DebugLevel,
	}
}

func touch(t *testing.T, dir, name string) string {
	path := filepath.Join(dir, name)
	require.Nil(t, ioutil.WriteFile(path, []byte("<FlowMonitor/>"), 0644))
	return path
}

func TestGatherFlowmonFilesSortsByNodeCount(t *testing.T) {
	dir := t.TempDir()
	n20 := touch(t, dir, "final-20-nodes.xml")
	n2 := touch(t, dir, "final-2-nodes.xml")
	n100 := touch(t, dir, "final-100-nodes.xml.gz")
	n5 := touch(t, dir, "final-5-nodes.xml")
	touch(t, dir, "final-3-nodes.csv")

	found, err := GatherFlowmonFiles(filepath.Join(dir, "final-*-nodes.*"), testLogger())
	require.Nil(t, err)
	assert.Equal(t, []string{n2, n5, n20, n100}, found, "order must be numeric, not lexicographic")
}

func TestGatherFlowmonFilesNoMatches(t *testing.T) {
	found, err := GatherFlowmonFiles(filepath.Join(t.TempDir(), "final-*-nodes.xml"), testLogger())
	assert.Nil(t, err)
	assert.Empty(t, found)
}

func TestGatherFlowmonFilesBadPattern(t *testing.T) {
	_, err := GatherFlowmonFiles("final-[-nodes.xml", testLogger())
	assert.Equal(t, filepath.ErrBadPattern, err)
}

func TestGatherFlowmonFilesBadNodeCount(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "final-2-nodes.xml")
	touch(t, dir, "final-many-nodes.xml")

	_, err := GatherFlowmonFiles(filepath.Join(dir, "final-*-nodes.xml"), testLogger())
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, flowstats.ErrNodeCount))
}

func TestGatherFlowmonFilesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.Mkdir(filepath.Join(dir, "final-9-nodes.xml"), 0755))
	n1 := touch(t, dir, "final-1-nodes.xml")

	found, err := GatherFlowmonFiles(filepath.Join(dir, "final-*-nodes.xml"), testLogger())
	require.Nil(t, err)
	assert.Equal(t, []string{n1}, found)
}

func TestOpenFlowmonFilePlain(t *testing.T) {
	path := touch(t, t.TempDir(), "final-2-nodes.xml")

	reader, closer, err := OpenFlowmonFile(path)
	require.Nil(t, err)
	data, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	assert.Equal(t, "<FlowMonitor/>", string(data))
	assert.Nil(t, closer())
}

func TestOpenFlowmonFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final-2-nodes.xml.gz")
	f, err := os.Create(path)
	require.Nil(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("<FlowMonitor><FlowStats/></FlowMonitor>"))
	require.Nil(t, err)
	require.Nil(t, gz.Close())
	require.Nil(t, f.Close())

	reader, closer, err := OpenFlowmonFile(path)
	require.Nil(t, err)
	data, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	assert.Equal(t, "<FlowMonitor><FlowStats/></FlowMonitor>", string(data))
	assert.Nil(t, closer())
}

func TestOpenFlowmonFileMissing(t *testing.T) {
	_, closer, err := OpenFlowmonFile(filepath.Join(t.TempDir(), "final-2-nodes.xml"))
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, closer())
}

func TestOpenFlowmonFileCorruptGzip(t *testing.T) {
	path := touch(t, t.TempDir(), "final-2-nodes.xml.gz")
	_, closer, err := OpenFlowmonFile(path)
	assert.NotNil(t, err)
	assert.Nil(t, closer())
}
