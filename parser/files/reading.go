package files

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/activecm/flowmon/pkg/flowstats"
	"github.com/activecm/flowmon/util"
	log "github.com/sirupsen/logrus"
)

// GatherFlowmonFiles expands pattern and returns the FlowMonitor files it
// matches ordered by ascending node count. Matches which are not .xml or
// .xml.gz files are skipped. A match without a node count aborts the
// gathering since the results would be incomplete.
func GatherFlowmonFiles(pattern string, logger *log.Logger) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	type nodeFile struct {
		path     string
		numNodes int
	}
	var found []nodeFile

	for _, match := range matches {
		if !isFlowmonFile(match) {
			logger.WithFields(log.Fields{
				"path": match,
			}).Warn("Ignoring non .xml or .xml.gz file")
			continue
		}
		numNodes, err := flowstats.ParseNodeCount(match)
		if err != nil {
			logger.WithFields(log.Fields{
				"error": err.Error(),
				"path":  match,
			}).Error("Could not read the node count from the file name")
			return nil, err
		}
		found = append(found, nodeFile{path: match, numNodes: numNodes})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].numNodes < found[j].numNodes
	})

	toReturn := make([]string, 0, len(found))
	for _, f := range found {
		toReturn = append(toReturn, f.path)
	}
	return toReturn, nil
}

func isFlowmonFile(path string) bool {
	if util.IsDir(path) {
		return false
	}
	return strings.HasSuffix(path, ".xml") || strings.HasSuffix(path, ".xml.gz")
}

// OpenFlowmonFile returns a reader over the (decompressed) contents of a
// FlowMonitor file, and a function to close the underlying stream and any
// associated processors
func OpenFlowmonFile(path string) (io.Reader, func() error, error) {
	fileHandle, err := os.Open(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}

	if strings.HasSuffix(path, ".gz") {
		return newGzipReader(fileHandle)
	}
	return fileHandle, fileHandle.Close, nil
}

//newGzipReader returns an un-gzipped byte stream given a gzip compressed byte stream
//and a function closing both the decompressor and the underlying file
func newGzipReader(fileHandle io.ReadCloser) (io.Reader, func() error, error) {
	gzipReader, err := gzip.NewReader(fileHandle)
	if err != nil {
		return nil, fileHandle.Close, err
	}

	closer := func() error {
		errGzip := gzipReader.Close()
		errFile := fileHandle.Close()
		if errGzip != nil && errFile != nil {
			return fmt.Errorf("%s; %s", errGzip.Error(), errFile.Error())
		}
		if errGzip != nil {
			return errGzip
		}
		return errFile
	}
	return gzipReader, closer, nil
}
