package parser

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/activecm/flowmon/parser/files"
	"github.com/activecm/flowmon/parser/flowmon"
	"github.com/activecm/flowmon/pkg/flowstats"
	"github.com/activecm/flowmon/resources"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

type (
	//FSImporter discovers FlowMonitor files on the file system and extracts
	//the aggregate metrics of each one
	FSImporter struct {
		log       *log.Logger
		entry     *log.Entry
		extractor *flowstats.Extractor
		progress  io.Writer
	}
)

//NewFSImporter creates a new file system importer. Client flows are
//recognized by sinkPort.
func NewFSImporter(res *resources.Resources, sinkPort int) *FSImporter {
	return &FSImporter{
		log:       res.Log,
		entry:     res.Logger(),
		extractor: flowstats.NewExtractor(sinkPort),
		progress:  ioutil.Discard,
	}
}

//SetProgressOutput sets where the progress bar is drawn when more than
//one file is extracted
func (fs *FSImporter) SetProgressOutput(w io.Writer) {
	fs.progress = w
}

//CollectFiles finds the FlowMonitor files matching pattern, ordered by
//their node count
func (fs *FSImporter) CollectFiles(pattern string) ([]string, error) {
	paths, err := files.GatherFlowmonFiles(pattern, fs.log)
	if err != nil {
		fs.entry.WithFields(log.Fields{
			"pattern": pattern,
			"error":   err.Error(),
		}).Error("Could not gather FlowMonitor files")
		return nil, err
	}

	fs.entry.WithFields(log.Fields{
		"pattern": pattern,
		"files":   len(paths),
	}).Info("Gathered FlowMonitor files")
	return paths, nil
}

//LoadFile opens and parses a single FlowMonitor file
func (fs *FSImporter) LoadFile(path string) (*flowmon.Document, error) {
	reader, closer, err := files.OpenFlowmonFile(path)
	defer closer()
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	doc, err := flowmon.Load(reader, fs.log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

//ExtractFile computes the aggregate metrics of a single FlowMonitor file
func (fs *FSImporter) ExtractFile(path string) (*flowstats.AggregateResult, error) {
	doc, err := fs.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := fs.extractor.Extract(path, doc)
	if err != nil {
		return nil, err
	}

	fs.entry.WithFields(log.Fields{
		"path":      path,
		"nodes":     res.NumNodes,
		"flows":     len(res.Flows),
		"clients":   res.TotalClients,
		"defaulted": res.DefaultedFields,
	}).Debug("Extracted flow metrics")
	return res, nil
}

//Run extracts every file in paths in order. The first failure halts the run.
func (fs *FSImporter) Run(paths []string) ([]*flowstats.AggregateResult, error) {
	start := time.Now()

	var p *mpb.Progress
	var bar *mpb.Bar
	if len(paths) > 1 {
		p = mpb.New(mpb.WithWidth(20), mpb.WithOutput(fs.progress))
		bar = p.AddBar(int64(len(paths)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Extracting flow metrics:", decor.WC{W: 30, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	results := make([]*flowstats.AggregateResult, 0, len(paths))
	for idx, path := range paths {
		fileStart := time.Now()
		res, err := fs.ExtractFile(path)
		if err != nil {
			fs.entry.WithFields(log.Fields{
				"path":  path,
				"error": err.Error(),
			}).Error("Could not extract flow metrics")
			if bar != nil {
				// complete the bar so the progress container can shut down
				bar.IncrBy(len(paths) - idx)
				p.Wait()
			}
			return nil, err
		}
		results = append(results, res)
		if bar != nil {
			bar.IncrBy(1, time.Since(fileStart))
		}
	}
	if p != nil {
		p.Wait()
	}

	fs.entry.WithFields(log.Fields{
		"files":    len(results),
		"duration": time.Since(start).String(),
	}).Info("Finished extracting flow metrics")
	return results, nil
}
