package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/activecm/flowmon/pkg/flowstats"
	htmlTempl "github.com/activecm/flowmon/reporting/templates"
	"github.com/activecm/flowmon/util"
	log "github.com/sirupsen/logrus"
)

const chartFileName = "chart.png"

// WriteHTMLReport writes a report directory holding a summary page, one
// page per simulation, the stylesheet and the summary chart. If outDir
// already exists a numeric suffix is appended. The directory actually
// written to is returned.
func WriteHTMLReport(outDir string, results []*flowstats.AggregateResult, opts ChartOptions, logger log.FieldLogger) (string, error) {
	if len(results) == 0 {
		return "", errors.New("no results to report on")
	}

	//create outFolder as our string builder
	outFolder := []byte(outDir)
	outFolderBaseLen := len(outFolder)
	counter := 1

	//while the file exists, append the next counter
	for util.Exists(string(outFolder)) {
		outFolder = outFolder[:outFolderBaseLen]
		outFolder = append(outFolder, []byte(strconv.Itoa(counter))...)
		counter++
	}
	outFolderString := string(outFolder)

	if err := os.MkdirAll(outFolderString, 0755); err != nil {
		return "", err
	}

	if err := ioutil.WriteFile(filepath.Join(outFolderString, "style.css"), htmlTempl.CSStempl, 0644); err != nil {
		return "", err
	}

	if err := SaveChart(filepath.Join(outFolderString, chartFileName), results, opts); err != nil {
		return "", err
	}

	if err := writeHomePage(outFolderString, results, opts.Title); err != nil {
		return "", err
	}

	for idx, res := range results {
		if err := writeSimulationPage(outFolderString, idx, res, opts.Title); err != nil {
			return "", err
		}
	}

	logger.WithFields(log.Fields{
		"directory":   outFolderString,
		"simulations": len(results),
	}).Info("Wrote HTML report")
	return outFolderString, nil
}

// simulationPage names the page holding the flows of the idx'th result.
// Node counts repeat when a pattern spans several directories.
func simulationPage(idx int, res *flowstats.AggregateResult) string {
	return fmt.Sprintf("sim-%d-nodes-%d.html", idx+1, res.NumNodes)
}

func writeHomePage(dir string, results []*flowstats.AggregateResult, title string) error {
	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := template.New("index.html").Parse(htmlTempl.Hometempl)
	if err != nil {
		return err
	}

	w, err := getSummaryWriter(results)
	if err != nil {
		return err
	}

	return out.Execute(f, &htmlTempl.ReportingInfo{
		Title:  title,
		Chart:  chartFileName,
		Writer: template.HTML(w),
	})
}

func getSummaryWriter(results []*flowstats.AggregateResult) (string, error) {
	tmpl := "<tr><td><a href=\"{{.Page}}\">{{.NumNodes}}</a></td><td>{{.TotalClients}}</td><td>{{.LostClients}}</td>" +
		"<td>{{printf \"%.2f\" .LostClientRatio}}</td><td>{{.TotalTxPackets}}</td><td>{{.TotalRxPackets}}</td>" +
		"<td>{{.TotalLostPackets}}</td><td>{{printf \"%.2f\" .PacketLossRate}}</td><td>{{printf \"%.2f\" .AvgThroughputKbps}}</td></tr>\n"
	out, err := template.New("Summary").Parse(tmpl)
	if err != nil {
		return "", err
	}
	w := new(bytes.Buffer)
	for idx, res := range results {
		data := struct {
			*flowstats.AggregateResult
			Page string
		}{res, simulationPage(idx, res)}

		if err := out.Execute(w, data); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

func writeSimulationPage(dir string, idx int, res *flowstats.AggregateResult, title string) error {
	page := simulationPage(idx, res)
	f, err := os.Create(filepath.Join(dir, page))
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := template.New(page).Parse(htmlTempl.SimulationTempl)
	if err != nil {
		return err
	}

	w, err := getFlowWriter(res.Flows)
	if err != nil {
		return err
	}

	return out.Execute(f, &htmlTempl.ReportingInfo{
		Title:  title,
		Source: res.Source,
		Writer: template.HTML(w),
	})
}

func getFlowWriter(flows []flowstats.FlowMetrics) (string, error) {
	tmpl := "<tr><td>{{.FlowID}}</td><td>{{.TxPackets}}</td><td>{{.RxPackets}}</td><td>{{.LostPackets}}</td>" +
		"<td>{{.TxBytes}}</td><td>{{.RxBytes}}</td><td>{{printf \"%.3f\" .DurationS}}</td>" +
		"<td>{{printf \"%.2f\" .ThroughputKbps}}</td><td>{{printf \"%.3f\" .AvgDelayMs}}</td></tr>\n"
	out, err := template.New("Flow").Parse(tmpl)
	if err != nil {
		return "", err
	}
	w := new(bytes.Buffer)
	for i := range flows {
		// ThroughputKbps has a pointer receiver
		if err := out.Execute(w, &flows[i]); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}
