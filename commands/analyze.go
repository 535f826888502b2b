package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/activecm/flowmon/parser"
	"github.com/activecm/flowmon/reporting"
	"github.com/activecm/flowmon/resources"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/urfave/cli"
)

const (
	analysisTitle = "AD-HOC NETWORK SIMULATION ANALYSIS"
	completeTitle = "ANALYSIS COMPLETE"
)

type (
	// analyzeOptions holds the configured outputs after flag overrides
	analyzeOptions struct {
		pattern   string
		sinkPort  int
		chartFile string
		csvFile   string
		htmlDir   string
		metrics   string
		chart     reporting.ChartOptions
		open      bool
		progress  io.Writer
	}
)

func init() {
	analyzeCommand := cli.Command{
		Name:  "analyze",
		Usage: "Analyze FlowMonitor results and write the summary chart and CSV export",
		Flags: []cli.Flag{
			patternFlag,
			cli.StringFlag{
				Name:  "chart",
				Usage: "write the summary chart to `FILE` (default from config)",
			},
			cli.StringFlag{
				Name:  "csv",
				Usage: "write the CSV export to `FILE` (default from config)",
			},
			cli.StringFlag{
				Name:  "html",
				Usage: "also write an HTML report into `DIR`",
			},
			cli.StringFlag{
				Name:  "metrics",
				Usage: "also write the results as Prometheus metrics to `FILE`",
			},
			sinkPortFlag,
			cli.BoolFlag{
				Name:  "open",
				Usage: "open the chart, or the HTML report when written, once the analysis completes",
			},
			configFlag,
		},
		Action: func(c *cli.Context) error {
			res, err := initResources(c)
			if err != nil {
				return err
			}

			port, err := sinkPort(c, res)
			if err != nil {
				return err
			}

			opts := analyzeOptions{
				pattern:   inputPattern(c, res),
				sinkPort:  port,
				chartFile: res.Config.S.Output.ChartFile,
				csvFile:   res.Config.S.Output.CSVFile,
				htmlDir:   res.Config.S.Output.HTMLDir,
				metrics:   res.Config.S.Output.MetricsFile,
				chart: reporting.ChartOptions{
					Title:  res.Config.S.Output.ChartTitle,
					Width:  res.Config.S.Output.ChartWidth,
					Height: res.Config.S.Output.ChartHeight,
					DPI:    res.Config.S.Output.ChartDPI,
				},
				open:     c.Bool("open"),
				progress: os.Stderr,
			}
			if c.String("chart") != "" {
				opts.chartFile = c.String("chart")
			}
			if c.String("csv") != "" {
				opts.csvFile = c.String("csv")
			}
			if c.String("html") != "" {
				opts.htmlDir = c.String("html")
			}
			if c.String("metrics") != "" {
				opts.metrics = c.String("metrics")
			}

			if err := analyze(res, opts, os.Stdout); err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}

	bootstrapCommands(analyzeCommand)
}

// analyze runs discovery, extraction and every renderer in order. Nothing
// is written when no inputs match.
func analyze(res *resources.Resources, opts analyzeOptions, w io.Writer) error {
	logger := res.Logger()

	importer := parser.NewFSImporter(res, opts.sinkPort)
	if opts.progress != nil {
		importer.SetProgressOutput(opts.progress)
	}

	paths, err := importer.CollectFiles(opts.pattern)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		printNoInputs(w, opts.pattern)
		return nil
	}

	results, err := importer.Run(paths)
	if err != nil {
		return err
	}

	printBanner(w, analysisTitle)
	fmt.Fprintln(w)
	for _, result := range results {
		printSummary(w, result)
	}

	if err := writeResultsCSVFile(opts.csvFile, results); err != nil {
		return fmt.Errorf("could not write %s: %w", opts.csvFile, err)
	}
	fmt.Fprintf(w, "[+] Exported results to %s\n", opts.csvFile)

	if err := reporting.SaveChart(opts.chartFile, results, opts.chart); err != nil {
		return fmt.Errorf("could not write %s: %w", opts.chartFile, err)
	}
	fmt.Fprintf(w, "[+] Saved charts to %s\n", opts.chartFile)

	openTarget := opts.chartFile
	if opts.htmlDir != "" {
		dir, err := reporting.WriteHTMLReport(opts.htmlDir, results, opts.chart, logger)
		if err != nil {
			return fmt.Errorf("could not write HTML report: %w", err)
		}
		fmt.Fprintf(w, "[+] Wrote HTML report to %s\n", dir)
		openTarget = filepath.Join(dir, "index.html")
	}

	if opts.metrics != "" {
		if err := reporting.WriteMetricsTextfile(opts.metrics, results); err != nil {
			return fmt.Errorf("could not write %s: %w", opts.metrics, err)
		}
		fmt.Fprintf(w, "[+] Wrote metrics to %s\n", opts.metrics)
	}

	logger.WithFields(log.Fields{
		"simulations": len(results),
		"csv":         opts.csvFile,
		"chart":       opts.chartFile,
	}).Info("Analysis complete")

	fmt.Fprintln(w)
	printBanner(w, completeTitle)

	if opts.open {
		if err := open.Run(openTarget); err != nil {
			logger.WithFields(log.Fields{
				"target": openTarget,
				"error":  err.Error(),
			}).Warn("Could not open results viewer")
		}
	}
	return nil
}

// printNoInputs tells the user how to produce FlowMonitor files
func printNoInputs(w io.Writer, pattern string) {
	fmt.Fprintf(w, "[!] No FlowMonitor files matched the pattern: %s\n", pattern)
	fmt.Fprintln(w, "\nPlease run the simulation to generate the XML files first:")
	fmt.Fprintln(w, "  ./ns3 run 'csma-ca --collectData=true'")
}
