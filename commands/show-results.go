package commands

import (
	"io"
	"os"

	"github.com/activecm/flowmon/parser"
	"github.com/activecm/flowmon/pkg/flowstats"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	command := cli.Command{
		Name:  "show-results",
		Usage: "Print the aggregate metrics of each simulation to standard out",
		Flags: []cli.Flag{
			humanFlag,
			jsonFlag,
			patternFlag,
			sinkPortFlag,
			configFlag,
		},
		Action: showResults,
	}

	bootstrapCommands(command)
}

func showResults(c *cli.Context) error {
	res, err := initResources(c)
	if err != nil {
		return err
	}

	port, err := sinkPort(c, res)
	if err != nil {
		return err
	}

	importer := parser.NewFSImporter(res, port)
	paths, err := importer.CollectFiles(inputPattern(c, res))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	if len(paths) == 0 {
		return cli.NewExitError("No FlowMonitor files matched "+inputPattern(c, res), -1)
	}

	results, err := importer.Run(paths)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	switch {
	case c.Bool("json"):
		err = showResultsJSON(os.Stdout, results)
	case c.Bool("human-readable"):
		err = showResultsReport(os.Stdout, results)
	default:
		err = writeResultsCSV(os.Stdout, results)
	}
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	return nil
}

func showResultsReport(w io.Writer, results []*flowstats.AggregateResult) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(resultsCSVHeader)

	for _, res := range results {
		table.Append(resultRow(res))
	}
	table.Render()
	return nil
}

func showResultsJSON(w io.Writer, results []*flowstats.AggregateResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
