package commands

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/activecm/flowmon/parser"
	"github.com/activecm/flowmon/parser/flowmon"
	"github.com/activecm/flowmon/pkg/flowstats"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var flowHeader = []string{
	"Flow", "Source", "Destination", "Protocol", "Src Port", "Dst Port",
	"TX Packets", "RX Packets", "Lost Packets", "Duration (s)",
	"Throughput (Kbps)", "Avg Delay (ms)",
}

func init() {
	command := cli.Command{
		Name:      "show-flows",
		Usage:     "Print the per flow metrics of a single FlowMonitor file",
		ArgsUsage: "<FlowMonitor file>",
		Flags: []cli.Flag{
			humanFlag,
			sinkPortFlag,
			configFlag,
		},
		Action: showFlows,
	}

	bootstrapCommands(command)
}

func showFlows(c *cli.Context) error {
	path := c.Args().Get(0)
	if path == "" {
		return cli.NewExitError("Specify a FlowMonitor file", -1)
	}

	res, err := initResources(c)
	if err != nil {
		return err
	}

	port, err := sinkPort(c, res)
	if err != nil {
		return err
	}

	importer := parser.NewFSImporter(res, port)
	doc, err := importer.LoadFile(path)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	result, err := flowstats.NewExtractor(port).Extract(path, doc)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	rows := flowRows(result, doc)
	if c.Bool("human-readable") {
		showFlowsReport(os.Stdout, rows)
		return nil
	}

	if err := showFlowsCsv(os.Stdout, rows); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	return nil
}

// flowRows joins the derived metrics of each flow with its classification.
// Flows without a classifier row keep empty address columns.
func flowRows(result *flowstats.AggregateResult, doc *flowmon.Document) [][]string {
	classified := make(map[string][]string)
	for _, flow := range doc.Classifiers() {
		if _, seen := classified[flow.FlowID]; seen {
			continue
		}
		classified[flow.FlowID] = []string{
			flow.SourceAddress, flow.DestinationAddress, i(flow.Protocol),
			portCell(flow.SourcePort), portCell(flow.DestinationPort),
		}
	}

	rows := make([][]string, 0, len(result.Flows))
	for idx := range result.Flows {
		flow := &result.Flows[idx]
		class, ok := classified[flow.FlowID]
		if !ok {
			class = []string{"", "", "", "", ""}
		}

		row := append([]string{flow.FlowID}, class...)
		row = append(row,
			i(flow.TxPackets), i(flow.RxPackets), i(flow.LostPackets),
			f(flow.DurationS), f(flow.ThroughputKbps()), f(flow.AvgDelayMs),
		)
		rows = append(rows, row)
	}
	return rows
}

// portCell renders absent ports as an empty cell
func portCell(p int) string {
	if p < 0 {
		return ""
	}
	return n(p)
}

func showFlowsReport(w io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(flowHeader)
	table.AppendBulk(rows)
	table.Render()
}

func showFlowsCsv(w io.Writer, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(flowHeader); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return err
	}
	return csvWriter.Error()
}
