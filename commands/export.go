package commands

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/activecm/flowmon/pkg/flowstats"
)

var resultsCSVHeader = []string{
	"Nodes", "Clients", "Lost Clients", "Lost Client Ratio (%)",
	"Total TX Packets", "Total RX Packets", "Total Lost Packets",
	"Packet Loss Rate (%)", "Avg Throughput (Kbps)",
}

// resultRow lays out one simulation in the column order of resultsCSVHeader
func resultRow(res *flowstats.AggregateResult) []string {
	return []string{
		n(res.NumNodes), i(res.TotalClients), i(res.LostClients), f(res.LostClientRatio),
		i(res.TotalTxPackets), i(res.TotalRxPackets), i(res.TotalLostPackets),
		f(res.PacketLossRate), f(res.AvgThroughputKbps()),
	}
}

// writeResultsCSV writes the header and one row per simulation to w
func writeResultsCSV(w io.Writer, results []*flowstats.AggregateResult) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(resultsCSVHeader); err != nil {
		return err
	}

	for _, res := range results {
		if err := csvWriter.Write(resultRow(res)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeResultsCSVFile writes the CSV export of results to path
func writeResultsCSVFile(path string, results []*flowstats.AggregateResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	err = writeResultsCSV(file, results)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
