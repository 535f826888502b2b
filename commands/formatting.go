package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/activecm/flowmon/pkg/flowstats"
)

const bannerWidth = 80

// helper functions for formatting floats and integers
func f(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
func i(i int64) string {
	return strconv.FormatInt(i, 10)
}
func n(n int) string {
	return strconv.Itoa(n)
}

// printBanner frames title between two rules of '='
func printBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// printSummary writes the fixed format console summary of one simulation
func printSummary(w io.Writer, res *flowstats.AggregateResult) {
	fmt.Fprintf(w, "Analyzing: %s\n", res.Source)
	fmt.Fprintf(w, "  Nodes: %d\n", res.NumNodes)
	fmt.Fprintf(w, "  Clients: %d\n", res.TotalClients)
	fmt.Fprintf(w, "  Lost clients: %d (%.2f%%)\n", res.LostClients, res.LostClientRatio)
	fmt.Fprintf(w, "  Total packets sent: %d\n", res.TotalTxPackets)
	fmt.Fprintf(w, "  Total packets received: %d\n", res.TotalRxPackets)
	fmt.Fprintf(w, "  Packet loss rate: %.2f%%\n", res.PacketLossRate)
	fmt.Fprintf(w, "  Average throughput: %.2f Kbps\n", res.AvgThroughputKbps())
	fmt.Fprintln(w)
}
