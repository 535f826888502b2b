package reporting

import (
	"errors"

	"github.com/activecm/flowmon/pkg/flowstats"
	"github.com/prometheus/client_golang/prometheus"
)

// simulationGauges are labelled by the node count and source file of each
// simulation, node counts alone repeat across directories
type simulationGauges struct {
	clients         *prometheus.GaugeVec
	lostClients     *prometheus.GaugeVec
	lostClientRatio *prometheus.GaugeVec
	txPackets       *prometheus.GaugeVec
	rxPackets       *prometheus.GaugeVec
	lostPackets     *prometheus.GaugeVec
	packetLossRate  *prometheus.GaugeVec
	throughput      *prometheus.GaugeVec
}

func newSimulationGauges(reg prometheus.Registerer) (*simulationGauges, error) {
	labels := []string{"nodes", "source"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "flowmon",
			Subsystem: "simulation",
			Name:      name,
			Help:      help,
		}, labels)
	}

	g := &simulationGauges{
		clients:         gauge("clients", "Number of client flows towards the sink port"),
		lostClients:     gauge("lost_clients", "Number of client flows which received no packets"),
		lostClientRatio: gauge("lost_client_ratio_percent", "Lost clients as a percentage of all clients"),
		txPackets:       gauge("tx_packets", "Total packets transmitted"),
		rxPackets:       gauge("rx_packets", "Total packets received"),
		lostPackets:     gauge("lost_packets", "Total packets lost"),
		packetLossRate:  gauge("packet_loss_rate_percent", "Lost packets as a percentage of transmitted packets"),
		throughput:      gauge("avg_throughput_bps", "Mean flow throughput in bits per second"),
	}

	for _, c := range []prometheus.Collector{
		g.clients, g.lostClients, g.lostClientRatio, g.txPackets,
		g.rxPackets, g.lostPackets, g.packetLossRate, g.throughput,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *simulationGauges) set(res *flowstats.AggregateResult) {
	labels := prometheus.Labels{"nodes": n(res.NumNodes), "source": res.Source}
	g.clients.With(labels).Set(float64(res.TotalClients))
	g.lostClients.With(labels).Set(float64(res.LostClients))
	g.lostClientRatio.With(labels).Set(res.LostClientRatio)
	g.txPackets.With(labels).Set(float64(res.TotalTxPackets))
	g.rxPackets.With(labels).Set(float64(res.TotalRxPackets))
	g.lostPackets.With(labels).Set(float64(res.TotalLostPackets))
	g.packetLossRate.With(labels).Set(res.PacketLossRate)
	g.throughput.With(labels).Set(res.AvgThroughputBps)
}

// NewMetricsRegistry returns a registry holding one gauge set per
// simulation in results
func NewMetricsRegistry(results []*flowstats.AggregateResult) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	g, err := newSimulationGauges(reg)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		g.set(res)
	}
	return reg, nil
}

// WriteMetricsTextfile writes results in the Prometheus text exposition
// format, suitable for the node exporter textfile collector
func WriteMetricsTextfile(path string, results []*flowstats.AggregateResult) error {
	if len(results) == 0 {
		return errors.New("no results to export")
	}
	reg, err := NewMetricsRegistry(results)
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
