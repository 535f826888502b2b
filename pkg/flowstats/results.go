package flowstats

type (
	// FlowMetrics holds the counters and derived rates of one flow
	FlowMetrics struct {
		FlowID        string  `json:"flow_id"`
		TxPackets     int64   `json:"tx_packets"`
		RxPackets     int64   `json:"rx_packets"`
		LostPackets   int64   `json:"lost_packets"`
		TxBytes       int64   `json:"tx_bytes"`
		RxBytes       int64   `json:"rx_bytes"`
		ThroughputBps float64 `json:"throughput_bps"`
		AvgDelayMs    float64 `json:"avg_delay_ms"`
		DurationS     float64 `json:"duration_s"`
	}

	// AggregateResult summarizes one simulation run
	AggregateResult struct {
		Source           string        `json:"source"`
		NumNodes         int           `json:"num_nodes"`
		TotalClients     int64         `json:"total_clients"`
		LostClients      int64         `json:"lost_clients"`
		LostClientRatio  float64       `json:"lost_client_ratio"`
		TotalTxPackets   int64         `json:"total_tx_packets"`
		TotalRxPackets   int64         `json:"total_rx_packets"`
		TotalLostPackets int64         `json:"total_lost_packets"`
		PacketLossRate   float64       `json:"packet_loss_rate"`
		AvgThroughputBps float64       `json:"avg_throughput_bps"`
		Flows            []FlowMetrics `json:"flows"`

		// DefaultedFields counts attributes replaced by their defaults
		DefaultedFields int `json:"-"`
	}
)

//AvgThroughputKbps is the mean flow throughput in kilobits per second
func (r *AggregateResult) AvgThroughputKbps() float64 {
	return r.AvgThroughputBps / 1000
}

//ThroughputKbps is the flow throughput in kilobits per second
func (f *FlowMetrics) ThroughputKbps() float64 {
	return f.ThroughputBps / 1000
}
