package flowstats

import (
	"github.com/activecm/flowmon/parser/parsetypes"
	"github.com/activecm/flowmon/util"
)

// DefaultSinkPort is the server port the simulated clients send to. A
// classified flow towards this port is counted as a client flow.
const DefaultSinkPort = 9

const (
	nanosPerSecond      = 1e9
	nanosPerMillisecond = 1e6
)

//Document exposes the two record collections of a FlowMonitor file
type Document interface {
	FlowStats() []parsetypes.FlowRecord
	Classifiers() []parsetypes.ClassifiedFlow
}

// Extractor turns one FlowMonitor document into an AggregateResult. It
// holds no state between calls.
type Extractor struct {
	sinkPort int
}

//NewExtractor creates an Extractor which treats sinkPort as the server port
func NewExtractor(sinkPort int) *Extractor {
	return &Extractor{sinkPort: sinkPort}
}

//SinkPort returns the port client flows are recognized by
func (e *Extractor) SinkPort() int {
	return e.sinkPort
}

// Extract computes the aggregate metrics of doc. The node count is read
// from source; a malformed source name is the only failure.
func (e *Extractor) Extract(source string, doc Document) (*AggregateResult, error) {
	numNodes, err := ParseNodeCount(source)
	if err != nil {
		return nil, err
	}

	records := doc.FlowStats()
	res := &AggregateResult{
		Source:   source,
		NumNodes: numNodes,
		Flows:    make([]FlowMetrics, 0, len(records)),
	}

	// flow id -> rx packets, first occurrence wins
	rxByFlow := make(map[string]int64, len(records))

	var throughputSum float64
	for _, rec := range records {
		metrics, defaulted := flowMetrics(rec)
		res.DefaultedFields += rec.Defaulted + defaulted
		res.Flows = append(res.Flows, metrics)

		if _, seen := rxByFlow[rec.FlowID]; !seen {
			rxByFlow[rec.FlowID] = rec.RxPackets
		}

		res.TotalTxPackets += rec.TxPackets
		res.TotalRxPackets += rec.RxPackets
		res.TotalLostPackets += rec.LostPackets
		throughputSum += metrics.ThroughputBps
	}

	for _, flow := range doc.Classifiers() {
		if flow.DestinationPort != e.sinkPort {
			continue
		}
		res.TotalClients++
		// an unmatched flow id leaves the client counted but not lost
		if rx, ok := rxByFlow[flow.FlowID]; ok && rx == 0 {
			res.LostClients++
		}
	}

	res.PacketLossRate = util.Percent(res.TotalLostPackets, res.TotalTxPackets)
	res.LostClientRatio = util.Percent(res.LostClients, res.TotalClients)
	res.AvgThroughputBps = util.SafeDivide(throughputSum, float64(len(records)))
	return res, nil
}

// flowMetrics derives duration, throughput and delay of a single flow. The
// second return value counts timestamps which could not be parsed.
func flowMetrics(rec parsetypes.FlowRecord) (FlowMetrics, int) {
	defaulted := 0
	parse := func(s string) float64 {
		v, err := util.ParseSimTime(s)
		if err != nil {
			defaulted++
			return 0
		}
		return v
	}

	firstTx := parse(rec.TimeFirstTxPacket)
	lastRx := parse(rec.TimeLastRxPacket)
	delaySum := parse(rec.DelaySum)

	// unset timestamps are zero, so a non increasing pair means no duration
	var duration float64
	if lastRx > firstTx {
		duration = (lastRx - firstTx) / nanosPerSecond
	}

	var throughput float64
	if duration > 0 {
		throughput = float64(rec.RxBytes) * 8 / duration
	}

	var avgDelay float64
	if rec.RxPackets > 0 {
		avgDelay = delaySum / float64(rec.RxPackets) / nanosPerMillisecond
	}

	return FlowMetrics{
		FlowID:        rec.FlowID,
		TxPackets:     rec.TxPackets,
		RxPackets:     rec.RxPackets,
		LostPackets:   rec.LostPackets,
		TxBytes:       rec.TxBytes,
		RxBytes:       rec.RxBytes,
		ThroughputBps: throughput,
		AvgDelayMs:    avgDelay,
		DurationS:     duration,
	}, defaulted
}
