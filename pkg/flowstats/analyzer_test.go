package flowstats

import (
	"testing"

	"github.com/activecm/flowmon/parser/parsetypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDocument struct {
	records     []parsetypes.FlowRecord
	classifiers []parsetypes.ClassifiedFlow
}

func (d staticDocument) FlowStats() []parsetypes.FlowRecord {
	return d.records
}

func (d staticDocument) Classifiers() []parsetypes.ClassifiedFlow {
	return d.classifiers
}

func client(flowID string) parsetypes.ClassifiedFlow {
	return parsetypes.ClassifiedFlow{
		FlowID:             flowID,
		SourceAddress:      "10.1.1.2",
		DestinationAddress: "10.1.1.1",
		SourcePort:         49153,
		DestinationPort:    DefaultSinkPort,
		Protocol:           17,
	}
}

func record(flowID string, tx, rx, lost, rxBytes int64, firstTx, lastRx, delaySum string) parsetypes.FlowRecord {
	return parsetypes.FlowRecord{
		FlowID:            flowID,
		TxPackets:         tx,
		RxPackets:         rx,
		LostPackets:       lost,
		TxBytes:           tx * 100,
		RxBytes:           rxBytes,
		TimeFirstTxPacket: firstTx,
		TimeLastRxPacket:  lastRx,
		DelaySum:          delaySum,
	}
}

func TestExtractSingleFlow(t *testing.T) {
	doc := staticDocument{
		records:     []parsetypes.FlowRecord{record("1", 100, 90, 10, 1000, "+0ns", "+1000000000ns", "+5000000ns")},
		classifiers: []parsetypes.ClassifiedFlow{client("1")},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)

	assert.Equal(t, 2, res.NumNodes)
	assert.Equal(t, "final-2-nodes.xml", res.Source)
	require.Len(t, res.Flows, 1)

	flow := res.Flows[0]
	assert.Equal(t, 1.0, flow.DurationS)
	assert.Equal(t, 8000.0, flow.ThroughputBps)
	assert.Equal(t, 8.0, flow.ThroughputKbps())
	assert.InDelta(t, 5000000.0/90/1e6, flow.AvgDelayMs, 1e-12)

	assert.Equal(t, int64(100), res.TotalTxPackets)
	assert.Equal(t, int64(90), res.TotalRxPackets)
	assert.Equal(t, int64(10), res.TotalLostPackets)
	assert.Equal(t, 10.0, res.PacketLossRate)
	assert.Equal(t, int64(1), res.TotalClients)
	assert.Equal(t, int64(0), res.LostClients)
	assert.Equal(t, 0.0, res.LostClientRatio)
	assert.Equal(t, 8000.0, res.AvgThroughputBps)
	assert.Equal(t, 8.0, res.AvgThroughputKbps())
}

func TestExtractUnmatchedClient(t *testing.T) {
	doc := staticDocument{
		records:     []parsetypes.FlowRecord{record("1", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns")},
		classifiers: []parsetypes.ClassifiedFlow{client("1"), client("99")},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-3-nodes.xml", doc)
	require.Nil(t, err)

	assert.Equal(t, int64(2), res.TotalClients, "unmatched client flows still count as clients")
	assert.Equal(t, int64(1), res.LostClients, "only the matched flow with no reception is lost")
	assert.Equal(t, 50.0, res.LostClientRatio)
}

func TestExtractLostClientRequiresZeroRx(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			record("1", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns"),
			record("2", 10, 1, 9, 512, "+1e9ns", "+2e9ns", "+1e6ns"),
			record("3", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns"),
		},
		classifiers: []parsetypes.ClassifiedFlow{client("1"), client("2"), client("3")},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-4-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, int64(3), res.TotalClients)
	assert.Equal(t, int64(2), res.LostClients)
	assert.InDelta(t, 200.0/3, res.LostClientRatio, 1e-12)
}

func TestExtractIgnoresNonSinkPorts(t *testing.T) {
	reply := client("2")
	reply.DestinationPort = 49153
	absent := client("3")
	absent.DestinationPort = -1

	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			record("1", 10, 10, 0, 100, "+0ns", "+1e9ns", "+0ns"),
			record("2", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns"),
			record("3", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns"),
		},
		classifiers: []parsetypes.ClassifiedFlow{client("1"), reply, absent},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, int64(1), res.TotalClients)
	assert.Equal(t, int64(0), res.LostClients)
}

func TestExtractCustomSinkPort(t *testing.T) {
	flow := client("1")
	flow.DestinationPort = 5000
	doc := staticDocument{
		records:     []parsetypes.FlowRecord{record("1", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns")},
		classifiers: []parsetypes.ClassifiedFlow{flow},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, int64(0), res.TotalClients)

	ex := NewExtractor(5000)
	assert.Equal(t, 5000, ex.SinkPort())
	res, err = ex.Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, int64(1), res.TotalClients)
	assert.Equal(t, int64(1), res.LostClients)
	assert.Equal(t, 100.0, res.LostClientRatio)
}

func TestExtractFirstRecordWinsOnDuplicateIDs(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			record("1", 10, 5, 5, 100, "+0ns", "+1e9ns", "+0ns"),
			record("1", 10, 0, 10, 0, "+0ns", "+0ns", "+0ns"),
		},
		classifiers: []parsetypes.ClassifiedFlow{client("1")},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, int64(0), res.LostClients)
	assert.Len(t, res.Flows, 2, "every record still contributes a flow")
}

func TestExtractZeroReceptionFlow(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			// rx bytes without rx packets still yields no delay
			record("1", 10, 0, 10, 4000, "+0ns", "+2e9ns", "+9e9ns"),
		},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	require.Len(t, res.Flows, 1)
	assert.Equal(t, 0.0, res.Flows[0].AvgDelayMs)
	assert.Equal(t, 2.0, res.Flows[0].DurationS)
	// throughput follows the received bytes, not the received packets
	assert.Equal(t, 16000.0, res.Flows[0].ThroughputBps)
	assert.Equal(t, 16000.0, res.AvgThroughputBps)
}

func TestExtractNonIncreasingTimestamps(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			record("1", 10, 10, 0, 1000, "+5e9ns", "+5e9ns", "+1e6ns"),
			record("2", 10, 10, 0, 1000, "+6e9ns", "+1e9ns", "+1e6ns"),
		},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	for _, flow := range res.Flows {
		assert.Equal(t, 0.0, flow.DurationS, flow.FlowID)
		assert.Equal(t, 0.0, flow.ThroughputBps, flow.FlowID)
		assert.Equal(t, 0.1, flow.AvgDelayMs, flow.FlowID)
	}
	assert.Equal(t, 0.0, res.AvgThroughputBps)
}

func TestExtractEmptyDocument(t *testing.T) {
	res, err := NewExtractor(DefaultSinkPort).Extract("final-8-nodes.xml", staticDocument{})
	require.Nil(t, err)

	assert.Equal(t, 8, res.NumNodes)
	assert.Empty(t, res.Flows)
	assert.Equal(t, 0.0, res.PacketLossRate)
	assert.Equal(t, 0.0, res.LostClientRatio)
	assert.Equal(t, 0.0, res.AvgThroughputBps)
}

func TestExtractUnparseableTimestamps(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{record("1", 10, 10, 0, 1000, "soon", "+1e9ns", "+bad")},
	}

	res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, 2, res.DefaultedFields)
	assert.Equal(t, 1.0, res.Flows[0].DurationS, "a bad first tx timestamp is treated as zero")
	assert.Equal(t, 0.0, res.Flows[0].AvgDelayMs)
}

func TestExtractPacketLossBounds(t *testing.T) {
	tests := []struct {
		tx, lost int64
		out      float64
		msg      string
	}{
		{0, 0, 0, "no transmissions means no loss"},
		{0, 5, 0, "lost packets without transmissions are guarded"},
		{100, 0, 0, "nothing lost"},
		{100, 100, 100, "everything lost"},
		{8, 2, 25, "quarter lost"},
	}

	for _, test := range tests {
		doc := staticDocument{
			records: []parsetypes.FlowRecord{record("1", test.tx, test.tx-test.lost, test.lost, 0, "+0ns", "+0ns", "+0ns")},
		}
		res, err := NewExtractor(DefaultSinkPort).Extract("final-2-nodes.xml", doc)
		require.Nil(t, err, test.msg)
		assert.Equal(t, test.out, res.PacketLossRate, test.msg)
		if res.TotalTxPackets > 0 {
			assert.True(t, res.PacketLossRate >= 0 && res.PacketLossRate <= 100, test.msg)
		}
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	doc := staticDocument{
		records: []parsetypes.FlowRecord{
			record("1", 100, 90, 10, 1000, "+0ns", "+1000000000ns", "+5000000ns"),
			record("2", 50, 0, 50, 0, "+1.2e8ns", "+0ns", "+0ns"),
		},
		classifiers: []parsetypes.ClassifiedFlow{client("1"), client("2")},
	}

	ex := NewExtractor(DefaultSinkPort)
	first, err := ex.Extract("final-5-nodes.xml", doc)
	require.Nil(t, err)
	second, err := ex.Extract("final-5-nodes.xml", doc)
	require.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestExtractMalformedSource(t *testing.T) {
	res, err := NewExtractor(DefaultSinkPort).Extract("final-many-nodes.xml", staticDocument{})
	assert.Nil(t, res)
	require.NotNil(t, err)

	var nodeErr *NodeCountError
	assert.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "final-many-nodes.xml", nodeErr.Source)
}
