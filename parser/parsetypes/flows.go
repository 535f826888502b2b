package parsetypes

//FlowStatsSection is where the FlowMonitor stores per flow counters
const FlowStatsSection = "//FlowStats/Flow"

//ClassifierSection is where the FlowMonitor stores the IPv4 five tuples
const ClassifierSection = "//Ipv4FlowClassifier/Flow"

type (
	// FlowRecord holds the transmission and reception counters of one flow
	FlowRecord struct {
		FlowID            string `flowmon:"flowId" flowtype:"string"`
		TxPackets         int64  `flowmon:"txPackets" flowtype:"count"`
		RxPackets         int64  `flowmon:"rxPackets" flowtype:"count"`
		LostPackets       int64  `flowmon:"lostPackets" flowtype:"count"`
		TxBytes           int64  `flowmon:"txBytes" flowtype:"count"`
		RxBytes           int64  `flowmon:"rxBytes" flowtype:"count"`
		TimeFirstTxPacket string `flowmon:"timeFirstTxPacket" flowtype:"time"`
		TimeLastRxPacket  string `flowmon:"timeLastRxPacket" flowtype:"time"`
		DelaySum          string `flowmon:"delaySum" flowtype:"time"`

		// Defaulted counts the attributes which were absent or unparseable
		Defaulted int
	}

	// ClassifiedFlow holds the endpoints of one flow
	ClassifiedFlow struct {
		FlowID             string `flowmon:"flowId" flowtype:"string"`
		SourceAddress      string `flowmon:"sourceAddress" flowtype:"addr"`
		DestinationAddress string `flowmon:"destinationAddress" flowtype:"addr"`
		Protocol           int64  `flowmon:"protocol" flowtype:"count"`
		SourcePort         int    `flowmon:"sourcePort" flowtype:"port"`
		DestinationPort    int    `flowmon:"destinationPort" flowtype:"port"`

		Defaulted int
	}
)

//Section returns the path of the FlowStats rows
func (in *FlowRecord) Section() string {
	return FlowStatsSection
}

//Section returns the path of the classifier rows
func (in *ClassifiedFlow) Section() string {
	return ClassifierSection
}
