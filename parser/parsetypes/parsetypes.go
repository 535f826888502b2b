package parsetypes

//FlowData is a row of a FlowMonitor document section
type FlowData interface {
	// Section is the path of the elements holding this kind of row
	Section() string
}

// Attribute types understood by the FlowMonitor parser. They are referenced
// by the flowtype struct tag, while the flowmon tag names the XML attribute.
const (
	// String is copied verbatim, absent attributes are empty
	String = "string"

	// Addr is an IPv4 address in dotted notation, kept as text
	Addr = "addr"

	// Count is an unsigned packet or byte counter. Absent or unparseable
	// values become 0.
	Count = "count"

	// Port is a transport port. Absent or unparseable values become -1 so
	// they never match a real port number.
	Port = "port"

	// SimTime is an ns-3 time value such as "+1.5e+09ns". It is kept as
	// text; absent values become "+0ns".
	SimTime = "time"
)
