package flowmon

import (
	"fmt"
	"io"
	"io/ioutil"
	"reflect"
	"strconv"
	"strings"

	"github.com/activecm/flowmon/parser/parsetypes"
	"github.com/activecm/flowmon/util"
	"github.com/antchfx/xmlquery"
	log "github.com/sirupsen/logrus"
)

// Document is a parsed FlowMonitor XML file. Both record collections are
// looked up by path, so sections which are missing simply yield no rows.
type Document struct {
	root *xmlquery.Node
	log  *log.Logger
}

// fieldInfo ties an XML attribute to the struct field it populates
type fieldInfo struct {
	attrName string
	attrType string
	fieldIdx int
}

var (
	flowRecordFields     = mustMapFields(reflect.TypeOf(parsetypes.FlowRecord{}))
	classifiedFlowFields = mustMapFields(reflect.TypeOf(parsetypes.ClassifiedFlow{}))
)

// Load parses a FlowMonitor document. A nil logger discards parse warnings.
func Load(r io.Reader, logger *log.Logger) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse flow monitor xml: %w", err)
	}
	if logger == nil {
		logger = &log.Logger{
			Out:       ioutil.Discard,
			Formatter: new(log.TextFormatter),
			Hooks:     make(log.LevelHooks),
			Level:     log.ErrorLevel,
		}
	}
	return &Document{root: root, log: logger}, nil
}

// FlowStats returns the FlowStats/Flow rows in document order
func (d *Document) FlowStats() []parsetypes.FlowRecord {
	nodes := d.rows(&parsetypes.FlowRecord{})
	records := make([]parsetypes.FlowRecord, 0, len(nodes))
	for _, node := range nodes {
		var rec parsetypes.FlowRecord
		rec.Defaulted = d.populate(node, flowRecordFields, reflect.ValueOf(&rec).Elem())
		records = append(records, rec)
	}
	return records
}

// Classifiers returns the Ipv4FlowClassifier/Flow rows in document order
func (d *Document) Classifiers() []parsetypes.ClassifiedFlow {
	nodes := d.rows(&parsetypes.ClassifiedFlow{})
	flows := make([]parsetypes.ClassifiedFlow, 0, len(nodes))
	for _, node := range nodes {
		var flow parsetypes.ClassifiedFlow
		flow.Defaulted = d.populate(node, classifiedFlowFields, reflect.ValueOf(&flow).Elem())
		flows = append(flows, flow)
	}
	return flows
}

// rows finds the elements holding rows of the given kind
func (d *Document) rows(kind parsetypes.FlowData) []*xmlquery.Node {
	return xmlquery.Find(d.root, kind.Section())
}

// populate fills target from the node's attributes and returns how many
// typed attributes fell back to their default
func (d *Document) populate(node *xmlquery.Node, fields []fieldInfo, target reflect.Value) int {
	defaulted := 0
	for _, field := range fields {
		text, ok := attr(node, field.attrName)
		if !parseAttr(text, ok, field.attrType, target.Field(field.fieldIdx)) {
			defaulted++
			if ok {
				d.log.WithFields(log.Fields{
					"attribute": field.attrName,
					"value":     text,
				}).Debug("Unparseable flow monitor attribute replaced with its default")
			}
		}
	}
	return defaulted
}

// attr finds an attribute by local name and reports whether it was present
func attr(node *xmlquery.Node, name string) (string, bool) {
	for _, a := range node.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// parseAttr stores the attribute text in targetField according to attrType.
// It returns false when the default value was used instead.
func parseAttr(text string, present bool, attrType string, targetField reflect.Value) bool {
	switch attrType {
	case parsetypes.String:
		fallthrough
	case parsetypes.Addr:
		targetField.SetString(text)
		return true
	case parsetypes.Count:
		if present {
			if n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
				targetField.SetInt(n)
				return true
			}
		}
		targetField.SetInt(0)
	case parsetypes.Port:
		if present {
			if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
				targetField.SetInt(int64(n))
				return true
			}
		}
		targetField.SetInt(-1)
	case parsetypes.SimTime:
		if present && strings.TrimSpace(text) != "" {
			targetField.SetString(text)
			return true
		}
		targetField.SetString(util.ZeroSimTime)
	}
	return false
}

// mapFields walks the flowmon/flowtype struct tags of a parse type
func mapFields(structType reflect.Type) ([]fieldInfo, error) {
	var fields []fieldInfo
	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		attrName := structField.Tag.Get("flowmon")
		attrType := structField.Tag.Get("flowtype")

		//If this field is not associated with an attribute, skip it
		if len(attrName) == 0 && len(attrType) == 0 {
			continue
		}

		if len(attrName) == 0 || len(attrType) == 0 {
			return nil, fmt.Errorf("incomplete flowmon tag on %s.%s", structType.Name(), structField.Name)
		}

		fields = append(fields, fieldInfo{
			attrName: attrName,
			attrType: attrType,
			fieldIdx: i,
		})
	}
	return fields, nil
}

func mustMapFields(structType reflect.Type) []fieldInfo {
	fields, err := mapFields(structType)
	if err != nil {
		panic(err)
	}
	return fields
}
