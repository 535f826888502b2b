package flowstats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

//ErrNodeCount is matched by every NodeCountError through errors.Is
var ErrNodeCount = errors.New("invalid node count segment")

// NodeCountError is returned when a source name such as "final-12-nodes.xml"
// does not carry an integer in its second dash separated segment
type NodeCountError struct {
	Source string
	Err    error
}

func (e *NodeCountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Source, ErrNodeCount, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, ErrNodeCount)
}

//Unwrap exposes the strconv failure, if any
func (e *NodeCountError) Unwrap() error {
	return e.Err
}

//Is reports ErrNodeCount as the sentinel for this error
func (e *NodeCountError) Is(target error) bool {
	return target == ErrNodeCount
}

// ParseNodeCount extracts the node count out of the base name of source.
// The name is split on "-" and the second segment must be an integer.
func ParseNodeCount(source string) (int, error) {
	segments := strings.Split(filepath.Base(source), "-")
	if len(segments) < 2 {
		return 0, &NodeCountError{Source: source}
	}
	n, err := strconv.Atoi(segments[1])
	if err != nil {
		return 0, &NodeCountError{Source: source, Err: err}
	}
	return n, nil
}
