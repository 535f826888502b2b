package util

import (
	"os"
	"strconv"
	"strings"
)

//TimeFormat stores a correctly formatted timestamp
const TimeFormat string = "2006-01-02-T15:04:05-0700"

// Exists returns true if file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	return true
}

// IsDir returns true if argument is a directory
func IsDir(path string) bool {
	file, err := os.Stat(path)
	if err != nil {
		return false
	}
	return file.IsDir()
}

//SafeDivide returns num / den, or 0 when den is 0
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

//Percent returns part / whole * 100, or 0 when whole is 0
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

//ZeroSimTime is the textual form used for absent timestamps
const ZeroSimTime = "+0ns"

// ParseSimTime converts a simulator time value such as "+1.5e+09ns" into
// nanoseconds. The unit suffix and a leading plus sign are removed before
// the number is parsed, so scientific notation is accepted.
func ParseSimTime(s string) (float64, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "ns")
	v = strings.TrimPrefix(v, "+")
	return strconv.ParseFloat(v, 64)
}
