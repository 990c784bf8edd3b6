package util

import (
	"strconv"
	"strings"
)

var sizeSuffixes = []struct {
	suffix string
	factor float64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable size string ("50MB", "1.5GB", "512KB",
// or a bare byte count) into bytes. Unparseable input yields defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	factor := 1.0
	for _, ss := range sizeSuffixes {
		if strings.HasSuffix(s, ss.suffix) {
			factor = ss.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, ss.suffix))
			break
		}
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || val < 0 {
		return defaultBytes
	}
	return int64(val * factor)
}

// MaskSecret hides sensitive parts of a string for safe display in logs.
// If the string is shorter than visiblePrefix, it is fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
