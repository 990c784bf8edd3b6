package util

import "fmt"

// FormatFileSize renders a byte count in human-readable form.
func FormatFileSize(sizeBytes int64) string {
	switch {
	case sizeBytes >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(sizeBytes)/(1024*1024))
	case sizeBytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(sizeBytes)/1024)
	default:
		return fmt.Sprintf("%d B", sizeBytes)
	}
}

// FormatDuration renders a duration in seconds as "1h 2m 3s", dropping
// leading zero units.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		return "-"
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
