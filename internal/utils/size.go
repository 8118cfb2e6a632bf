package utils

import "fmt"

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
)

// FormatBytes renders n as "512 B", "1.50 KB" or "2.00 MB".
func FormatBytes(n int64) string {
	switch {
	case n < kilobyte:
		return fmt.Sprintf("%d B", n)
	case n < megabyte:
		return fmt.Sprintf("%.2f KB", float64(n)/kilobyte)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/megabyte)
	}
}
