// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package presentation

import (
	"fmt"
	"math"
)

const (
	MiB = 1024 * 1024
)

// HumanReadableFileSize formats a size in bytes using binary units, padded to a width of 5.
func HumanReadableFileSize(size int64) string {
	str := ""
	if size <= int64(math.Pow(2, 10)) {
		str = fmt.Sprintf("%dB", size)
	} else if size <= int64(math.Pow(2, 20)) {
		f := float64(size) / math.Pow(2, 10)
		if f > 10 {
			str = fmt.Sprintf("%.0fK", f)
		} else {
			str = fmt.Sprintf("%.1fK", f)
		}
	} else if size <= int64(math.Pow(2, 30)) {
		str = fmt.Sprintf("%.0fM", float64(size)/math.Pow(2, 20))
	} else {
		str = fmt.Sprintf("%.0fG", float64(size)/math.Pow(2, 30))
	}
	return fmt.Sprintf("%5s", str)
}

// Megabytes formats a size in bytes as mebibytes with two decimals, e.g., "1.50 MB".
func Megabytes(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/MiB)
}

func formatSize(size int64, humanReadable bool) string {
	if humanReadable {
		return HumanReadableFileSize(size)
	}
	return Megabytes(size)
}
