// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"time"
)

// EqualTimestamp returns true if a and b are equal after truncating both to precision d.
// Filesystems such as FAT and exFAT only store modification times to 2 seconds,
// so comparisons against a removable device need a coarse precision.
func EqualTimestamp(a time.Time, b time.Time, d time.Duration) bool {
	return a.Truncate(d).Equal(b.Truncate(d))
}
