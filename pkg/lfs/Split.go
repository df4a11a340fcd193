// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"os"
)

// Split splits the path using the path separator for the local operating system.
// A leading separator is returned as its own element so absolute and relative paths never compare equal.
func Split(p string) []string {
	parts := []string{}
	current := []byte{}
	for i := 0; i < len(p); i++ {
		if os.IsPathSeparator(p[i]) {
			if len(current) > 0 {
				parts = append(parts, string(current))
				current = []byte{}
			} else if i == 0 {
				parts = append(parts, string(os.PathSeparator))
			}
			continue
		}
		current = append(current, p[i])
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
