// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"path"
)

// Dir returns all but the last element of the s3 path.
func Dir(p string) string {
	if len(p) == 0 {
		return "."
	}
	parts := Split(p)
	if len(parts) == 1 {
		if parts[0] == "/" {
			return "/"
		}
		return "."
	}
	return path.Join(parts[0 : len(parts)-1]...)
}
