// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

// Split splits the s3 path using "/".
// A leading "/" is returned as its own element.
func Split(p string) []string {
	parts := []string{}
	current := []byte{}
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			if len(current) > 0 {
				parts = append(parts, string(current))
				current = []byte{}
			} else if i == 0 {
				parts = append(parts, "/")
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
