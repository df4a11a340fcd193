// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"errors"
	"strconv"
	"time"
)

// ParseLocation returns the location named by location.
// Accepts "Local", "UTC", an IANA name such as "America/Los_Angeles", or a fixed offset in hours such as "-8".
func ParseLocation(location string) (*time.Location, error) {
	if location == "" {
		return nil, errors.New("cannot parse location from empty string")
	}
	if location == "Local" {
		return time.Local, nil
	}
	hours, err := strconv.Atoi(location)
	if err == nil {
		if hours < -12 || hours > 14 {
			return nil, errors.New("fixed offset must be between -12 and 14 hours")
		}
		return time.FixedZone("UTC"+location, hours*60*60), nil
	}
	return time.LoadLocation(location)
}
