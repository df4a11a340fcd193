// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	assert.Equal(t, Layout(time.RFC3339), ParseLayout("RFC3339"))
	assert.Equal(t, Layout("2006/01/02"), ParseLayout("2006/01/02"))
	assert.Contains(t, Names(), "Default")
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("Local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = ParseLocation("-8")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -8*60*60, offset)

	loc, err = ParseLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = ParseLocation("")
	assert.Error(t, err)

	_, err = ParseLocation("20")
	assert.Error(t, err)
}

func TestClockFormat(t *testing.T) {
	ts := time.Date(2024, 7, 1, 12, 30, 15, 0, time.UTC)

	c := Clock{Layout: ParseLayout("DateTime"), Location: time.UTC}
	assert.Equal(t, "2024-07-01 12:30:15", c.Format(ts))

	c = Clock{Location: time.FixedZone("UTC+2", 2*60*60)}
	assert.Equal(t, "Jul 01 14:30:15", c.Format(ts))
}
