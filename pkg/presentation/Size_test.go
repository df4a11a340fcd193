// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanReadableFileSize(t *testing.T) {
	assert.Equal(t, "   0B", HumanReadableFileSize(0))
	assert.Equal(t, "1024B", HumanReadableFileSize(1024))
	assert.Equal(t, " 1.5K", HumanReadableFileSize(1536))
	assert.Equal(t, "  20K", HumanReadableFileSize(20*1024))
	assert.Equal(t, "   5M", HumanReadableFileSize(5*MiB))
	assert.Equal(t, "   2G", HumanReadableFileSize(2*1024*MiB))
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "0.00 MB", Megabytes(0))
	assert.Equal(t, "1.50 MB", Megabytes(MiB+MiB/2))
}
