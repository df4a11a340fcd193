// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/smithy-go/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
}

func TestSimpleLoggerJSONL(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSimpleLogger(buf)
	logger.now = fixedNow

	require.NoError(t, logger.Log("Copying file", map[string]interface{}{
		"src": "/src/a.jpg",
	}, map[string]interface{}{
		"size": 10,
	}))

	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "Copying file", m["msg"])
	assert.Equal(t, "2024-07-01T12:00:00Z", m["ts"])
	assert.Equal(t, "/src/a.jpg", m["src"])
	assert.Equal(t, float64(10), m["size"])
}

func TestSimpleLoggerText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSimpleLoggerWithFormat(buf, FormatText)
	logger.now = fixedNow

	require.NoError(t, logger.Log("Skipping file", map[string]interface{}{
		"reason": "exists",
		"file":   "a.jpg",
	}))
	assert.Equal(t, "2024-07-01T12:00:00Z Skipping file file=a.jpg reason=exists\n", buf.String())
}

func TestClientLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSimpleLogger(buf)
	logger.now = fixedNow

	NewClientLogger(logger).Logf(logging.Debug, "Request\n%s", "PUT /a.jpg")

	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "Request", m["msg"])
	assert.Equal(t, "PUT /a.jpg", m["details"])
	assert.Equal(t, "DEBUG", m["classification"])
}
