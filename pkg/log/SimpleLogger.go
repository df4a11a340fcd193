// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	FormatJSONL = "jsonl"
	FormatText  = "text"
)

// SimpleLogger writes one line per message, either as a JSON object or as text.
// Every line includes the message as "msg" and the time as "ts".
type SimpleLogger struct {
	mutex  *sync.Mutex
	format string
	writer io.Writer
	now    func() time.Time
}

func (s *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m := map[string]interface{}{}
	for _, f := range fields {
		for k, v := range f {
			m[k] = v
		}
	}
	m["msg"] = msg
	m["ts"] = s.now().UTC().Format(time.RFC3339Nano)

	if s.format == FormatText {
		_, err := fmt.Fprintln(s.writer, formatText(m))
		return err
	}

	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error marshaling log message %q: %w", msg, err)
	}
	_, err = fmt.Fprintln(s.writer, string(b))
	return err
}

func formatText(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "msg" && k != "ts" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(m["ts"].(string))
	sb.WriteString(" ")
	sb.WriteString(m["msg"].(string))
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf(" %s=%v", k, m[k]))
	}
	return sb.String()
}

// NewSimpleLogger returns a logger that writes JSON lines to w.
func NewSimpleLogger(w io.Writer) *SimpleLogger {
	return NewSimpleLoggerWithFormat(w, FormatJSONL)
}

func NewSimpleLoggerWithFormat(w io.Writer, format string) *SimpleLogger {
	return &SimpleLogger{
		mutex:  &sync.Mutex{},
		format: format,
		writer: w,
		now:    time.Now,
	}
}
