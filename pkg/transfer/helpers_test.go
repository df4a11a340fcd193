// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"os"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// deniedFs rejects opening the named paths with a permission error.
type deniedFs struct {
	afero.Fs
	denied map[string]bool
}

func (d *deniedFs) Open(name string) (afero.File, error) {
	if d.denied[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Open(name)
}

func (d *deniedFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if d.denied[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.OpenFile(name, flag, perm)
}

type recordingSink struct {
	started  []Config
	results  []Result
	warnings []string
	finished int
	stats    *Stats
	state    State
	err      error
	onResult func(r Result)
}

func (s *recordingSink) OnStart(cfg Config) {
	s.started = append(s.started, cfg)
}

func (s *recordingSink) OnResult(r Result) {
	s.results = append(s.results, r)
	if s.onResult != nil {
		s.onResult(r)
	}
}

func (s *recordingSink) OnWarning(msg string, fields map[string]interface{}) {
	s.warnings = append(s.warnings, msg)
}

func (s *recordingSink) OnFinish(stats *Stats, state State, err error) {
	s.finished++
	s.stats = stats
	s.state = state
	s.err = err
}

func (s *recordingSink) outcomes() map[string]Outcome {
	outcomes := map[string]Outcome{}
	for _, r := range s.results {
		outcomes[r.Entry.RelativePath] = r.Outcome
	}
	return outcomes
}

// steppingClock returns a clock that advances one second on every call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func listFiles(f afero.Fs, root string) []string {
	files := []string{}
	_ = afero.Walk(f, root, func(name string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, name)
		}
		return nil
	})
	sort.Strings(files)
	return files
}

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Log(msg string, fields ...map[string]interface{}) error {
	r.messages = append(r.messages, msg)
	return nil
}
