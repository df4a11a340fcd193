// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

// Sink receives progress events from a run.
// Events are advisory and a sink cannot change the outcome of a run.
type Sink interface {
	OnStart(cfg Config)
	OnResult(r Result)
	OnWarning(msg string, fields map[string]interface{})
	// OnFinish is called once with the final statistics, the final state and the error returned by the run.
	OnFinish(stats *Stats, state State, err error)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) OnStart(cfg Config) {}

func (NopSink) OnResult(r Result) {}

func (NopSink) OnWarning(msg string, fields map[string]interface{}) {}

func (NopSink) OnFinish(stats *Stats, state State, err error) {}

// MultiSink forwards every event to each sink in order.
type MultiSink []Sink

func (m MultiSink) OnStart(cfg Config) {
	for _, s := range m {
		s.OnStart(cfg)
	}
}

func (m MultiSink) OnResult(r Result) {
	for _, s := range m {
		s.OnResult(r)
	}
}

func (m MultiSink) OnWarning(msg string, fields map[string]interface{}) {
	for _, s := range m {
		s.OnWarning(msg, fields)
	}
}

func (m MultiSink) OnFinish(stats *Stats, state State, err error) {
	for _, s := range m {
		s.OnFinish(stats, state, err)
	}
}
