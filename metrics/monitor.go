package metrics

import (
	"time"

	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
	"github.com/poiesic/cinematch/recommend"
)

// RequestMonitor records one recommendation. It holds per-call state, so
// create one per request with Metrics.Monitor rather than installing it on
// the engine.
type RequestMonitor struct {
	metrics *Metrics
	now     func() time.Time
	started time.Time
	kind    string
	boosted int
}

var _ recommend.Monitor = (*RequestMonitor)(nil)

// Monitor returns a fresh per-request monitor.
func (m *Metrics) Monitor() *RequestMonitor {
	return &RequestMonitor{metrics: m, now: time.Now, kind: intent.General.String()}
}

func (r *RequestMonitor) Start(_ string, _ int) {
	r.started = r.now()
}

func (r *RequestMonitor) Routed(in intent.Intent) {
	r.kind = in.Kind.String()
}

func (r *RequestMonitor) AfterSemanticSearch(_ []int) {}

func (r *RequestMonitor) Boosted(_ int, _ float64) {
	r.boosted++
}

func (r *RequestMonitor) Finish(results []core.Result) {
	r.observe(OutcomeOK)
	r.metrics.resultsReturned.Observe(float64(len(results)))
	if r.boosted > 0 {
		r.metrics.boostedCandidates.WithLabelValues(r.kind).Add(float64(r.boosted))
	}
}

func (r *RequestMonitor) Failed(_ error) {
	r.observe(OutcomeError)
}

func (r *RequestMonitor) observe(outcome string) {
	r.metrics.requestsTotal.WithLabelValues(r.kind, outcome).Inc()
	r.metrics.requestDuration.WithLabelValues(r.kind).Observe(r.now().Sub(r.started).Seconds())
}
