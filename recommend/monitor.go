package recommend

import (
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
)

// Monitor provides hooks to observe a recommendation.
// Implement this interface to trace routing and scoring decisions.
type Monitor interface {
	Start(query string, topN int)
	Routed(in intent.Intent)
	// AfterSemanticSearch receives the over-fetched window in raw score order.
	AfterSemanticSearch(window []int)
	// Boosted is called once per candidate that received a non-zero boost.
	Boosted(index int, boost float64)
	Finish(results []core.Result)
	Failed(err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)       {}
func (n *noopMonitor) Routed(_ intent.Intent)      {}
func (n *noopMonitor) AfterSemanticSearch(_ []int) {}
func (n *noopMonitor) Boosted(_ int, _ float64)    {}
func (n *noopMonitor) Finish(_ []core.Result)      {}
func (n *noopMonitor) Failed(_ error)              {}

// multiMonitor fans every hook out to several monitors in order.
type multiMonitor []Monitor

// Monitors combines monitors into one. Nil entries are skipped.
func Monitors(monitors ...Monitor) Monitor {
	var out multiMonitor
	for _, m := range monitors {
		if m != nil {
			out = append(out, m)
		}
	}
	switch len(out) {
	case 0:
		return &noopMonitor{}
	case 1:
		return out[0]
	}
	return out
}

func (m multiMonitor) Start(query string, topN int) {
	for _, mon := range m {
		mon.Start(query, topN)
	}
}

func (m multiMonitor) Routed(in intent.Intent) {
	for _, mon := range m {
		mon.Routed(in)
	}
}

func (m multiMonitor) AfterSemanticSearch(window []int) {
	for _, mon := range m {
		mon.AfterSemanticSearch(window)
	}
}

func (m multiMonitor) Boosted(index int, boost float64) {
	for _, mon := range m {
		mon.Boosted(index, boost)
	}
}

func (m multiMonitor) Finish(results []core.Result) {
	for _, mon := range m {
		mon.Finish(results)
	}
}

func (m multiMonitor) Failed(err error) {
	for _, mon := range m {
		mon.Failed(err)
	}
}
