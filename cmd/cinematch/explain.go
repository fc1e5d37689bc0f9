package main

import (
	"fmt"
	"io"

	"github.com/poiesic/cinematch/catalogue"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
)

// explainMonitor prints the engine's decisions for one query.
type explainMonitor struct {
	w     io.Writer
	index *catalogue.Index
}

func newExplainMonitor(w io.Writer, index *catalogue.Index) *explainMonitor {
	return &explainMonitor{w: w, index: index}
}

func (e *explainMonitor) Start(query string, topN int) {
	fmt.Fprintf(e.w, "query: %q (top %d)\n", query, topN)
}

func (e *explainMonitor) Routed(in intent.Intent) {
	fmt.Fprintf(e.w, "intent: %s\n", in.String())
}

func (e *explainMonitor) AfterSemanticSearch(window []int) {
	fmt.Fprintf(e.w, "semantic window: %d candidates\n", len(window))
}

func (e *explainMonitor) Boosted(index int, boost float64) {
	fmt.Fprintf(e.w, "  boost %+.3f  %s\n", boost, e.index.Entry(index).Title)
}

func (e *explainMonitor) Finish(results []core.Result) {
	fmt.Fprintf(e.w, "returned %d results\n", len(results))
}

func (e *explainMonitor) Failed(err error) {
	fmt.Fprintf(e.w, "failed: %v\n", err)
}
