package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/cinematch/ai/mock"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	mu      sync.Mutex
	calls   []string
	routed  intent.Intent
	window  []int
	boosts  map[int]float64
	results []core.Result
	err     error
}

func newRecordingMonitor() *recordingMonitor {
	return &recordingMonitor{boosts: make(map[int]float64)}
}

func (r *recordingMonitor) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recordingMonitor) Start(_ string, _ int) { r.record("start") }
func (r *recordingMonitor) Routed(in intent.Intent) {
	r.record("routed")
	r.routed = in
}
func (r *recordingMonitor) AfterSemanticSearch(window []int) {
	r.record("window")
	r.window = window
}
func (r *recordingMonitor) Boosted(index int, boost float64) {
	r.boosts[index] += boost
}
func (r *recordingMonitor) Finish(results []core.Result) {
	r.record("finish")
	r.results = results
}
func (r *recordingMonitor) Failed(err error) {
	r.record("failed")
	r.err = err
}

func TestMonitor_PersonHooks(t *testing.T) {
	mon := newRecordingMonitor()
	engine, _ := newTestEngine(t, map[string][]float32{"Christopher Nolan movies": {0, 0, 1, 0}}, WithMonitor(mon))

	results, err := engine.Recommend(context.Background(), "Christopher Nolan movies", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "routed", "window", "finish"}, mon.calls)
	assert.Equal(t, intent.Person, mon.routed.Kind)
	assert.Equal(t, "christopher nolan", mon.routed.Person)
	assert.Len(t, mon.window, 6)
	assert.Equal(t, []int{4, 6}, mon.window[:2])
	assert.Equal(t, map[int]float64{3: personBoost, 6: personBoost}, mon.boosts)
	assert.Equal(t, results, mon.results)
}

func TestMonitor_CollectionSkipsWindow(t *testing.T) {
	mon := newRecordingMonitor()
	engine, _ := newTestEngine(t, nil)

	_, err := engine.RecommendWithMonitor(context.Background(), "Star Wars collection", 5, mon)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "routed", "finish"}, mon.calls)
	assert.Equal(t, "star wars", mon.routed.Phrase)
	assert.Empty(t, mon.boosts)
}

func TestMonitor_Failed(t *testing.T) {
	mon := newRecordingMonitor()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("offline")
	}
	engine, err := NewEngine(buildIndex(t, fixtures), embedder)
	require.NoError(t, err)

	_, err = engine.RecommendWithMonitor(context.Background(), "space adventure", 3, mon)
	require.Error(t, err)

	assert.Equal(t, []string{"start", "routed", "failed"}, mon.calls)
	assert.ErrorIs(t, mon.err, core.ErrOracle)
}

func TestMonitor_InvalidInputNotObserved(t *testing.T) {
	mon := newRecordingMonitor()
	engine, _ := newTestEngine(t, nil, WithMonitor(mon))

	_, err := engine.Recommend(context.Background(), "", 3)
	require.ErrorIs(t, err, core.ErrEmptyQuery)
	assert.Empty(t, mon.calls)
}

func TestMonitors(t *testing.T) {
	assert.IsType(t, &noopMonitor{}, Monitors())
	assert.IsType(t, &noopMonitor{}, Monitors(nil, nil))

	a := newRecordingMonitor()
	assert.Same(t, a, Monitors(nil, a))

	b := newRecordingMonitor()
	m := Monitors(a, b)
	m.Start("q", 1)
	m.Boosted(2, 0.5)
	assert.Equal(t, []string{"start"}, a.calls)
	assert.Equal(t, []string{"start"}, b.calls)
	assert.Equal(t, 0.5, b.boosts[2])
}
