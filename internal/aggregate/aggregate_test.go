package aggregate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/cguard/internal/adapters"
	"github.com/Sena-ops/cguard/internal/model"
)

type fakeAdapter struct {
	name      string
	available bool
	raw       []byte
	results   []model.StaticAnalysisResult

	invoked atomic.Int32
	parsed  atomic.Int32
}

func (f *fakeAdapter) Name() string { return f.name }
func (f *fakeAdapter) Probe(ctx context.Context) bool { return f.available }
func (f *fakeAdapter) Category(string) string { return adapters.StyleGeneral }

func (f *fakeAdapter) Invoke(ctx context.Context, filePath string) []byte {
	f.invoked.Add(1)
	return f.raw
}

func (f *fakeAdapter) Parse(raw []byte, filePath string) []model.StaticAnalysisResult {
	f.parsed.Add(1)
	return f.results
}

func finding(tool, category string) model.StaticAnalysisResult {
	return model.StaticAnalysisResult{ToolName: tool, Category: category, Confidence: 0.5}
}

func fixture() (*fakeAdapter, *fakeAdapter, *fakeAdapter) {
	a := &fakeAdapter{
		name:      "cppcheck",
		available: true,
		raw:       []byte("x"),
		results:   []model.StaticAnalysisResult{finding("cppcheck", "rule_3"), finding("cppcheck", "rule_5")},
	}
	b := &fakeAdapter{name: "splint", available: false}
	c := &fakeAdapter{
		name:      "flawfinder",
		available: true,
		raw:       []byte("y"),
		results:   []model.StaticAnalysisResult{finding("flawfinder", "rule_3")},
	}
	return a, b, c
}

func TestRun(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		a, b, c := fixture()
		clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
		agg := New([]adapters.Adapter{a, b, c},
			WithConcurrency(concurrent),
			WithClock(func() time.Time { return clock }))

		res := agg.Run(context.Background(), "main.c")

		assert.Equal(t, "main.c", res.FilePath)
		assert.Equal(t, clock.UTC(), res.Timestamp)
		require.Len(t, res.Runs, 3)
		assert.Equal(t, []string{"cppcheck", "flawfinder"}, res.ToolsUsed())
		assert.Equal(t, 3, res.Total())
		assert.Equal(t, map[string]int{"cppcheck": 2, "flawfinder": 1}, res.ByTool())
		assert.Equal(t, map[string]int{"rule_3": 2, "rule_5": 1}, res.ByCategory())
		assert.Equal(t, []string{"rule_3", "rule_5"}, res.Categories())
		assert.Len(t, res.All(), 3)

		// indisponível: nunca invocado
		assert.Equal(t, int32(0), b.invoked.Load())
		assert.Equal(t, int32(0), b.parsed.Load())
		assert.False(t, res.Runs[1].Available)
		assert.NotNil(t, res.Runs[1].Results)
	}
}

func TestRun_EmptyOutputSkipsParse(t *testing.T) {
	a := &fakeAdapter{name: "clang_tidy", available: true}
	res := New([]adapters.Adapter{a}).Run(context.Background(), "f.c")

	assert.Equal(t, int32(1), a.invoked.Load())
	assert.Equal(t, int32(0), a.parsed.Load())
	assert.Equal(t, map[string]int{"clang_tidy": 0}, res.ByTool())
	assert.Equal(t, 0, res.Total())
}

func TestRun_NoDedup(t *testing.T) {
	same := finding("x", "rule_1")
	a := &fakeAdapter{name: "one", available: true, raw: []byte("r"), results: []model.StaticAnalysisResult{same}}
	b := &fakeAdapter{name: "two", available: true, raw: []byte("r"), results: []model.StaticAnalysisResult{same}}

	res := New([]adapters.Adapter{a, b}).Run(context.Background(), "f.c")
	assert.Equal(t, 2, res.Total())
}

func TestAvailability(t *testing.T) {
	a, b, c := fixture()
	got := New([]adapters.Adapter{a, b, c}, WithConcurrency(true)).Availability(context.Background())
	assert.Equal(t, map[string]bool{"cppcheck": true, "splint": false, "flawfinder": true}, got)
	assert.Equal(t, int32(0), a.invoked.Load())
}
