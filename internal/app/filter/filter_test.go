package filter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/dirplayer/internal/domain/track"
)

// stubFilter records whether it was consulted.
type stubFilter struct {
	name    string
	sources []track.Source
	result  Result
	called  bool
}

func (f *stubFilter) Name() string                                 { return f.name }
func (f *stubFilter) Description() string                          { return "stub" }
func (f *stubFilter) ReturnCodes() []string                        { return []string{f.result.Code} }
func (f *stubFilter) ValidateConfig(settings map[string]any) error { return nil }
func (f *stubFilter) AppliesTo(source track.Source) bool {
	for _, s := range f.sources {
		if s == source {
			return true
		}
	}
	return false
}
func (f *stubFilter) Check(ctx context.Context, c Candidate) Result {
	f.called = true
	return f.result
}

func TestChain_Execute(t *testing.T) {
	all := []track.Source{track.SourceSelection, track.SourceDirectory}

	t.Run("empty chain accepts", func(t *testing.T) {
		result := NewChain().Execute(context.Background(), Candidate{}, track.SourceSelection)
		assert.True(t, result.Accepted)
	})

	t.Run("nil chain accepts", func(t *testing.T) {
		var c *Chain
		result := c.Execute(context.Background(), Candidate{}, track.SourceSelection)
		assert.True(t, result.Accepted)
	})

	t.Run("first rejection wins and stops the chain", func(t *testing.T) {
		first := &stubFilter{name: "first", sources: all, result: Reject("first_code")}
		second := &stubFilter{name: "second", sources: all, result: Reject("second_code")}

		result := NewChain(first, second).Execute(context.Background(), Candidate{}, track.SourceSelection)

		assert.False(t, result.Accepted)
		assert.Equal(t, "first_code", result.Code)
		assert.True(t, first.called)
		assert.False(t, second.called, "filters after a rejection must not run")
	})

	t.Run("filters not applying to the source are skipped", func(t *testing.T) {
		selectionOnly := &stubFilter{
			name:    "selection_only",
			sources: []track.Source{track.SourceSelection},
			result:  Reject("nope"),
		}

		result := NewChain(selectionOnly).Execute(context.Background(), Candidate{}, track.SourceDirectory)

		assert.True(t, result.Accepted)
		assert.False(t, selectionOnly.called)
	})
}

func TestDefaultFilters_AppliesTo(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		source   track.Source
		expected bool
	}{
		{"extension on selection", NewExtensionFilter(".mp3"), track.SourceSelection, true},
		{"extension on directory", NewExtensionFilter(".mp3"), track.SourceDirectory, true},
		{"extension on history", NewExtensionFilter(".mp3"), track.SourceHistory, false},
		{"duration on selection", NewDurationFilter(), track.SourceSelection, true},
		{"duration on directory", NewDurationFilter(), track.SourceDirectory, false},
		{"duration on history", NewDurationFilter(), track.SourceHistory, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.AppliesTo(tt.source))
		})
	}
}

func TestChain_SelectionScenario(t *testing.T) {
	chain := NewChain(NewExtensionFilter(".mp3"), NewDurationFilter())
	ctx := context.Background()

	ok := chain.Execute(ctx, Candidate{Track: track.New("/music/a.mp3", 2*time.Minute)}, track.SourceSelection)
	assert.True(t, ok.Accepted)

	zero := chain.Execute(ctx, Candidate{Track: track.New("/music/silent.mp3", 0)}, track.SourceSelection)
	assert.Equal(t, Reject(CodeZeroDuration), zero)

	wrongType := chain.Execute(ctx, Candidate{Track: track.New("/music/cover.jpg", time.Minute)}, track.SourceSelection)
	assert.Equal(t, Reject(CodeUnsupportedFile), wrongType)

	sibling := chain.Execute(ctx, Candidate{Track: track.New("/music/b.mp3", 0)}, track.SourceDirectory)
	assert.True(t, sibling.Accepted, "siblings are not probed so zero duration is fine")
}

func TestRegistry(t *testing.T) {
	registered := GetRegistered()

	for _, name := range []string{"extension_filter", "duration_filter"} {
		factory, ok := registered[name]
		if assert.True(t, ok, "filter %s should be registered", name) {
			assert.Equal(t, name, factory().Name())
		}
	}
}
