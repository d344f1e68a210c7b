package monitor_test

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/nudge/internal/engine/monitor"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestFilter_Accept(t *testing.T) {
	tests := []struct {
		name  string
		steps []struct {
			path string
			ms   int
		}
		want []bool
	}{
		{
			name: "first event is accepted",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 0}},
			want: []bool{true},
		},
		{
			name: "repeat inside cooldown is suppressed",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 0}, {"/w/a.txt", 100}, {"/w/a.txt", 1000}},
			want: []bool{true, false, true},
		},
		{
			name: "exactly at the boundary is suppressed",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 0}, {"/w/a.txt", 500}, {"/w/a.txt", 501}},
			want: []bool{true, false, true},
		},
		{
			name: "suppressed events do not extend the window",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 0}, {"/w/a.txt", 400}, {"/w/a.txt", 600}},
			want: []bool{true, false, true},
		},
		{
			name: "paths are independent",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 0}, {"/w/b.txt", 10}, {"/w/a.txt", 20}, {"/w/b.txt", 30}},
			want: []bool{true, true, false, false},
		},
		{
			name: "clock going backwards is suppressed",
			steps: []struct {
				path string
				ms   int
			}{{"/w/a.txt", 2000}, {"/w/a.txt", 0}, {"/w/a.txt", 2600}},
			want: []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := monitor.NewFilter(domain.Cooldown)
			got := make([]bool, 0, len(tt.steps))
			for _, s := range tt.steps {
				got = append(got, f.Accept(s.path, at(s.ms)))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Observe(t *testing.T) {
	tests := []struct {
		name     string
		ev       ports.WatchEvent
		wantOK   bool
		wantKind domain.ChangeKind
	}{
		{"create", ports.WatchEvent{Path: "/w/a", Operation: ports.OpCreate}, true, domain.ChangeCreated},
		{"write", ports.WatchEvent{Path: "/w/a", Operation: ports.OpWrite}, true, domain.ChangeModified},
		{"remove", ports.WatchEvent{Path: "/w/a", Operation: ports.OpRemove}, true, domain.ChangeDeleted},
		{"rename away", ports.WatchEvent{Path: "/w/a", Operation: ports.OpRename}, true, domain.ChangeDeleted},
		{"directory", ports.WatchEvent{Path: "/w/d", Operation: ports.OpCreate, IsDir: true}, false, 0},
		{"directory rename", ports.WatchEvent{Path: "/w/d", Operation: ports.OpRename, IsDir: true}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := monitor.NewFilter(domain.Cooldown)
			change, ok := f.Observe(tt.ev, at(0))
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Zero(t, f.Len(), "ignored events must not touch the cooldown table")
				return
			}
			assert.Equal(t, tt.ev.Path, change.Path)
			assert.Equal(t, tt.wantKind, change.Kind)
			assert.Equal(t, at(0), change.At)
		})
	}
}

func TestFilter_ObserveSharesCooldownAcrossKinds(t *testing.T) {
	f := monitor.NewFilter(domain.Cooldown)

	_, ok := f.Observe(ports.WatchEvent{Path: "/w/a", Operation: ports.OpCreate}, at(0))
	assert.True(t, ok)
	_, ok = f.Observe(ports.WatchEvent{Path: "/w/a", Operation: ports.OpWrite}, at(100))
	assert.False(t, ok)
	_, ok = f.Observe(ports.WatchEvent{Path: "/w/a", Operation: ports.OpRemove}, at(700))
	assert.True(t, ok)
}

func TestFilter_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	gaps := gen.SliceOf(gen.IntRange(0, 1200))

	properties.Property("accepted events for one path are more than a cooldown apart", prop.ForAll(
		func(steps []int) bool {
			f := monitor.NewFilter(domain.Cooldown)
			ms := 0
			var accepted []time.Time
			for _, gap := range steps {
				ms += gap
				if f.Accept("/w/a", at(ms)) {
					accepted = append(accepted, at(ms))
				}
			}
			for i := 1; i < len(accepted); i++ {
				if accepted[i].Sub(accepted[i-1]) <= domain.Cooldown {
					return false
				}
			}
			return true
		},
		gaps,
	))

	properties.Property("first event for a path is always accepted", prop.ForAll(
		func(steps []int, offset int) bool {
			f := monitor.NewFilter(domain.Cooldown)
			ms := 0
			for _, gap := range steps {
				ms += gap
				f.Accept("/w/other", at(ms))
			}
			return f.Accept("/w/fresh", at(offset))
		},
		gaps,
		gen.IntRange(0, 100000),
	))

	properties.Property("an event after a quiet cooldown is accepted", prop.ForAll(
		func(steps []int, extra int) bool {
			f := monitor.NewFilter(domain.Cooldown)
			ms := 0
			for _, gap := range steps {
				ms += gap
				f.Accept("/w/a", at(ms))
			}
			quiet := ms + int(domain.Cooldown/time.Millisecond) + 1 + extra
			return f.Accept("/w/a", at(quiet))
		},
		gaps,
		gen.IntRange(0, 1000),
	))

	properties.Property("interleaving other paths does not change decisions", prop.ForAll(
		func(steps []int) bool {
			alone := monitor.NewFilter(domain.Cooldown)
			mixed := monitor.NewFilter(domain.Cooldown)
			ms := 0
			for _, gap := range steps {
				ms += gap
				mixed.Accept("/w/noise", at(ms))
				if alone.Accept("/w/a", at(ms)) != mixed.Accept("/w/a", at(ms)) {
					return false
				}
			}
			return true
		},
		gaps,
	))

	properties.TestingRun(t)
}
