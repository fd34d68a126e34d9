package binder

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"struct-binder/typeinfo"
)

// Default priorities; higher wins.
const (
	PriorityScalar   = 1000
	PriorityArray    = 900
	PriorityList     = 800
	PrioritySet      = 700
	PriorityMap      = 600
	PriorityRecord   = 500
	PriorityFallback = math.MinInt
)

type entry struct {
	strategy Strategy
	priority int
}

// Registry orders strategies by priority. Registering the same priority
// twice keeps registration order. A Registry is mutated at setup time
// only; it is not safe to change while binds are running.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry holding every built-in strategy,
// with BeanBinder as the fallback.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ScalarBinder{}, PriorityScalar)
	r.Register(ArrayBinder{}, PriorityArray)
	r.Register(ListBinder{}, PriorityList)
	r.Register(SetBinder{}, PrioritySet)
	r.Register(MapBinder{}, PriorityMap)
	r.Register(RecordBinder{}, PriorityRecord)
	r.Register(BeanBinder{}, PriorityFallback)

	return r
}

func (r *Registry) Register(s Strategy, priority int) {
	r.entries = append(r.entries, entry{strategy: s, priority: priority})
	slices.SortStableFunc(r.entries, func(a, b entry) int {
		switch {
		case a.priority > b.priority:
			return -1
		case a.priority < b.priority:
			return 1
		default:
			return 0
		}
	})
}

// Unregister removes every registration of s and reports whether any existed.
func (r *Registry) Unregister(s Strategy) bool {
	n := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e entry) bool {
		return sameStrategy(e.strategy, s)
	})

	return len(r.entries) != n
}

func (r *Registry) Clear() {
	r.entries = nil
}

// Select returns the highest-priority strategy supporting d.
func (r *Registry) Select(d *typeinfo.Descriptor) (Strategy, error) {
	for _, e := range r.entries {
		if e.strategy.Supports(d) {
			return e.strategy, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrNoStrategy, d)
}

// Strategies lists the registered strategies in selection order.
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.strategy)
	}

	return out
}

func sameStrategy(a, b Strategy) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	return a == b
}
