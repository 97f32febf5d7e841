package engine

import (
	"fmt"
	"slices"

	"github.com/matzehuels/microviz/pkg/charts"
	"github.com/matzehuels/microviz/pkg/model"
)

var registry = mustRegistry(charts.All())

// mustRegistry panics unless buildRegistry accepts handlers.
func mustRegistry(handlers []charts.Handler) map[model.Type]charts.Handler {
	table, err := buildRegistry(handlers)
	if err != nil {
		panic(err)
	}
	return table
}

// buildRegistry keys handlers by the tag they declare. Every handler must be
// non-nil, declare a unique tag and pass its own consistency check.
func buildRegistry(handlers []charts.Handler) (map[model.Type]charts.Handler, error) {
	table := make(map[model.Type]charts.Handler, len(handlers))
	for i, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("registry: nil handler at %d", i)
		}
		tag := h.Type()
		if _, dup := table[tag]; dup {
			return nil, fmt.Errorf("registry: duplicate handler for %q", tag)
		}
		if err := h.Check(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		table[tag] = h
	}
	return table, nil
}

// Lookup returns the handler registered for tag.
func Lookup(tag model.Type) (charts.Handler, bool) {
	h, ok := registry[tag]
	return h, ok
}

// Types returns every registered tag in sorted order.
func Types() []model.Type {
	out := make([]model.Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
