// Package wizard holds the step gating and navigation shared by the
// multi-step intake and appointment forms, plus the ticket hand-off to
// their confirmation views.
package wizard

// Predicate reports whether one step's required fields are present.
type Predicate[S any] func(state S) bool

// Gate is an ordered list of step predicates. Steps are numbered from 1.
type Gate[S any] struct {
	name  string
	steps []Predicate[S]
}

func NewGate[S any](name string, steps ...Predicate[S]) *Gate[S] {
	return &Gate[S]{name: name, steps: steps}
}

func (g *Gate[S]) Name() string {
	return g.name
}

func (g *Gate[S]) Steps() int {
	return len(g.steps)
}

// CanAdvance evaluates step against state. Steps outside 1..Steps() are
// never passable.
func (g *Gate[S]) CanAdvance(step int, state S) bool {
	if step < 1 || step > len(g.steps) {
		return false
	}
	return g.steps[step-1](state)
}

// FirstIncomplete returns the lowest step whose predicate fails, or
// ok=false when every step passes.
func (g *Gate[S]) FirstIncomplete(state S) (step int, ok bool) {
	for i, p := range g.steps {
		if !p(state) {
			return i + 1, true
		}
	}
	return 0, false
}

// Always is the predicate for review steps with no required fields.
func Always[S any](S) bool {
	return true
}
