package wizard

import (
	"context"
	"sync"

	"lawfirm-site/internal/common/errors"
)

// Wizard tracks one session's position in a gated form. Navigation moves
// one step at a time and never skips a failing gate.
type Wizard[S any] struct {
	gate *Gate[S]

	mu       sync.Mutex
	step     int
	state    S
	inFlight bool
}

func New[S any](gate *Gate[S], initial S) *Wizard[S] {
	return &Wizard[S]{gate: gate, step: 1, state: initial}
}

func (w *Wizard[S]) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard[S]) State() S {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Update replaces the form state with fn's result.
func (w *Wizard[S]) Update(fn func(S) S) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = fn(w.state)
}

// CanAdvance evaluates the current step's gate.
func (w *Wizard[S]) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.CanAdvance(w.step, w.state)
}

// Next moves forward one step when the current gate passes and the
// current step is not the last. It reports whether the step changed.
func (w *Wizard[S]) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step >= w.gate.Steps() || !w.gate.CanAdvance(w.step, w.state) {
		return false
	}
	w.step++
	return true
}

// Back moves back one step, never below the first.
func (w *Wizard[S]) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step <= 1 {
		return false
	}
	w.step--
	return true
}

// Submit runs fn with the final state. It requires the last step, every
// gate passing and no other submission in flight.
func (w *Wizard[S]) Submit(ctx context.Context, fn func(context.Context, S) error) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return errors.NewSubmitInFlightError(w.gate.Name())
	}
	if w.step != w.gate.Steps() {
		w.mu.Unlock()
		return errors.NewStepIncompleteError(w.gate.Name(), w.step)
	}
	if step, incomplete := w.gate.FirstIncomplete(w.state); incomplete {
		w.mu.Unlock()
		return errors.NewStepIncompleteError(w.gate.Name(), step)
	}
	w.inFlight = true
	state := w.state
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()
	return fn(ctx, state)
}

// Submitting reports whether a submission is running.
func (w *Wizard[S]) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}
