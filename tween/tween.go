// Package tween runs eased property animations keyed by the property they
// drive. Starting a task for a key that already has one replaces it.
package tween

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Task animates one or more float channels together and reports each step
// through apply.
type Task struct {
	channels []*gween.Tween
	end      []float32
	values   []float32
	apply    func([]float32)
	done     bool
	instant  bool
}

// New creates a task that eases every channel of from to the matching
// channel of to over duration seconds.
func New(from, to []float32, duration float32, easing ease.TweenFunc, apply func([]float32)) *Task {
	if easing == nil {
		easing = ease.Linear
	}
	n := min(len(from), len(to))
	t := &Task{
		channels: make([]*gween.Tween, n),
		end:      append([]float32(nil), to[:n]...),
		values:   append([]float32(nil), from[:n]...),
		apply:    apply,
		instant:  duration <= 0,
	}
	for i := range t.channels {
		t.channels[i] = gween.New(from[i], to[i], duration, easing)
	}
	return t
}

// Vec3 eases a vector, the common case for positions.
func Vec3(from, to mgl32.Vec3, duration float32, easing ease.TweenFunc, apply func(mgl32.Vec3)) *Task {
	return New(from[:], to[:], duration, easing, func(v []float32) {
		if apply != nil {
			apply(mgl32.Vec3{v[0], v[1], v[2]})
		}
	})
}

// Update advances the task by dt seconds, applies the new values and reports
// whether the task has reached its end.
func (t *Task) Update(dt float32) bool {
	if t.done {
		return true
	}
	finished := true
	for i, ch := range t.channels {
		if t.instant {
			t.values[i] = t.end[i]
			continue
		}
		v, ok := ch.Update(dt)
		t.values[i] = v
		finished = finished && ok
	}
	if t.apply != nil {
		t.apply(t.values)
	}
	t.done = finished
	return finished
}

// Done reports whether the task has finished.
func (t *Task) Done() bool { return t.done }

// Runner owns the active tasks.
type Runner struct {
	tasks map[string]*Task
	order []string
}

func NewRunner() *Runner {
	return &Runner{tasks: make(map[string]*Task)}
}

// Start schedules t under key, cancelling whatever was running there.
func (r *Runner) Start(key string, t *Task) {
	if _, ok := r.tasks[key]; !ok {
		r.order = append(r.order, key)
	}
	r.tasks[key] = t
}

// Cancel drops the task for key without applying further steps.
func (r *Runner) Cancel(key string) bool {
	if _, ok := r.tasks[key]; !ok {
		return false
	}
	delete(r.tasks, key)
	r.removeKey(key)
	return true
}

// Active reports whether a task is running for key.
func (r *Runner) Active(key string) bool {
	_, ok := r.tasks[key]
	return ok
}

func (r *Runner) Len() int { return len(r.tasks) }

// Update steps every task in start order and drops the finished ones.
func (r *Runner) Update(dt float32) {
	for _, key := range append([]string(nil), r.order...) {
		t, ok := r.tasks[key]
		if !ok {
			continue
		}
		if t.Update(dt) && r.tasks[key] == t {
			delete(r.tasks, key)
			r.removeKey(key)
		}
	}
}

func (r *Runner) removeKey(key string) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
