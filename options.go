// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

// Kind names one of the three interchangeable back-end algorithms.
type Kind int

const (
	// Linked selects LinkedQueue, the lock-free intrusive queue. It is
	// the default and the primary back-end.
	Linked Kind = iota
	// Treiber selects TreiberQueue, the CAS-stack-with-reversal back-end.
	Treiber
	// DualTailq selects DualTailQueue, the lock-guarded baseline.
	DualTailq
)

func (k Kind) String() string {
	switch k {
	case Linked:
		return "linked"
	case Treiber:
		return "treiber"
	case DualTailq:
		return "dual-tailq"
	default:
		return "unknown"
	}
}

// Options configures back-end selection for Builder.
type Options struct {
	kind Kind
}

// Builder selects and constructs a Backend with fluent configuration.
//
// Example:
//
//	// Default: the lock-free linked back-end.
//	q := mpscq.Build[Event](mpscq.New())
//
//	// Benchmark baseline comparisons.
//	stack := mpscq.Build[Event](mpscq.New().WithTreiberStack())
//	locked := mpscq.Build[Event](mpscq.New().WithDualTailQueue())
type Builder struct {
	opts Options
}

// New creates a Builder defaulting to the lock-free linked back-end.
func New() *Builder {
	return &Builder{}
}

// WithTreiberStack selects TreiberQueue.
func (b *Builder) WithTreiberStack() *Builder {
	b.opts.kind = Treiber
	return b
}

// WithDualTailQueue selects DualTailQueue.
func (b *Builder) WithDualTailQueue() *Builder {
	b.opts.kind = DualTailq
	return b
}

// Build constructs the Backend[T] selected by b, already initialized.
func Build[T any](b *Builder) Backend[T] {
	switch b.opts.kind {
	case Treiber:
		return NewTreiberQueue[T]()
	case DualTailq:
		return NewDualTailQueue[T]()
	default:
		return NewLinkedQueue[T]()
	}
}

// Registry holds named Backend instances so a harness — a benchmark
// driver, a test suite running the same scenario against every back-end —
// can look one up by name instead of wiring a process-wide singleton per
// algorithm.
type Registry[T any] struct {
	names    []string
	backends map[string]Backend[T]
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{backends: make(map[string]Backend[T])}
}

// Register adds b under its own Desc() name, overwriting any previous
// entry with the same name.
func (r *Registry[T]) Register(b Backend[T]) {
	name := b.Desc()
	if _, exists := r.backends[name]; !exists {
		r.names = append(r.names, name)
	}
	r.backends[name] = b
}

// Get returns the backend registered under name, if any.
func (r *Registry[T]) Get(name string) (Backend[T], bool) {
	b, ok := r.backends[name]
	return b, ok
}

// Names returns registered backend names in registration order.
func (r *Registry[T]) Names() []string {
	return append([]string(nil), r.names...)
}

// pad is cache line padding to prevent false sharing between adjacent
// hot fields.
type pad [64]byte
