// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

// Backend is the polymorphic surface shared by LinkedQueue, TreiberQueue,
// and DualTailQueue.
//
// A Backend never allocates nodes: Insert transfers ownership of a
// caller-owned Node into the queue, Pop transfers it back out. Producers
// may call Insert/InsertBatch from any number of goroutines; Pop and
// IsEmpty must be called from a single consumer goroutine at a time (see
// LinkedQueue's optional consume-lock if multiple goroutines need to take
// turns being that consumer).
type Backend[T any] interface {
	// Init resets the backend to the empty state. Called once before use;
	// never safe to call concurrently with Insert/Pop.
	Init()

	// IsEmpty is a best-effort check. A false negative (reporting non-empty
	// when the last node is mid-insert) is possible under concurrent
	// Insert; a false positive is not.
	IsEmpty() bool

	// Insert adds node to the queue. Safe for any number of concurrent
	// callers. node must not already be present in any backend.
	Insert(node *Node[T])

	// InsertBatch adds nodes in the given order, as if Insert had been
	// called once per node in sequence. Every back-end in this package
	// has a native batch path that amortizes its one synchronizing
	// operation across the whole slice.
	InsertBatch(nodes []*Node[T])

	// Pop removes and returns the oldest node, or nil if the queue is
	// empty. Single-consumer only.
	Pop() *Node[T]

	// Desc names the algorithm, for benchmark and log output.
	Desc() string
}

// TryPop adapts a Backend's Pop to the ecosystem's error-returning idiom
// (see errors.go): nil becomes ErrWouldBlock. It is sugar; Pop remains the
// primary, allocation-free surface.
func TryPop[T any](b Backend[T]) (*Node[T], error) {
	node := b.Pop()
	if node == nil {
		return nil, ErrWouldBlock
	}
	return node, nil
}
