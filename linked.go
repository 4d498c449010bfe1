// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

import (
	"iter"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// PollResult is the three-way outcome of LinkedQueue.Poll.
type PollResult int

const (
	// ITEM means Poll returned a node; the queue has advanced past it.
	ITEM PollResult = iota
	// EMPTY means the chain has been observed fully drained
	// (tail == head == &stub).
	EMPTY
	// RETRY means the caller observed a partial-insertion window or a
	// tail that just caught up to a still-publishing head. The caller
	// should spin and call Poll again.
	RETRY
)

func (r PollResult) String() string {
	switch r {
	case ITEM:
		return "ITEM"
	case EMPTY:
		return "EMPTY"
	case RETRY:
		return "RETRY"
	default:
		return "unknown"
	}
}

// LinkedQueue is a Vyukov-style intrusive lock-free MPSC queue: producers
// publish via a single atomic exchange, the consumer walks the chain with
// a three-state poll protocol, and a permanent stub node keeps the chain
// from ever looking truly empty to the consumer.
//
// Producers may call Insert/InsertBatch concurrently from any number of
// goroutines. Poll/Pop/PushFront/All must be called by a single consumer
// at a time; the optional TryLock/Lock/Unlock let multiple goroutines take
// turns holding that role.
type LinkedQueue[T any] struct {
	_    pad
	head atomix.Pointer[Node[T]] // producer end
	_    pad
	tail atomix.Pointer[Node[T]] // consumer end, relaxed load/store only
	_    pad
	consumerLock atomix.Bool

	stub Node[T]
}

// NewLinkedQueue returns an initialized LinkedQueue.
func NewLinkedQueue[T any]() *LinkedQueue[T] {
	q := &LinkedQueue[T]{}
	q.Init()
	return q
}

// Init resets q to the empty state: head and tail both point at the
// embedded stub, and the stub's next is nil.
func (q *LinkedQueue[T]) Init() {
	q.stub.next.StoreRelaxed(nil)
	q.head.StoreRelaxed(&q.stub)
	q.tail.StoreRelaxed(&q.stub)
}

// Desc names the algorithm for benchmark and log output.
func (q *LinkedQueue[T]) Desc() string {
	return "linked-mpsc"
}

// Insert publishes node to the queue. Safe for any number of concurrent
// producers.
func (q *LinkedQueue[T]) Insert(node *Node[T]) {
	node.next.StoreRelaxed(nil)
	prev := q.head.SwapAcqRel(node)
	prev.next.StoreRelease(node)
}

// InsertList publishes a pre-linked chain first -> ... -> last in one
// atomic exchange, amortizing the cost across every node in the chain.
// Callers must have already linked first.next -> ... -> last via relaxed
// stores and set last.next = nil before calling InsertList.
func (q *LinkedQueue[T]) InsertList(first, last *Node[T]) {
	last.next.StoreRelaxed(nil)
	prev := q.head.SwapAcqRel(last)
	prev.next.StoreRelease(first)
}

// InsertBatch stitches nodes into a chain and publishes it with one
// atomic exchange, as if Insert had been called once per node in order.
func (q *LinkedQueue[T]) InsertBatch(nodes []*Node[T]) {
	if len(nodes) == 0 {
		return
	}
	if len(nodes) == 1 {
		q.Insert(nodes[0])
		return
	}
	for i := 0; i < len(nodes)-1; i++ {
		nodes[i].next.StoreRelaxed(nodes[i+1])
	}
	q.InsertList(nodes[0], nodes[len(nodes)-1])
}

// InsertBegin performs the producer-side exchange without publishing
// node.next into its predecessor, leaving the chain in the
// partial-insertion window. It exists for tests that need to exercise
// RETRY deterministically; production code should call Insert.
func (q *LinkedQueue[T]) InsertBegin(node *Node[T]) (prev *Node[T]) {
	node.next.StoreRelaxed(nil)
	return q.head.SwapAcqRel(node)
}

// InsertEnd completes a partial insert begun by InsertBegin, publishing
// node into prev.next.
func (q *LinkedQueue[T]) InsertEnd(prev, node *Node[T]) {
	prev.next.StoreRelease(node)
}

// PollCtx is a checkpoint captured by PollBegin at the one point in Poll
// where the consumer has decided it must recycle the stub but has not
// yet done so. It exists for tests that need to interleave a producer's
// partial insert at exactly that point; production code should call
// Poll, which drives PollBegin/PollEnd itself.
type PollCtx[T any] struct {
	tail *Node[T]
}

// PollBegin runs every branch of the poll protocol that does not recycle
// the stub. If it already has an answer, ok is true and the returned
// node/result are final. Otherwise ok is false and ctx must be passed to
// PollEnd to recycle the stub and obtain the final result.
func (q *LinkedQueue[T]) PollBegin() (node *Node[T], result PollResult, ctx PollCtx[T], ok bool) {
	tail := q.tail.LoadRelaxed()
	next := tail.next.LoadAcquire()

	if tail == &q.stub {
		if next == nil {
			head := q.head.LoadAcquire()
			if tail == head {
				return nil, EMPTY, PollCtx[T]{}, true
			}
			return nil, RETRY, PollCtx[T]{}, true
		}
		q.tail.StoreRelaxed(next)
		tail = next
		next = tail.next.LoadAcquire()
	}

	if next != nil {
		q.tail.StoreRelaxed(next)
		return tail, ITEM, PollCtx[T]{}, true
	}

	head := q.head.LoadAcquire()
	if tail != head {
		return nil, RETRY, PollCtx[T]{}, true
	}

	return nil, 0, PollCtx[T]{tail: tail}, false
}

// PollEnd completes a checkpoint from PollBegin: it recycles the stub and
// returns the final ITEM/RETRY result. Call it exactly once per ctx.
func (q *LinkedQueue[T]) PollEnd(ctx PollCtx[T]) (*Node[T], PollResult) {
	tail := ctx.tail
	q.Insert(&q.stub)

	next := tail.next.LoadAcquire()
	if next != nil {
		q.tail.StoreRelaxed(next)
		return tail, ITEM
	}
	return nil, RETRY
}

// Poll implements the consumer's three-state protocol: ITEM, EMPTY, or
// RETRY. It never blocks and never returns a node whose identity is the
// embedded stub.
func (q *LinkedQueue[T]) Poll() (*Node[T], PollResult) {
	if node, result, ctx, ok := q.PollBegin(); ok {
		return node, result
	} else {
		return q.PollEnd(ctx)
	}
}

// Pop loops over Poll, spinning through RETRY and returning nil on EMPTY.
func (q *LinkedQueue[T]) Pop() *Node[T] {
	sw := spin.Wait{}
	for {
		node, res := q.Poll()
		switch res {
		case ITEM:
			return node
		case EMPTY:
			return nil
		default: // RETRY
			sw.Once()
		}
	}
}

// TryPop is the error-returning counterpart of Pop, returning
// ErrWouldBlock instead of a nil node on EMPTY.
func (q *LinkedQueue[T]) TryPop() (*Node[T], error) {
	return TryPop[T](q)
}

// PushFront re-inserts node at the consumer end of the chain. It is valid
// only because there is ever one consumer: no producer touches tail.
func (q *LinkedQueue[T]) PushFront(node *Node[T]) {
	node.next.StoreRelaxed(q.tail.LoadRelaxed())
	q.tail.StoreRelaxed(node)
}

// IsEmpty is a best-effort check; a concurrent Insert may make it stale
// the instant it returns, but it never reports empty while a node is
// still there to pop.
func (q *LinkedQueue[T]) IsEmpty() bool {
	tail := q.tail.LoadRelaxed()
	return tail == &q.stub && tail.next.LoadAcquire() == nil && tail == q.head.LoadAcquire()
}

// All returns an iterator over a best-effort snapshot of the queue from
// tail forward, skipping the stub if encountered. It is not a consuming
// operation: iteration may underreport nodes mid-publish, which is
// acceptable for a snapshot view.
func (q *LinkedQueue[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n := q.tail.LoadRelaxed(); n != nil; n = n.next.LoadAcquire() {
			if n == &q.stub {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// TryLock attempts to acquire the optional consume-lock, reporting
// whether it succeeded. The lock is an arbitration aid for callers that
// want multiple goroutines to compete for the consumer role; it is not
// itself a correctness primitive, since the MPSC invariant already
// requires exactly one active consumer.
func (q *LinkedQueue[T]) TryLock() bool {
	return q.consumerLock.CompareAndSwapAcqRel(false, true)
}

// Lock acquires the consume-lock, spinning until it succeeds.
func (q *LinkedQueue[T]) Lock() {
	sw := spin.Wait{}
	for !q.TryLock() {
		sw.Once()
	}
}

// Unlock releases the consume-lock.
func (q *LinkedQueue[T]) Unlock() {
	q.consumerLock.StoreRelease(false)
}
