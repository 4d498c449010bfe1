// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// TreiberQueue is an MPSC FIFO built on a Treiber stack: producers push
// via CAS in LIFO order, and the consumer periodically detaches the whole
// stack and reverses it into FIFO order before draining it one node at a
// time. It tolerates a producer's partial insertion (between its load and
// its CAS) because a producer never publishes through another producer's
// pointer: node.next is written before the CAS, so any successful flush
// sees a fully linked stack.
type TreiberQueue[T any] struct {
	_    pad
	head atomix.Pointer[Node[T]] // LIFO top; nil means empty
	_    pad

	// list/tail are the consumer-private FIFO built from flushed stacks.
	// Untouched by producers.
	list *Node[T]
	tail *Node[T]
}

// NewTreiberQueue returns an initialized TreiberQueue.
func NewTreiberQueue[T any]() *TreiberQueue[T] {
	q := &TreiberQueue[T]{}
	q.Init()
	return q
}

// Init resets q to the empty state.
func (q *TreiberQueue[T]) Init() {
	q.head.StoreRelaxed(nil)
	q.list = nil
	q.tail = nil
}

// Desc names the algorithm for benchmark and log output.
func (q *TreiberQueue[T]) Desc() string {
	return "treiber-mpsc"
}

// Insert pushes node onto the stack. Safe for any number of concurrent
// producers.
func (q *TreiberQueue[T]) Insert(node *Node[T]) {
	sw := spin.Wait{}
	for {
		next := q.head.LoadAcquire()
		node.next.StoreRelaxed(next)
		if q.head.CompareAndSwapAcqRel(next, node) {
			return
		}
		sw.Once()
	}
}

// InsertBatch pre-links nodes into a private chain, then pushes the whole
// chain onto the stack with a single CAS retry loop.
func (q *TreiberQueue[T]) InsertBatch(nodes []*Node[T]) {
	if len(nodes) == 0 {
		return
	}
	for i := len(nodes) - 1; i > 0; i-- {
		nodes[i].next.StoreRelaxed(nodes[i-1])
	}
	top, bottom := nodes[len(nodes)-1], nodes[0]

	sw := spin.Wait{}
	for {
		next := q.head.LoadAcquire()
		bottom.next.StoreRelaxed(next)
		if q.head.CompareAndSwapAcqRel(next, top) {
			return
		}
		sw.Once()
	}
}

// Flush atomically detaches the entire stack and reverses it into FIFO
// order, appending it to any list left over from a previous flush. It
// returns the resulting consumer-owned list head, or nil if nothing was
// captured and nothing remained.
func (q *TreiberQueue[T]) Flush() *Node[T] {
	stack := q.head.SwapAcqRel(nil)
	if stack == nil {
		return q.list
	}

	var reversed, reversedTail *Node[T]
	for n := stack; n != nil; {
		next := n.next.LoadRelaxed()
		n.next.StoreRelaxed(reversed)
		reversed = n
		if reversedTail == nil {
			reversedTail = n
		}
		n = next
	}

	if q.list == nil {
		q.list = reversed
	} else {
		q.tail.next.StoreRelaxed(reversed)
	}
	q.tail = reversedTail
	return q.list
}

// Pop returns the head of the consumer-owned FIFO list, re-flushing the
// stack if the list is empty. Returns nil only when both the stack and
// the list are empty.
func (q *TreiberQueue[T]) Pop() *Node[T] {
	if q.list == nil {
		q.Flush()
		if q.list == nil {
			return nil
		}
	}
	node := q.list
	q.list = node.next.LoadRelaxed()
	if q.list == nil {
		q.tail = nil
	}
	return node
}

// TryPop is the error-returning counterpart of Pop.
func (q *TreiberQueue[T]) TryPop() (*Node[T], error) {
	return TryPop[T](q)
}

// IsEmpty is a best-effort check of both the stack and the consumer list.
func (q *TreiberQueue[T]) IsEmpty() bool {
	return q.list == nil && q.head.LoadAcquire() == nil
}
