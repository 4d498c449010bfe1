// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

// DualTailQueue is a locking MPSC baseline: producers append to a
// spinlock-guarded plist, and the consumer drains from its own clist,
// splicing plist onto clist under the lock whenever clist runs dry. It
// exists to contrast against the lock-free back-ends: its throughput
// ceiling comes from lock contention, not from algorithmic weakness.
type DualTailQueue[T any] struct {
	_    pad
	lock spinlock
	_    pad

	plistHead, plistTail *Node[T] // producer list, guarded by lock

	clistHead, clistTail *Node[T] // consumer list, consumer-owned only
}

// NewDualTailQueue returns an initialized DualTailQueue.
func NewDualTailQueue[T any]() *DualTailQueue[T] {
	q := &DualTailQueue[T]{}
	q.Init()
	return q
}

// Init resets q to the empty state.
func (q *DualTailQueue[T]) Init() {
	q.plistHead, q.plistTail = nil, nil
	q.clistHead, q.clistTail = nil, nil
}

// Desc names the algorithm for benchmark and log output.
func (q *DualTailQueue[T]) Desc() string {
	return "locked-dual-tailq"
}

// Insert appends node to plist under the lock.
func (q *DualTailQueue[T]) Insert(node *Node[T]) {
	node.next.StoreRelaxed(nil)
	node.prev = nil

	q.lock.Lock()
	q.appendPlist(node, node)
	q.lock.Unlock()
}

// InsertBatch builds a private chain without the lock, then splices it
// onto plist in one critical section.
func (q *DualTailQueue[T]) InsertBatch(nodes []*Node[T]) {
	if len(nodes) == 0 {
		return
	}
	for i := 0; i < len(nodes); i++ {
		if i+1 < len(nodes) {
			nodes[i].next.StoreRelaxed(nodes[i+1])
		} else {
			nodes[i].next.StoreRelaxed(nil)
		}
		nodes[i].prev = nil
	}
	first, last := nodes[0], nodes[len(nodes)-1]

	q.lock.Lock()
	q.appendPlist(first, last)
	q.lock.Unlock()
}

// appendPlist links first..last onto the tail of plist. Caller must hold
// the lock. plist is singly-linked: producers never traverse backward.
func (q *DualTailQueue[T]) appendPlist(first, last *Node[T]) {
	if q.plistTail == nil {
		q.plistHead = first
	} else {
		q.plistTail.next.StoreRelaxed(first)
	}
	q.plistTail = last
}

// Pop removes and returns the head of clist, splicing plist onto clist
// under the lock first if clist is empty. Returns nil if both are empty.
func (q *DualTailQueue[T]) Pop() *Node[T] {
	if q.clistHead == nil {
		q.lock.Lock()
		plistHead, plistTail := q.plistHead, q.plistTail
		q.plistHead, q.plistTail = nil, nil
		q.lock.Unlock()
		q.spliceIntoClist(plistHead, plistTail)
		if q.clistHead == nil {
			return nil
		}
	}

	node := q.clistHead
	q.clistHead = node.next.LoadRelaxed()
	if q.clistHead != nil {
		q.clistHead.prev = nil
	} else {
		q.clistTail = nil
	}
	node.prev = nil
	return node
}

// spliceIntoClist appends the drained plist chain (first..last) onto the
// back of clist, wiring prev pointers so clist is a proper doubly-linked
// list the way the original TAILQ-backed producer list was. Consumer-only.
func (q *DualTailQueue[T]) spliceIntoClist(first, last *Node[T]) {
	if first == nil {
		return
	}
	first.prev = q.clistTail
	if q.clistTail == nil {
		q.clistHead = first
	} else {
		q.clistTail.next.StoreRelaxed(first)
	}
	for n := first; n != last; {
		next := n.next.LoadRelaxed()
		next.prev = n
		n = next
	}
	q.clistTail = last
}

// TryPop is the error-returning counterpart of Pop.
func (q *DualTailQueue[T]) TryPop() (*Node[T], error) {
	return TryPop[T](q)
}

// IsEmpty checks clist on the fast path; if clist looks empty it takes
// the lock to check plist too.
func (q *DualTailQueue[T]) IsEmpty() bool {
	if q.clistHead != nil {
		return false
	}
	q.lock.Lock()
	empty := q.plistHead == nil
	q.lock.Unlock()
	return empty
}
