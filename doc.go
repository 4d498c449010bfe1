// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpscq provides intrusive multi-producer/single-consumer FIFO
// queues for high-throughput concurrent producers and a single
// wait-free-on-the-common-path consumer.
//
// Three interchangeable back-ends implement the same [Backend] surface:
//
//   - [LinkedQueue]: lock-free intrusive singly-linked queue with a
//     permanent stub node and a three-state poll protocol. The primary
//     back-end; producers pay one atomic exchange, the consumer is
//     wait-free on the uncontended path.
//   - [TreiberQueue]: producers push onto a CAS-guarded LIFO stack; the
//     consumer periodically flushes and reverses the stack into FIFO
//     order.
//   - [DualTailQueue]: a spinlock-guarded producer list spliced onto a
//     consumer-owned list on drain. The correctness and performance
//     baseline against which the lock-free back-ends are measured.
//
// # Quick Start
//
//	q := mpscq.NewLinkedQueue[Event]()
//
//	q.Insert(mpscq.NewNode(ev))
//
//	node := q.Pop()
//	if node != nil {
//	    process(node.Value)
//	}
//
// Builder API, for code that wants to pick the back-end at runtime (a
// benchmark harness, a config flag):
//
//	q := mpscq.Build[Event](mpscq.New())                    // LinkedQueue
//	q := mpscq.Build[Event](mpscq.New().WithTreiberStack()) // TreiberQueue
//	q := mpscq.Build[Event](mpscq.New().WithDualTailQueue())// DualTailQueue
//
// # Basic Usage
//
// No back-end allocates nodes. Callers own node storage and pass a
// *[Node][T] by address; the queue borrows it between Insert and the
// matching Pop:
//
//	n := mpscq.NewNode(42)
//	q.Insert(n)
//
//	popped := q.Pop()     // nil if nothing is ready
//	node, err := q.TryPop() // mpscq.ErrWouldBlock instead of nil
//
// # Common Patterns
//
// Event aggregation, the queue's primary shape — many producers, one
// consumer:
//
//	q := mpscq.NewLinkedQueue[Event]()
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Insert(mpscq.NewNode(ev))
//	        }
//	    }(sensor)
//	}
//
//	go func() { // single aggregator
//	    backoff := iox.Backoff{}
//	    for {
//	        node := q.Pop()
//	        if node == nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        aggregate(node.Value)
//	    }
//	}()
//
// Batch insert, amortizing the atomic exchange across several nodes
// produced together:
//
//	nodes := make([]*mpscq.Node[Event], len(batch))
//	for i, ev := range batch {
//	    nodes[i] = mpscq.NewNode(ev)
//	}
//	q.InsertBatch(nodes)
//
// Competing consumers taking turns, via the optional consume-lock
// ([LinkedQueue] only):
//
//	if q.TryLock() {
//	    defer q.Unlock()
//	    for node := q.Pop(); node != nil; node = q.Pop() {
//	        process(node.Value)
//	    }
//	}
//
// # Algorithm Selection
//
// LinkedQueue is lock-free for producers and wait-free for the consumer
// on the uncontended path; prefer it unless benchmarking or establishing
// a baseline calls for one of the alternatives. TreiberQueue trades
// per-producer CAS retry for a simpler invariant and no stub node.
// DualTailQueue trades lock contention for the simplest implementation;
// it exists to demonstrate that LinkedQueue's throughput comes from
// contention avoidance, not algorithmic luck.
//
// # Error Handling
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency and means exactly "nothing to pop right now":
//
//	backoff := iox.Backoff{}
//	for {
//	    node, err := q.TryPop()
//	    if err == nil {
//	        backoff.Reset()
//	        process(node.Value)
//	        continue
//	    }
//	    if !mpscq.IsWouldBlock(err) {
//	        return err // unexpected
//	    }
//	    backoff.Wait()
//	}
//
// Misuse (re-inserting a node still owned by the queue, two concurrent
// consumers on a back-end without the consume-lock) is undefined
// behavior, not a returned error. No back-end checks for it: nothing in
// this package detects, reports or panics on such misuse.
//
// # Thread Safety
//
// Insert and InsertBatch are safe for any number of concurrent producer
// goroutines on every back-end. Pop, TryPop, IsEmpty, PushFront, Poll,
// and All require a single consumer at a time; [LinkedQueue]'s
// TryLock/Lock/Unlock let multiple goroutines take turns holding that
// role without ever running the consumer path concurrently.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but not the happens-before relationships
// established by acquire-release orderings on separate atomic variables.
// LinkedQueue and TreiberQueue rely on exactly that kind of ordering, so
// the multi-producer stress tests guard themselves with [RaceEnabled]
// and skip under -race rather than report a false positive.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU-pause retry loops.
package mpscq
