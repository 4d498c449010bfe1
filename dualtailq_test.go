// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq_test

import (
	"testing"

	"code.hybscloud.com/mpscq"
)

func TestDualTailQueueOrderedInsertAndPop(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()

	for i := 0; i < 10; i++ {
		q.Insert(mpscq.NewNode(i))
	}

	for want := 0; want < 10; want++ {
		n := q.Pop()
		if n == nil || n.Value != want {
			t.Fatalf("Pop() = %v, want %d", n, want)
		}
	}
	if n := q.Pop(); n != nil {
		t.Fatalf("Pop() on drained queue = %v, want nil", n.Value)
	}
}

func TestDualTailQueueBatchInsert(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()

	nodes := make([]*mpscq.Node[int], 64)
	for i := range nodes {
		nodes[i] = mpscq.NewNode(i)
	}
	q.InsertBatch(nodes)

	for want := 0; want < 64; want++ {
		n := q.Pop()
		if n == nil || n.Value != want {
			t.Fatalf("Pop() = %v, want %d", n, want)
		}
	}
	if n := q.Pop(); n != nil {
		t.Fatalf("65th Pop() = %v, want nil", n.Value)
	}
}

func TestDualTailQueueSplicesProducerListOnDrain(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()

	q.Insert(mpscq.NewNode(1))
	q.Insert(mpscq.NewNode(2))

	// First pop splices plist onto clist.
	if n := q.Pop(); n == nil || n.Value != 1 {
		t.Fatalf("Pop() = %v, want 1", n)
	}

	// More inserts land back on plist; clist still has node 2 queued.
	q.Insert(mpscq.NewNode(3))

	want := []int{2, 3}
	for _, w := range want {
		n := q.Pop()
		if n == nil || n.Value != w {
			t.Fatalf("Pop() = %v, want %d", n, w)
		}
	}
	if n := q.Pop(); n != nil {
		t.Fatalf("Pop() on drained queue = %v, want nil", n.Value)
	}
}

func TestDualTailQueueIsEmpty(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()
	if !q.IsEmpty() {
		t.Fatalf("IsEmpty() on fresh queue = false, want true")
	}
	q.Insert(mpscq.NewNode(1))
	if q.IsEmpty() {
		t.Fatalf("IsEmpty() after Insert = true, want false")
	}
	q.Pop()
	if !q.IsEmpty() {
		t.Fatalf("IsEmpty() after drain = false, want true")
	}
}

func TestDualTailQueueTryPop(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()
	if _, err := q.TryPop(); !mpscq.IsWouldBlock(err) {
		t.Fatalf("TryPop() on empty queue err = %v, want ErrWouldBlock", err)
	}
	q.Insert(mpscq.NewNode(5))
	node, err := q.TryPop()
	if err != nil || node.Value != 5 {
		t.Fatalf("TryPop() = (%v, %v), want (5, nil)", node, err)
	}
}
