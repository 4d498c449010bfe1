// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/mpscq"
)

// mpscStressTest drives numP producers, each inserting itemsPerProducer
// values (encoded producerID*itemsPerProducer+seq) into backend via
// insert, while a single consumer drains with pop until every value has
// been observed exactly once. It verifies per-producer relative order is
// preserved in the popped sequence, mirroring the ecosystem's
// linearizability verification for concurrent queues.
type mpscStressTest struct {
	t               *testing.T
	numP            int
	itemsPerProduce int
	timeout         time.Duration
}

func (st *mpscStressTest) run(insert func(v int), pop func() (int, bool)) {
	t := st.t
	if mpscq.RaceEnabled {
		t.Skip("skip: stress test exercises lock-free memory ordering the race detector cannot model")
	}

	expectedTotal := st.numP * st.itemsPerProduce
	seen := make([]atomix.Int32, expectedTotal)
	lastSeqByProducer := make([]int, st.numP)
	for i := range lastSeqByProducer {
		lastSeqByProducer[i] = -1
	}

	var wg sync.WaitGroup
	deadline := time.Now().Add(st.timeout)

	for p := 0; p < st.numP; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < st.itemsPerProduce; i++ {
				insert(id*st.itemsPerProduce + i)
			}
		}(p)
	}

	var consumed int64
	backoff := iox.Backoff{}
	for consumed < int64(expectedTotal) {
		v, ok := pop()
		if !ok {
			if time.Now().After(deadline) {
				t.Fatalf("timeout after %v: consumed %d/%d", st.timeout, consumed, expectedTotal)
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()

		producerID := v / st.itemsPerProduce
		seq := v % st.itemsPerProduce
		if producerID < 0 || producerID >= st.numP {
			t.Fatalf("value out of range: %d", v)
		}
		if seq <= lastSeqByProducer[producerID] {
			t.Fatalf("producer %d FIFO violated: got seq %d after %d", producerID, seq, lastSeqByProducer[producerID])
		}
		lastSeqByProducer[producerID] = seq

		idx := producerID*st.itemsPerProduce + seq
		seen[idx].Add(1)
		consumed++
	}

	wg.Wait()

	var missing, duplicates int
	for i := 0; i < expectedTotal; i++ {
		switch seen[i].Load() {
		case 0:
			missing++
		case 1:
		default:
			duplicates++
		}
	}
	if missing > 0 {
		t.Errorf("lost %d of %d payloads", missing, expectedTotal)
	}
	if duplicates > 0 {
		t.Errorf("linearizability violation: %d duplicates", duplicates)
	}
}

func TestLinkedQueueMultiProducerStress(t *testing.T) {
	for _, numP := range []int{2, 4, 8} {
		numP := numP
		t.Run(tName(numP), func(t *testing.T) {
			q := mpscq.NewLinkedQueue[int]()
			st := &mpscStressTest{t: t, numP: numP, itemsPerProduce: 1_000_000 / numP, timeout: 30 * time.Second}
			st.run(
				func(v int) { q.Insert(mpscq.NewNode(v)) },
				func() (int, bool) {
					n := q.Pop()
					if n == nil {
						return 0, false
					}
					return n.Value, true
				},
			)
		})
	}
}

func TestTreiberQueueMultiProducerStress(t *testing.T) {
	q := mpscq.NewTreiberQueue[int]()
	st := &mpscStressTest{t: t, numP: 4, itemsPerProduce: 250_000, timeout: 30 * time.Second}
	st.run(
		func(v int) { q.Insert(mpscq.NewNode(v)) },
		func() (int, bool) {
			n := q.Pop()
			if n == nil {
				return 0, false
			}
			return n.Value, true
		},
	)
}

func TestDualTailQueueMultiProducerStress(t *testing.T) {
	q := mpscq.NewDualTailQueue[int]()
	st := &mpscStressTest{t: t, numP: 4, itemsPerProduce: 250_000, timeout: 30 * time.Second}
	st.run(
		func(v int) { q.Insert(mpscq.NewNode(v)) },
		func() (int, bool) {
			n := q.Pop()
			if n == nil {
				return 0, false
			}
			return n.Value, true
		},
	)
}

func tName(numP int) string {
	switch numP {
	case 2:
		return "producers=2"
	case 4:
		return "producers=4"
	case 8:
		return "producers=8"
	default:
		return "producers"
	}
}
