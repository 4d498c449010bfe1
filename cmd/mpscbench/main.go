// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command mpscbench drives n inserts across c producer goroutines against
// each back-end in turn and times how long a single consumer goroutine
// takes to drain them all, reporting the average producer wall time
// alongside the consumer's.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/mpscq"
)

func main() {
	var (
		n           = flag.Uint("n", 1_000_000, "number of values to insert")
		c           = flag.Uint("c", 2, "number of producer goroutines")
		b           = flag.Uint("b", 1, "producer batch size, capped at 64")
		perf        = flag.Bool("perf", false, "benchmark LinkedQueue only")
		withTreiber = flag.Bool("with-treiber-stack", false, "also benchmark TreiberQueue")
		csv         = flag.Bool("csv", false, "emit machine-readable CSV instead of a table")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-n elems] [-c producers] [-b batch] [--perf] [--with-treiber-stack] [--csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	batch := *b
	if batch == 0 {
		batch = 1
	}
	if batch > 64 {
		batch = 64
	}

	backends := []mpscq.Backend[int]{mpscq.NewLinkedQueue[int]()}
	if !*perf {
		backends = append(backends, mpscq.NewDualTailQueue[int]())
		if *withTreiber {
			backends = append(backends, mpscq.NewTreiberQueue[int]())
		}
	}

	// Warm-up run, discarded, at a small size to prime allocator paths.
	warmN := *n
	if warmN > 100_000 {
		warmN = 100_000
	}
	for _, be := range backends {
		runBench(be, *c, batch, warmN, true)
	}

	if !*csv {
		fmt.Printf("Benchmarking n=%d on 1+%d threads, batch=%d.\n", *n, *c, batch)
		fmt.Printf("%16s %10s %10s\n", "back-end", "consumer_ms", "avg_producer_ms")
	} else {
		fmt.Println("backend,n,producers,batch,consumer_ms,avg_producer_ms")
	}

	for _, be := range backends {
		result := runBench(be, *c, batch, *n, false)
		if *csv {
			fmt.Printf("%s,%d,%d,%d,%d,%d\n", be.Desc(), *n, *c, batch, result.consumerMS, result.avgProducerMS)
		} else {
			fmt.Printf("%16s %10d %10d\n", be.Desc(), result.consumerMS, result.avgProducerMS)
		}
	}
}

type benchResult struct {
	consumerMS    int64
	avgProducerMS int64
}

func runBench(be mpscq.Backend[int], numProducers, batch, n uint, warming bool) benchResult {
	be.Init()

	perProducer := n / numProducers
	remainder := n - perProducer*numProducers

	producerMS := make([]int64, numProducers)
	start := make(chan struct{})
	var wg sync.WaitGroup

	for p := uint(0); p < numProducers; p++ {
		count := perProducer
		if p == numProducers-1 {
			count += remainder
		}
		wg.Add(1)
		go func(id int, count uint) {
			defer wg.Done()
			<-start
			t0 := time.Now()
			produce(be, id, count, batch)
			producerMS[id] = time.Since(t0).Milliseconds()
		}(int(p), count)
	}

	t0 := time.Now()
	close(start)

	var consumed uint
	backoff := iox.Backoff{}
	for consumed < n {
		node, err := mpscq.TryPop(be)
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		consumed++
		_ = node
	}
	consumerMS := time.Since(t0).Milliseconds()

	wg.Wait()

	if consumed != n {
		log.Fatalf("%s: drained %d values, expected %d", be.Desc(), consumed, n)
	}
	if warming {
		return benchResult{}
	}

	var total int64
	for _, ms := range producerMS {
		total += ms
	}
	return benchResult{consumerMS: consumerMS, avgProducerMS: total / int64(numProducers)}
}

func produce(be mpscq.Backend[int], producerID int, count, batch uint) {
	if batch <= 1 {
		for i := uint(0); i < count; i++ {
			be.Insert(mpscq.NewNode(producerID*1_000_000_000 + int(i)))
		}
		return
	}

	nodes := make([]*mpscq.Node[int], 0, batch)
	var i uint
	for ; i+batch <= count; i += batch {
		nodes = nodes[:0]
		for j := uint(0); j < batch; j++ {
			nodes = append(nodes, mpscq.NewNode(producerID*1_000_000_000+int(i+j)))
		}
		be.InsertBatch(nodes)
	}
	for ; i < count; i++ {
		be.Insert(mpscq.NewNode(producerID*1_000_000_000 + int(i)))
	}
}
