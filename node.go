// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

import "code.hybscloud.com/atomix"

// Node is the intrusive linkage a caller carries alongside its payload.
//
// A Node[T] is not allocated by any backend: the caller constructs it
// (typically as a value inside its own struct, or via &Node[T]{Value: v})
// and passes its address to Insert. The queue borrows the node between
// Insert and the matching Pop; the caller must not reuse or mutate a node
// while it is reachable from a backend.
//
// Node carries every linkage field any backend needs, the same way the
// original C implementation overlays mpsc_queue_node, ts_mpsc_queue_node,
// and tailq_node in a single union: one Node can be enqueued into
// LinkedQueue, TreiberQueue, or DualTailQueue, just never more than one of
// them at a time.
type Node[T any] struct {
	next atomix.Pointer[Node[T]] // LinkedQueue / TreiberQueue linkage
	prev *Node[T]                // DualTailQueue linkage only; consumer-owned

	// Value is the caller's payload, carried by value to avoid a second
	// allocation for the node itself.
	Value T
}

// NewNode allocates a Node wrapping v. Equivalent to &Node[T]{Value: v}.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}
