// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq_test

import (
	"testing"

	"code.hybscloud.com/mpscq"
)

var (
	_ mpscq.Backend[int] = (*mpscq.LinkedQueue[int])(nil)
	_ mpscq.Backend[int] = (*mpscq.TreiberQueue[int])(nil)
	_ mpscq.Backend[int] = (*mpscq.DualTailQueue[int])(nil)
)

func TestBuilderDefaultsToLinkedQueue(t *testing.T) {
	b := mpscq.Build[int](mpscq.New())
	if b.Desc() != "linked-mpsc" {
		t.Fatalf("Build(New()) = %q, want linked-mpsc", b.Desc())
	}
}

func TestBuilderSelectsTreiberStack(t *testing.T) {
	b := mpscq.Build[int](mpscq.New().WithTreiberStack())
	if b.Desc() != "treiber-mpsc" {
		t.Fatalf("Build(New().WithTreiberStack()) = %q, want treiber-mpsc", b.Desc())
	}
}

func TestBuilderSelectsDualTailQueue(t *testing.T) {
	b := mpscq.Build[int](mpscq.New().WithDualTailQueue())
	if b.Desc() != "locked-dual-tailq" {
		t.Fatalf("Build(New().WithDualTailQueue()) = %q, want locked-dual-tailq", b.Desc())
	}
}

func TestBuildersSharedBackendInterface(t *testing.T) {
	for _, b := range []*mpscq.Builder{
		mpscq.New(),
		mpscq.New().WithTreiberStack(),
		mpscq.New().WithDualTailQueue(),
	} {
		q := mpscq.Build[string](b)
		q.Insert(mpscq.NewNode("hello"))
		node := q.Pop()
		if node == nil || node.Value != "hello" {
			t.Fatalf("%s: Pop() = %v, want hello", q.Desc(), node)
		}
		if q.Pop() != nil {
			t.Fatalf("%s: Pop() on drained queue did not return nil", q.Desc())
		}
	}
}

func TestRegistryLooksUpByName(t *testing.T) {
	r := mpscq.NewRegistry[int]()
	r.Register(mpscq.NewLinkedQueue[int]())
	r.Register(mpscq.NewTreiberQueue[int]())
	r.Register(mpscq.NewDualTailQueue[int]())

	wantNames := []string{"linked-mpsc", "treiber-mpsc", "locked-dual-tailq"}
	gotNames := r.Names()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", gotNames, wantNames)
	}
	for i, name := range wantNames {
		if gotNames[i] != name {
			t.Fatalf("Names()[%d] = %q, want %q", i, gotNames[i], name)
		}
	}

	b, ok := r.Get("treiber-mpsc")
	if !ok {
		t.Fatalf("Get(treiber-mpsc) not found")
	}
	b.Insert(mpscq.NewNode(1))
	if n := b.Pop(); n == nil || n.Value != 1 {
		t.Fatalf("Pop() via registry lookup = %v, want 1", n)
	}

	if _, ok := r.Get("does-not-exist"); ok {
		t.Fatalf("Get(does-not-exist) found something")
	}
}
