// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// spinlock is a test-and-set lock built from an atomix.Bool and the
// package's CPU-pause retry primitive. The standard library has no
// portable userspace spinlock, and DualTailQueue's plist needs exactly
// this: short critical sections where blocking would cost more than
// spinning. LinkedQueue's optional consume-lock uses the same
// CAS-on-atomix.Bool idiom inline, since it is a single field rather
// than a reusable type there.
type spinlock struct {
	held atomix.Bool
}

func (l *spinlock) Lock() {
	sw := spin.Wait{}
	for !l.held.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
}

func (l *spinlock) Unlock() {
	l.held.StoreRelease(false)
}
