// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpscq

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates Pop found nothing to return. It is a control
// flow signal, not a failure: EMPTY is a normal, expected outcome of
// polling an MPSC queue.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    node, err := q.TryPop()
//	    if err == nil {
//	        backoff.Reset()
//	        process(node)
//	        continue
//	    }
//	    if mpscq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // unexpected
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates Pop found nothing to return.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a failure.
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
