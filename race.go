// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package mpscq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the multi-producer stress scenarios, which
// trigger false positives against the race detector's happens-before
// model for lock-free pointer exchanges.
const RaceEnabled = true
