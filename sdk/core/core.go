// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package core 定義引擎使用的亂數來源能力。
//
// 亂數來源一律以參數傳入（不使用全域 rand），因此：
//   - 測試可用固定 seed 的 PRNG 重現任一局。
//   - 併發模擬時每個 worker 持有獨立實例，不共享可變狀態。
package core

// RAND 定義核心亂數取樣能力。
//
// 實作不需要是 goroutine-safe；同一個實例不應被多個 goroutine 同時使用。
type RAND interface {
	// Uint64 回傳 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 或來源失效回傳 -1。
	IntN(int) int
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// PRNG 為可重現的亂數來源：可取樣，也可保存/還原狀態（回放用）。
type PRNG interface {
	RAND
	Restorable
}

// PRNGFactory 以 seed 建立 PRNG。
//
// 合約：同一實作同一版本下 New(seed) 必須是決定性的，
// 相同 seed 產生相同的輸出序列。
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG 是預設的 PRNGFactory（PCG）。
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewPCG(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}
