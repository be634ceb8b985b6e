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

package payline

import (
	"crypto/rand"
	"math"
	"math/big"
	"sync"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/core"
	"github.com/zintix-labs/payline/sdk/gen"
)

// Machine 是一台持有自己 PRNG 的機台：Engine（唯讀、可共用）+ 一個可快照的亂數來源。
//
// 並發語意：Spin 以 mutex 保護 PRNG，同一台 Machine 可被多 goroutine 呼叫但會序列化；
// 要真正平行請建多台（見 MachinePool / Simulator）。
//
// 重現：同一個 Engine、同一個 seed 會得到相同的結果序列。
// 任一局都可以用該局開始前的 Snapshot 透過 Replay 重算。
type Machine struct {
	eng      *Engine
	prng     core.PRNG
	initseed int64 // 出生 seed（便於追溯；完整重現請用 Snapshot/Restore）
	mu       sync.Mutex
}

// NewMachine 以指定 seed 建立 Machine；cf 為 nil 時使用預設 PCG。
func NewMachine(eng *Engine, cf core.PRNGFactory, seed int64) (*Machine, error) {
	if eng == nil {
		return nil, errs.NewFatal("engine required")
	}
	if cf == nil {
		cf = core.Default()
	}
	return &Machine{eng: eng, prng: cf.New(seed), initseed: seed}, nil
}

// NewMachineRandSeed 以 crypto/rand 產生 seed 建立 Machine，seed 可由 Seed() 取回。
func NewMachineRandSeed(eng *Engine, cf core.PRNGFactory) (*Machine, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "new crypto seed")
	}
	return NewMachine(eng, cf, seed.Int64())
}

func (m *Machine) Seed() int64 { return m.initseed }

func (m *Machine) Engine() *Engine { return m.eng }

// Spin 跑一局
func (m *Machine) Spin() (*buf.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.Spin(m.prng)
}

// SpinGrid 跑一局並回傳盤面
func (m *Machine) SpinGrid() (*gen.Grid, *buf.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.SpinGrid(m.prng)
}

// Snapshot 取得目前 PRNG 狀態；下一局的結果完全由它決定。
func (m *Machine) Snapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prng.Snapshot()
}

// Restore 把 PRNG 還原到 snap
func (m *Machine) Restore(snap []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.prng.Restore(snap); err != nil {
		return errs.Wrap(err, "restore prng")
	}
	return nil
}

// Replay 以 snap 重算一局，完成後把 PRNG 還原回呼叫前的狀態。
func (m *Machine) Replay(snap []byte) (*gen.Grid, *buf.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rem, err := m.prng.Snapshot()
	if err != nil {
		return nil, nil, errs.Wrap(err, "snapshot before replay")
	}
	if err := m.prng.Restore(snap); err != nil {
		return nil, nil, errs.Wrap(err, "restore replay state")
	}
	g, res, spinErr := m.eng.SpinGrid(m.prng)
	if err := m.prng.Restore(rem); err != nil {
		return nil, nil, errs.Wrap(err, "restore back after replay")
	}
	return g, res, spinErr
}
