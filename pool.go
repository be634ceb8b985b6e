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
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/core"
)

// MachinePool 管理同一個 Engine 的多台 Machine，供併發 Spin 借用。
//
// 每台 Machine 有自己的 PRNG（seed 由 seedMaker 依序產生），所以平行的局之間不共享亂數狀態。
// 某台機台在 Spin 中 panic 或回報亂數來源錯誤時，視為狀態不可信：丟棄並補上一台新機。
type MachinePool struct {
	eng         *Engine
	cf          core.PRNGFactory
	initSeed    int64
	seedMaker   *seedMaker
	pool        chan *Machine // 可借出的機台
	done        chan struct{} // 關閉後不再借出/歸還/補機
	closeOnce   sync.Once
	poolsize    int
	rebuild     atomic.Int32 // 補機次數
	inflight    atomic.Int32 // 借出中
	panics      atomic.Int32
	fatals      atomic.Int32 // 亂數來源失效次數
	closeReason atomic.Value // string
}

// NewMachinePool 建立 n 台機台（至少 1 台）
func NewMachinePool(eng *Engine, cf core.PRNGFactory, n int, seed int64) (*MachinePool, error) {
	if eng == nil {
		return nil, errs.NewFatal("engine required")
	}
	if cf == nil {
		cf = core.Default()
	}
	n = max(1, n)
	p := &MachinePool{
		eng:       eng,
		cf:        cf,
		initSeed:  seed,
		seedMaker: newSeedMaker(seed),
		pool:      make(chan *Machine, n),
		done:      make(chan struct{}),
		poolsize:  n,
	}
	p.closeReason.Store("")
	for i := 0; i < n; i++ {
		m, err := NewMachine(eng, cf, p.seedMaker.next())
		if err != nil {
			return nil, err
		}
		p.pool <- m
	}
	return p, nil
}

// Close 進入關閉狀態，之後的 Spin 直接回錯誤。可重複呼叫。
func (p *MachinePool) Close() {
	p.closeWithReason("closed")
}

func (p *MachinePool) Closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *MachinePool) closeWithReason(reason string) {
	p.closeOnce.Do(func() {
		p.closeReason.Store(reason)
		close(p.done)
	})
}

// Spin 借一台機台跑一局。ctx 取消或池已關閉時不阻塞，直接回錯誤。
func (p *MachinePool) Spin(ctx context.Context) (res *buf.Result, err error) {
	var m *Machine
	select {
	case <-p.done:
		return nil, errs.NewFatal("machine pool closed: " + p.ClosedReason())
	case <-ctx.Done():
		return nil, errs.NewWarn("spin canceled: " + ctx.Err().Error())
	case m = <-p.pool:
		p.inflight.Add(1)
	}

	broken := false
	defer func() {
		p.inflight.Add(-1)
		if r := recover(); r != nil {
			broken = true
			p.panics.Add(1)
			res = nil
			err = errs.NewFatal(fmt.Sprintf("machine panic: %v", r))
		}
		if p.Closed() {
			return
		}
		if broken {
			p.replace()
			return
		}
		select {
		case <-p.done:
		case p.pool <- m:
		}
	}()

	res, err = m.Spin()
	if errs.IsRandomSource(err) {
		broken = true
		p.fatals.Add(1)
	}
	return res, err
}

// replace 補一台新機維持容量
func (p *MachinePool) replace() {
	nm, err := NewMachine(p.eng, p.cf, p.seedMaker.next())
	p.rebuild.Add(1)
	if err != nil {
		p.closeWithReason("rebuild_failed")
		return
	}
	select {
	case <-p.done:
	case p.pool <- nm:
	}
}

func (p *MachinePool) ClosedReason() string {
	if s, ok := p.closeReason.Load().(string); ok {
		return s
	}
	return ""
}

// MachinePoolMetrics 拉取式的觀測快照；Available 來自 len(chan)，高併發下為近似值。
type MachinePoolMetrics struct {
	PoolSize    int    `json:"pool_size"`
	Available   int    `json:"available"`
	Inflight    int    `json:"inflight"`
	Rebuild     int    `json:"rebuild"`
	Panics      int    `json:"panics"`
	Fatals      int    `json:"fatals"`
	Closed      bool   `json:"closed"`
	CloseReason string `json:"close_reason"`
}

func (p *MachinePool) Metrics() MachinePoolMetrics {
	return MachinePoolMetrics{
		PoolSize:    p.poolsize,
		Available:   len(p.pool),
		Inflight:    int(p.inflight.Load()),
		Rebuild:     int(p.rebuild.Load()),
		Panics:      int(p.panics.Load()),
		Fatals:      int(p.fatals.Load()),
		Closed:      p.Closed(),
		CloseReason: p.ClosedReason(),
	}
}
