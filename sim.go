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
	"crypto/rand"
	"io"
	"log/slog"
	"math"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/recorder"
	"github.com/zintix-labs/payline/sdk/core"
	"github.com/zintix-labs/payline/stats"
	"golang.org/x/sync/errgroup"
)

// Simulator 大量跑局並統計。每個 worker 一台 Machine、一個紀錄員，最後合併。
type Simulator struct {
	Name      string
	eng       *Engine
	cf        core.PRNGFactory
	initSeed  int64
	seedmaker *seedMaker
	log       *slog.Logger
	ShowPB    bool // 是否在 stderr 顯示進度條
}

// NewSimulator 以 crypto/rand 產生初始 seed
func NewSimulator(name string, eng *Engine, cf core.PRNGFactory) (*Simulator, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "new crypto seed")
	}
	return NewSimulatorWithSeed(name, eng, cf, seed.Int64())
}

// NewSimulatorWithSeed 同一個 seed、同樣的 worker 數會得到相同的報表。
func NewSimulatorWithSeed(name string, eng *Engine, cf core.PRNGFactory, seed int64) (*Simulator, error) {
	if eng == nil {
		return nil, errs.NewFatal("engine required")
	}
	if cf == nil {
		cf = core.Default()
	}
	return &Simulator{
		Name:      name,
		eng:       eng,
		cf:        cf,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		log:       eng.log,
	}, nil
}

func (s *Simulator) Seed() int64 { return s.initSeed }

func (s *Simulator) meta() recorder.Meta {
	return recorder.Meta{
		Name:  s.Name,
		Mode:  s.eng.Mode().String(),
		Reels: s.eng.gg.Cols,
		Rows:  s.eng.gg.Rows,
		Lines: s.eng.Lines(),
		Probs: s.eng.ReelProbs(),
	}
}

// Sim 單線模擬：第一台機台直接用初始 seed。
func (s *Simulator) Sim(rounds int) (*stats.StatReport, time.Duration, error) {
	return s.SimMP(context.Background(), rounds, 1)
}

// SimMP 以 mp 個 worker 各跑 rounds 局，合併後回傳報表與用時。
// 任一局出錯即取消其他 worker 並回傳第一個錯誤。
func (s *Simulator) SimMP(ctx context.Context, rounds int, mp int) (*stats.StatReport, time.Duration, error) {
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	s.seedmaker = newSeedMaker(s.initSeed)

	meta := s.meta()
	ms := make([]*Machine, mp)
	rs := make([]*recorder.SpinRecorder, mp)
	for i := range mp {
		seed := s.initSeed
		if i > 0 {
			seed = s.seedmaker.next()
		}
		m, err := NewMachine(s.eng, s.cf, seed)
		if err != nil {
			return nil, 0, err
		}
		r, err := recorder.NewSpinRecorder(meta)
		if err != nil {
			return nil, 0, err
		}
		ms[i], rs[i] = m, r
	}

	s.log.Info("sim start", "name", s.Name, "rounds", rounds, "workers", mp, "seed", s.initSeed, "mode", meta.Mode)

	bar := pb.New(rounds * mp)
	if !s.ShowPB {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for i := range mp {
		m, r := ms[i], rs[i]
		g.Go(func() error {
			for n := 0; n < rounds; n++ {
				// 每 1024 局看一次是否被取消
				if n&1023 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				grid, res, err := m.SpinGrid()
				if err != nil {
					return err
				}
				r.Record(grid, res)
				bar.Increment()
			}
			done.Add(int64(rounds))
			return nil
		})
	}
	err := g.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err != nil {
		s.log.Error("sim aborted", "name", s.Name, "done", done.Load(), "err", err)
		return nil, used, errs.Wrap(err, "simulation aborted")
	}

	merged, err := recorder.MergeSpinRecorder(rs)
	if err != nil {
		return nil, used, err
	}
	report := merged.Done()
	s.log.Info("sim done", "name", s.Name, "rounds", report.Summary.Rounds, "rtp", report.Summary.RTP, "used", used)
	return report, used, nil
}

const mask63 = uint64(1<<63) - 1

// seedMaker 產生不重複的 worker seed
type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以 CAS 推進全週期 LCG（mod 2^63），再用可逆的 mix63 打散。
// 可被多個 goroutine 同時呼叫（MachinePool 補機）。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next))
		}
	}
}

// mix63 只用可逆的 xor-shift 與乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
