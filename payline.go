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

// Package payline 是線獎機台單局引擎的入口。
//
// 一局的流程：
//  1. 依每軸權重抽出盤面（sdk/gen + sdk/sampler）
//  2. 把每條線投影成圖標序列，計算最左起的連線（sdk/calc）
//  3. 查賠付表，彙總所有得獎線（sdk/buf）
//
// 亂數來源一律由呼叫端傳入（core.RAND），同一個來源狀態必得同一個結果。
// 外圍工具：Machine（固定 seed 可回放）、MachinePool（併發服務）、Simulator（大量模擬統計）。
package payline

import (
	"log/slog"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/logger"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/calc"
	"github.com/zintix-labs/payline/sdk/core"
	"github.com/zintix-labs/payline/sdk/gen"
	"github.com/zintix-labs/payline/spec"
)

type options struct {
	mode gen.GenMode
	log  *slog.Logger
}

// Option 調整 Engine 的組裝方式
type Option func(*options)

// WithRowSampling 每格獨立抽樣（每軸抽 R 次）；預設每軸只抽一次。
func WithRowSampling() Option {
	return func(o *options) { o.mode = gen.GenByCell }
}

// WithGenMode 直接指定盤面生成模式
func WithGenMode(m gen.GenMode) Option {
	return func(o *options) { o.mode = m }
}

// WithLogger 注入 logger；未注入時不輸出。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{mode: gen.GenByReelWindow, log: logger.Silent()}
	for _, fn := range opts {
		if fn != nil {
			fn(o)
		}
	}
	return o
}

// Engine 組好的單局引擎：盤面生成器 + 算分器。
//
// 建好後唯讀，可被多個 goroutine 共用；但每個 goroutine 要用自己的亂數來源。
type Engine struct {
	cfg *spec.Config
	gg  *gen.GridGenerator
	lc  *calc.LineCalculator
	log *slog.Logger
}

// NewEngine 驗證設定並預先建好每軸的累積權重表。
// 任何設定問題都在這裡以 errs.ErrConfig 回報，不會延到抽樣時。
func NewEngine(cfg *spec.Config, opts ...Option) (*Engine, error) {
	o := buildOptions(opts)
	if err := cfg.Validate(); err != nil {
		o.log.Debug("config rejected", "err", err)
		return nil, err
	}
	gg, err := gen.NewGridGenerator(cfg, o.mode)
	if err != nil {
		o.log.Debug("config rejected", "err", err)
		return nil, err
	}
	lc, err := calc.NewLineCalculator(cfg)
	if err != nil {
		o.log.Debug("config rejected", "err", err)
		return nil, err
	}
	return &Engine{cfg: cfg, gg: gg, lc: lc, log: o.log}, nil
}

func (e *Engine) Config() *spec.Config { return e.cfg }

func (e *Engine) Mode() gen.GenMode { return e.gg.Mode }

// Lines 回傳線數
func (e *Engine) Lines() int { return e.lc.LineCount }

// ReelProbs 回傳 [軸][圖標] 的設定機率
func (e *Engine) ReelProbs() [][]float64 {
	out := make([][]float64, e.gg.Cols)
	for c := range out {
		reel := e.gg.Reel(c)
		out[c] = make([]float64, reel.Len())
		for s := range out[c] {
			out[c][s] = reel.Prob(s)
		}
	}
	return out
}

// Spin 抽一個盤面並算分
func (e *Engine) Spin(rng core.RAND) (*buf.Result, error) {
	_, res, err := e.SpinGrid(rng)
	return res, err
}

// SpinGrid 與 Spin 相同，另外回傳抽出的盤面（統計與除錯用）。
// 出錯時兩者都是 nil。
func (e *Engine) SpinGrid(rng core.RAND) (*gen.Grid, *buf.Result, error) {
	g, err := e.gg.GenGrid(rng)
	if err != nil {
		return nil, nil, errs.Wrap(err, "generate grid")
	}
	res, err := e.lc.CalcGrid(g)
	if err != nil {
		return nil, nil, errs.Wrap(err, "calc grid")
	}
	return g, res, nil
}

// Evaluate 以 cfg 與 rng 算出一局結果。
//
// 設定先完整驗證，驗證失敗時不會向 rng 取任何亂數。
// 任一步出錯即回傳錯誤，不回傳部分結果。
func Evaluate(cfg *spec.Config, rng core.RAND, opts ...Option) (*buf.Result, error) {
	e, err := NewEngine(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return e.Spin(rng)
}
