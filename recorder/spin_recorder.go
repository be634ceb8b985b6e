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

package recorder

import (
	"slices"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/gen"
	"github.com/zintix-labs/payline/stats"
)

// Meta 紀錄員需要的機台描述
type Meta struct {
	Name  string
	Mode  string
	Reels int
	Rows  int
	Lines int
	// Probs[c][s] 為第 c 軸抽到圖標 s 的設定機率
	Probs [][]float64
}

// SpinRecorder 遊戲紀錄員
//
// 只累加 int，Done 時才輸出統計報表。不是 goroutine-safe，每個 worker 一個，最後 Merge。
type SpinRecorder struct {
	Meta    Meta
	Basic   *BasicRecord
	Dist    *DistRecord
	Line    *LineRecord
	Symbols [][]int // Symbols[c][s] 第 c 軸抽到圖標 s 的次數
}

// BasicRecord 基本資料
type BasicRecord struct {
	TotalBet      int
	TotalWin      int
	TotalWinSqSum int // 平方和
	MaxWin        int
	NoWin         int
	Rounds        int
}

// DistRecord 贏倍區間落點
type DistRecord struct {
	Bucket  *stats.WinBucket
	Collect []int
}

// LineRecord 每條線的得獎次數與獎金
type LineRecord struct {
	Hits []int
	Wins []int
}

func NewSpinRecorder(meta Meta) (*SpinRecorder, error) {
	if meta.Reels <= 0 || meta.Rows <= 0 {
		return nil, errs.Fatalf("recorder: invalid grid %dx%d", meta.Reels, meta.Rows)
	}
	if meta.Lines < 0 {
		return nil, errs.Fatalf("recorder: invalid lines %d", meta.Lines)
	}
	if len(meta.Probs) != meta.Reels {
		return nil, errs.Fatalf("recorder: probs for %d reels, want %d", len(meta.Probs), meta.Reels)
	}
	s := &SpinRecorder{
		Meta:  meta,
		Basic: new(BasicRecord),
		Dist: &DistRecord{
			Bucket:  stats.Buckets.GetBucketByBet(meta.Lines),
			Collect: make([]int, len(stats.Buckets.WinBucketStr())),
		},
		Line: &LineRecord{
			Hits: make([]int, meta.Lines),
			Wins: make([]int, meta.Lines),
		},
		Symbols: make([][]int, meta.Reels),
	}
	for c, ps := range meta.Probs {
		s.Symbols[c] = make([]int, len(ps))
	}
	return s, nil
}

// Record 以一局的盤面與結果更新計數；g 可為 nil（不計圖標頻率）。
func (s *SpinRecorder) Record(g *gen.Grid, res *buf.Result) {
	w := res.Prize
	b := s.Basic
	b.TotalBet += s.Meta.Lines
	b.TotalWin += w
	b.TotalWinSqSum += w * w
	b.MaxWin = max(b.MaxWin, w)
	if w == 0 {
		b.NoWin++
	}
	b.Rounds++

	s.Dist.Collect[s.Dist.Bucket.Index(w)]++

	for _, pl := range res.Lines {
		if pl.I >= 0 && pl.I < len(s.Line.Hits) {
			s.Line.Hits[pl.I]++
			s.Line.Wins[pl.I] += pl.Prize
		}
	}

	if g != nil {
		s.recordSymbols(g)
	}
}

// 每次抽樣算一次：window 模式每軸一次，逐格模式每格一次
func (s *SpinRecorder) recordSymbols(g *gen.Grid) {
	if g.Window != nil {
		for c, sym := range g.Window {
			s.bump(c, sym)
		}
		return
	}
	for row := 0; row < g.Rows; row++ {
		for c := 0; c < g.Cols; c++ {
			s.bump(c, g.At(c, row))
		}
	}
}

func (s *SpinRecorder) bump(c, sym int) {
	if c < len(s.Symbols) && sym >= 0 && sym < len(s.Symbols[c]) {
		s.Symbols[c][sym]++
	}
}

// MergeSpinRecorder 合併多個 worker 的紀錄；機台描述不一致時回傳錯誤。
func MergeSpinRecorder(rs []*SpinRecorder) (*SpinRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewFatal("merge spin record err: empty")
	}
	r0 := rs[0]
	s, err := NewSpinRecorder(r0.Meta)
	if err != nil {
		return nil, err
	}
	for _, v := range rs {
		if v.Meta.Name != r0.Meta.Name || v.Meta.Lines != r0.Meta.Lines || v.Meta.Reels != r0.Meta.Reels {
			return nil, errs.NewFatal("merge spin record err: different machine")
		}
		s.Basic.TotalBet += v.Basic.TotalBet
		s.Basic.TotalWin += v.Basic.TotalWin
		s.Basic.TotalWinSqSum += v.Basic.TotalWinSqSum
		s.Basic.MaxWin = max(s.Basic.MaxWin, v.Basic.MaxWin)
		s.Basic.NoWin += v.Basic.NoWin
		s.Basic.Rounds += v.Basic.Rounds

		for i, c := range v.Dist.Collect {
			s.Dist.Collect[i] += c
		}
		for i := range v.Line.Hits {
			s.Line.Hits[i] += v.Line.Hits[i]
			s.Line.Wins[i] += v.Line.Wins[i]
		}
		for c := range v.Symbols {
			for sym, n := range v.Symbols[c] {
				s.Symbols[c][sym] += n
			}
		}
	}
	return s, nil
}

// Done 輸出統計報表（已呼叫過 StatReport.Done）
func (s *SpinRecorder) Done() *stats.StatReport {
	bet := float64(max(1, s.Meta.Lines))
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Name:        s.Meta.Name,
			Mode:        s.Meta.Mode,
			Reels:       s.Meta.Reels,
			Rows:        s.Meta.Rows,
			Lines:       s.Meta.Lines,
			TotalBet:    s.Basic.TotalBet,
			TotalWin:    s.Basic.TotalWin,
			MaxWin:      s.Basic.MaxWin,
			NoWinRounds: s.Basic.NoWin,
			Rounds:      s.Basic.Rounds,
		},
		Mult: &stats.MultReport{
			TotalWinMult:      float64(s.Basic.TotalWin) / bet,
			TotalWinMultSqSum: float64(s.Basic.TotalWinSqSum) / (bet * bet),
		},
		Dist: &stats.DistReport{
			WinBucket: stats.Buckets.WinBucketStr(),
			Collect:   slices.Clone(s.Dist.Collect),
		},
		Lines: &stats.LineReport{
			Hits: slices.Clone(s.Line.Hits),
			Wins: slices.Clone(s.Line.Wins),
		},
		Symbols: make([]stats.ReelFidelity, len(s.Symbols)),
	}
	for c, obs := range s.Symbols {
		report.Symbols[c] = stats.NewReelFidelity(c, slices.Clone(obs), s.Meta.Probs[c])
	}
	report.Done()
	return report
}
