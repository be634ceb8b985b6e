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

package calc

import (
	"fmt"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/gen"
	"github.com/zintix-labs/payline/spec"
)

// LineCalculator 依線表計算盤面分數。建好後唯讀，可被多個 goroutine 共用。
type LineCalculator struct {
	Cols      int
	Rows      int
	LineCount int
	lines     [][]int
	payTable  spec.PayTable
	wild      int
}

// NewLineCalculator 建立算分器；設定不合法時回傳 errs.ErrConfig 類錯誤。
func NewLineCalculator(cfg *spec.Config) (*LineCalculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wild := NoWild
	if idx, ok := cfg.WildIndex(); ok {
		wild = idx
	}
	return &LineCalculator{
		Cols:      cfg.Reels(),
		Rows:      cfg.R,
		LineCount: len(cfg.M),
		lines:     cfg.M,
		payTable:  cfg.P,
		wild:      wild,
	}, nil
}

// Wild 回傳百搭圖標，未設定為 NoWild
func (lc *LineCalculator) Wild() int { return lc.wild }

// CalcGrid 依線表索引遞增逐線計算並彙總。
// 任一條線出錯即整局中止，不回傳部分結果。
func (lc *LineCalculator) CalcGrid(g *gen.Grid) (*buf.Result, error) {
	if g.Cols != lc.Cols || g.Rows != lc.Rows {
		return nil, errs.Configf("grid %dx%d does not match config %dx%d", g.Cols, g.Rows, lc.Cols, lc.Rows)
	}
	res := buf.NewResult(lc.LineCount)
	for i := range lc.lines {
		pl, err := lc.CalcLine(g, i)
		if err != nil {
			return nil, err
		}
		res.RecordLine(pl)
	}
	return res, nil
}

// CalcLine 計算第 i 條線：投影 -> 連線判定 -> 查表。
func (lc *LineCalculator) CalcLine(g *gen.Grid, i int) (buf.ProcessedLine, error) {
	if i < 0 || i >= len(lc.lines) {
		return buf.ProcessedLine{}, errs.Configf("line %d out of range [0,%d)", i, len(lc.lines))
	}
	ss, err := Project(g, lc.lines[i])
	if err != nil {
		return buf.ProcessedLine{}, errs.Wrap(err, fmt.Sprintf("project line %d", i))
	}
	c, prize, err := BestCombo(lc.payTable, EvalCombo(ss, lc.wild))
	if err != nil {
		return buf.ProcessedLine{}, errs.Wrap(err, fmt.Sprintf("resolve line %d", i))
	}
	return buf.ProcessedLine{
		I:      i,
		Combo:  c.Count,
		Prize:  prize,
		WC:     c.Wilds,
		SS:     ss,
		Symbol: c.Symbol,
	}, nil
}
