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

package gen

import (
	"fmt"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/core"
	"github.com/zintix-labs/payline/sdk/sampler"
	"github.com/zintix-labs/payline/spec"
)

// GenMode 決定盤面如何由軸權重生成
type GenMode uint8

const (
	// GenByReelWindow 每軸只抽一次，該軸每一列都顯示同一個圖標（預設）
	GenByReelWindow GenMode = iota
	// GenByCell 每軸抽 Rows 次，每格獨立
	GenByCell
)

var genModeNames = map[GenMode]string{
	GenByReelWindow: "reel_window",
	GenByCell:       "cell",
}

func (m GenMode) String() string {
	if s, ok := genModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("GenMode(%d)", uint8(m))
}

// GenGridFn 生成函式，依 GridGenerator 的快取資料產出一個新盤面
type GenGridFn func(*GridGenerator, core.RAND) (*Grid, error)

// genGridMap 將 GenMode 與實際生成函式綁定，初始化時決定後便不再修改。
var genGridMap = map[GenMode]GenGridFn{
	GenByReelWindow: genGridByReelWindow,
	GenByCell:       genGridByCell,
}

// Grid 一局的盤面。
//
// Cells 以 row*Cols+col 攤平；Window 為每軸抽出的圖標（僅 GenByReelWindow 有值）。
type Grid struct {
	Cols   int
	Rows   int
	Cells  []int
	Window []int
}

// At 回傳 (col,row) 的圖標
func (g *Grid) At(col, row int) int {
	return g.Cells[row*g.Cols+col]
}

// InRange 回傳 (col,row) 是否在盤面內
func (g *Grid) InRange(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// GridGenerator 保存生成盤面所需的預處理資料（每軸的累積權重表）。
// 建好後唯讀，可被多個 goroutine 共用；亂數來源由每次呼叫傳入。
type GridGenerator struct {
	Cols  int
	Rows  int
	Mode  GenMode
	reels []sampler.Cumulative
	genFn GenGridFn
}

// NewGridGenerator 依設定建立生成器，權重有誤時回傳 errs.ErrConfig 類錯誤。
func NewGridGenerator(cfg *spec.Config, mode GenMode) (*GridGenerator, error) {
	if cfg == nil {
		return nil, errs.Configf("config is nil")
	}
	if cfg.R <= 0 || len(cfg.W) == 0 {
		return nil, errs.Configf("invalid grid dimensions: cols=%d rows=%d", len(cfg.W), cfg.R)
	}
	fn, ok := genGridMap[mode]
	if !ok {
		return nil, errs.Configf("unknown gen mode %v", mode)
	}
	gg := &GridGenerator{
		Cols:  len(cfg.W),
		Rows:  cfg.R,
		Mode:  mode,
		reels: make([]sampler.Cumulative, len(cfg.W)),
		genFn: fn,
	}
	for col, ws := range cfg.W {
		c, err := sampler.BuildCumulative(ws)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("reel %d", col))
		}
		gg.reels[col] = c
	}
	return gg, nil
}

// Reel 回傳第 col 軸的累積權重表
func (gg *GridGenerator) Reel(col int) sampler.Cumulative {
	return gg.reels[col]
}

// GenGrid 生成一個新盤面。任一次抽樣失敗即中止並回傳錯誤，不回傳部分盤面。
func (gg *GridGenerator) GenGrid(rng core.RAND) (*Grid, error) {
	if rng == nil {
		return nil, errs.RandomSourcef("random source is nil")
	}
	return gg.genFn(gg, rng)
}

// 每軸抽一次，依軸序；同軸每列都填同一個圖標
func genGridByReelWindow(gg *GridGenerator, rng core.RAND) (*Grid, error) {
	cols, rows := gg.Cols, gg.Rows
	g := &Grid{
		Cols:   cols,
		Rows:   rows,
		Cells:  make([]int, cols*rows),
		Window: make([]int, cols),
	}
	for col := range cols {
		sym, err := gg.reels[col].Pick(rng)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("sample reel %d", col))
		}
		g.Window[col] = sym
		for row := range rows {
			g.Cells[row*cols+col] = sym
		}
	}
	return g, nil
}

// 每格獨立抽樣，依軸序、再依列序
func genGridByCell(gg *GridGenerator, rng core.RAND) (*Grid, error) {
	cols, rows := gg.Cols, gg.Rows
	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]int, cols*rows),
	}
	for col := range cols {
		reel := gg.reels[col]
		for row := range rows {
			sym, err := reel.Pick(rng)
			if err != nil {
				return nil, errs.Wrap(err, fmt.Sprintf("sample reel %d row %d", col, row))
			}
			g.Cells[row*cols+col] = sym
		}
	}
	return g, nil
}
