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

package spec

import (
	"github.com/zintix-labs/payline/errs"
)

// Wild 指定一個百搭圖標（連線時可代任任何圖標）。
type Wild struct {
	Index int `yaml:"index" json:"index"`
}

// Config 描述一台線獎機台的完整設定。
//
// Fields:
//   - R: 盤面列數，線表中的每個值都必須落在 [0, R)
//   - W: 每軸的圖標權重，len(W) 即軸數（= 盤面行數）；W[c][s] 為第 c 軸抽到圖標 s 的權重
//   - M: 線表，每條線每軸一個列索引，len(M[i]) 必須等於 len(W)
//   - P: 賠付表，P[s][k-1] 為圖標 s 由最左軸起連續 k 顆的獎金
//   - Wild: 選填，百搭圖標
//
// Config 由呼叫端持有，引擎只讀。多個 goroutine 同時讀取不需加鎖，但不可同時修改。
type Config struct {
	R    int      `yaml:"r"              json:"r"`
	W    [][]int  `yaml:"w"              json:"w"`
	M    [][]int  `yaml:"m"              json:"m"`
	P    PayTable `yaml:"p"              json:"p"`
	Wild *Wild    `yaml:"wild,omitempty" json:"wild,omitempty"`
}

// Reels 回傳軸數
func (c *Config) Reels() int { return len(c.W) }

// WildIndex 回傳百搭圖標索引；未設定時 ok 為 false。
func (c *Config) WildIndex() (idx int, ok bool) {
	if c.Wild == nil {
		return -1, false
	}
	return c.Wild.Index, true
}

// Validate 檢查設定的一致性，所有問題都回傳 errs.ErrConfig 類錯誤。
//
// 這裡的檢查都是「結構性」的，能在任何抽樣發生前發現；
// 權重總和與負權重的檢查另由 sampler 建表時負責。
func (c *Config) Validate() error {
	if c == nil {
		return errs.Configf("config is nil")
	}
	if c.R <= 0 {
		return errs.Configf("rows must > 0, got %d", c.R)
	}
	reels := len(c.W)
	if reels == 0 {
		return errs.Configf("w is empty: at least one reel is required")
	}
	for i, line := range c.M {
		if len(line) != reels {
			return errs.Configf("line %d has %d positions, want %d (one per reel)", i, len(line), reels)
		}
		for col, row := range line {
			if row < 0 || row >= c.R {
				return errs.Configf("line %d col %d: row %d out of range [0,%d)", i, col, row, c.R)
			}
		}
	}
	if len(c.P) == 0 {
		return errs.Configf("p is empty")
	}
	for col, ws := range c.W {
		if len(ws) > len(c.P) {
			return errs.Configf("reel %d defines %d symbols but p only has %d entries", col, len(ws), len(c.P))
		}
	}
	if idx, ok := c.WildIndex(); ok {
		if idx < 0 || idx >= len(c.P) {
			return errs.Configf("wild index %d has no entry in p (len %d)", idx, len(c.P))
		}
	}
	return nil
}
