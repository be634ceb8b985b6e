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
	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/gen"
)

// Project 依線表 mask 取出盤面上該線呈現的圖標序列：ss[col] = grid(col, mask[col])。
//
// 以 GenByReelWindow 生成的盤面每軸各列相同，所以 ss[col] 就是 Window[col]；
// mask 的列值只用來區分不同走線。以 GenByCell 生成時則真正讀取該格。
func Project(g *gen.Grid, mask []int) ([]int, error) {
	if len(mask) != g.Cols {
		return nil, errs.Configf("line has %d positions, grid has %d columns", len(mask), g.Cols)
	}
	ss := make([]int, g.Cols)
	for col, row := range mask {
		if !g.InRange(col, row) {
			return nil, errs.Configf("line col %d: row %d out of range [0,%d)", col, row, g.Rows)
		}
		ss[col] = g.At(col, row)
	}
	return ss, nil
}
