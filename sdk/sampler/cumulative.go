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

// 本檔案 (cumulative.go) 實作累積權重 (Cumulative Sum) 加權抽樣。
//
// 演算法：
//   - 建表時計算前綴和 acc[i] = w[0] + ... + w[i]。
//   - 抽樣時取 x ∈ [0, total)，回傳最小的 s 使 acc[s] > x。
//
// 特性：
//   - 建表 O(N)，抽樣 O(log N)（二分搜尋），每次抽樣固定消耗一次 IntN。
//   - P(s) = w[s] / total，完全精確；權重為 0 的圖標永遠不會被抽中。
//   - 記憶體與權重總和無關。

package sampler

import (
	"math"
	"sort"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/core"
)

// Cumulative 一個軸的累積權重表，建好後唯讀，可被多個 goroutine 共用。
type Cumulative struct {
	acc   []int
	total int
}

// BuildCumulative 根據權重建立累積表。
//
// 權重為負、總和為 0、或總和超出 int 範圍皆回傳 errs.ErrConfig 類錯誤。
func BuildCumulative[T Integers](weights []T) (Cumulative, error) {
	acc := make([]int, len(weights))
	sum := uint64(0)
	for i, w := range weights {
		if w < 0 {
			return Cumulative{}, errs.Configf("negative weight %d at symbol %d", int64(w), i)
		}
		uw := uint64(w)
		if uw > math.MaxInt || sum > math.MaxInt-uw {
			return Cumulative{}, errs.Configf("total weight overflows int at symbol %d", i)
		}
		sum += uw
		acc[i] = int(sum)
	}
	if sum == 0 {
		return Cumulative{}, errs.Configf("weights sum to zero")
	}
	return Cumulative{acc: acc, total: int(sum)}, nil
}

// Total 回傳權重總和
func (c Cumulative) Total() int { return c.total }

// Len 回傳圖標數量
func (c Cumulative) Len() int { return len(c.acc) }

// Prob 回傳圖標 s 的理論機率 w[s]/total
func (c Cumulative) Prob(s int) float64 {
	if s < 0 || s >= len(c.acc) || c.total == 0 {
		return 0
	}
	w := c.acc[s]
	if s > 0 {
		w -= c.acc[s-1]
	}
	return float64(w) / float64(c.total)
}

// Pick 從 rng 取一個 [0,total) 的值並回傳對應圖標。
//
// rng 回傳值不在 [0,total) 時回傳 errs.ErrRandomSource 類錯誤，不重試。
func (c Cumulative) Pick(rng core.RAND) (int, error) {
	if c.total <= 0 {
		return -1, errs.Configf("cumulative table is empty")
	}
	x := rng.IntN(c.total)
	return c.Index(x)
}

// Index 回傳 x 對應的圖標：最小的 s 使 acc[s] > x。
func (c Cumulative) Index(x int) (int, error) {
	if x < 0 || x >= c.total {
		return -1, errs.RandomSourcef("draw %d out of range [0,%d)", x, c.total)
	}
	return sort.Search(len(c.acc), func(i int) bool { return c.acc[i] > x }), nil
}
