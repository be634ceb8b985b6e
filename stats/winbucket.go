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

package stats

import "sync"

const (
	maxLutMult int = 2000
	maxMult    int = 10000
)

// WinBuckets 贏倍區間（以單局總押注為 1 倍）
//
// 請勿修改預設值
//   - 區間: [0,0], (0,1), [1,2), [2,5), ..., [2000,10000), [10000,+inf)
type WinBuckets struct {
	winBucket    []int
	winBucketStr []string
	mu           sync.Mutex
	winBucketMap map[int]*WinBucket
}

// WinBucket 某個押注額下「贏分 -> 區間索引」的 O(1) 查表
type WinBucket struct {
	maxCheckWin  int
	lutMaxWin    int
	winBucketLUT []int
	justOverIdx  int
	maxIdx       int
}

var Buckets = &WinBuckets{
	winBucket:    []int{0, 1, 2, 5, 10, 20, 50, 100, 300, 500, 1000, 2000, 10000},
	winBucketStr: []string{"[0,0]", "(0,1)", "[1,2)", "[2,5)", "[5,10)", "[10,20)", "[20,50)", "[50,100)", "[100,300)", "[300,500)", "[500,1000)", "[1000,2000)", "[2000,10000)", "[10000,+inf)"},
	winBucketMap: make(map[int]*WinBucket),
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.winBucketStr
}

// GetBucketByBet 取得（必要時建立）押注額 bet 的查表；bet < 1 視為 1。
func (b *WinBuckets) GetBucketByBet(bet int) *WinBucket {
	bet = max(1, bet)
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.winBucketMap[bet]; ok {
		return r
	}
	r := b.build(bet)
	b.winBucketMap[bet] = r
	return r
}

func (b *WinBuckets) build(bet int) *WinBucket {
	// LUT 只建到 2000 倍
	maxLut := bet * maxLutMult

	winGp := make([]int, len(b.winBucket))
	for i, v := range b.winBucket {
		winGp[i] = bet * v
	}

	lut := make([]int, maxLut)
	idx := 1
	last := len(winGp) - 1
	for i := 1; i < maxLut; i++ {
		for idx < last && i >= winGp[idx] {
			idx++
		}
		lut[i] = idx
	}

	return &WinBucket{
		maxCheckWin:  bet * maxMult,
		lutMaxWin:    maxLut,
		winBucketLUT: lut,
		justOverIdx:  len(winGp) - 1,
		maxIdx:       len(winGp),
	}
}

// Index 回傳贏分所屬區間
func (wb *WinBucket) Index(win int) int {
	if win <= 0 {
		return 0
	}
	if win >= wb.lutMaxWin {
		if win >= wb.maxCheckWin {
			return wb.maxIdx
		}
		return wb.justOverIdx
	}
	return wb.winBucketLUT[win]
}
