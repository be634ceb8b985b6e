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

// PayTable 以圖標為索引的賠付表；PayTable[s][k-1] 為圖標 s 連 k 顆的獎金。
type PayTable [][]int

// Lookup 查表取得 (sym, combo) 的獎金。
//
// ok 只在 sym 完全沒有賠付列時為 false；其餘情況一律有定義：
//   - combo == 0、combo 超過該列長度、或該格為負值 => 0
func (p PayTable) Lookup(sym int, combo int) (prize int, ok bool) {
	if sym < 0 || sym >= len(p) {
		return 0, false
	}
	row := p[sym]
	if combo < 1 || combo > len(row) {
		return 0, true
	}
	if v := row[combo-1]; v > 0 {
		return v, true
	}
	return 0, true
}

// MinCombo 回傳圖標 s 最短可得獎的連線長度，沒有任何獎金回傳 0。
func (p PayTable) MinCombo(sym int) int {
	if sym < 0 || sym >= len(p) {
		return 0
	}
	for i, v := range p[sym] {
		if v > 0 {
			return i + 1
		}
	}
	return 0
}
