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

package buf

// ProcessedLine 單條線的算分細項
type ProcessedLine struct {
	I      int   `json:"i"`     // 線表索引
	Combo  int   `json:"combo"` // 由最左軸起的連線長度
	Prize  int   `json:"prize"` // 本線獎金
	WC     int   `json:"wc"`    // 連線中 wild 的數量
	SS     []int `json:"ss"`    // 本線實際呈現的完整圖標序列（回放用）
	Symbol int   `json:"sym"`   // 連線目標圖標；全 wild 時為 wild 本身
}

// Result 一局的結果。Lines 只收錄 Prize > 0 的線，依線表索引遞增。
type Result struct {
	Prize int             `json:"prize"`
	Lines []ProcessedLine `json:"lines"`
}

// NewResult 建立空結果，預先配置 capLines 容量
func NewResult(capLines int) *Result {
	return &Result{
		Prize: 0,
		Lines: make([]ProcessedLine, 0, max(0, capLines)),
	}
}

// RecordLine 累計一條線：獎金一律計入總額，只有 Prize > 0 才收錄細項。
// 呼叫端須依線表索引遞增呼叫。
func (r *Result) RecordLine(pl ProcessedLine) {
	r.Prize += pl.Prize
	if pl.Prize > 0 {
		r.Lines = append(r.Lines, pl)
	}
}

// IsHit 回傳本局是否有任何得獎線
func (r *Result) IsHit() bool {
	return len(r.Lines) > 0
}
