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

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ReelFidelity 某一軸的抽樣頻率與設定機率的卡方適合度檢定
type ReelFidelity struct {
	Reel     int       `json:"Reel"`
	Draws    int       `json:"Draws"`
	Observed []int     `json:"Observed"`
	Freq     []float64 `json:"Freq"`
	Expected []float64 `json:"Expected"` // 設定機率 w[s]/Σw
	ChiSq    float64   `json:"ChiSq"`
	DF       int       `json:"DF"`
	PValue   float64   `json:"PValue"`
}

// NewReelFidelity 以觀測次數與設定機率做卡方檢定。
//
// 機率為 0 的圖標不列入自由度；若它被抽到過，PValue 直接為 0。
func NewReelFidelity(reel int, observed []int, probs []float64) ReelFidelity {
	rf := ReelFidelity{
		Reel:     reel,
		Observed: observed,
		Freq:     make([]float64, len(observed)),
		Expected: probs,
		PValue:   1,
	}
	for _, o := range observed {
		rf.Draws += o
	}
	if rf.Draws == 0 {
		return rf
	}
	n := float64(rf.Draws)

	obs := make([]float64, 0, len(probs))
	exp := make([]float64, 0, len(probs))
	impossible := false
	for s, o := range observed {
		rf.Freq[s] = float64(o) / n
		p := 0.0
		if s < len(probs) {
			p = probs[s]
		}
		if p <= 0 {
			if o > 0 {
				impossible = true
			}
			continue
		}
		obs = append(obs, float64(o))
		exp = append(exp, p*n)
	}
	if impossible {
		rf.PValue = 0
		return rf
	}
	rf.DF = len(obs) - 1
	if rf.DF < 1 {
		return rf
	}
	rf.ChiSq = stat.ChiSquare(obs, exp)
	rf.PValue = distuv.ChiSquared{K: float64(rf.DF)}.Survival(rf.ChiSq)
	return rf
}

// MinPValue 回傳所有軸中最小的 p 值；沒有資料時為 1。
func MinPValue(rs []ReelFidelity) float64 {
	p := 1.0
	for _, r := range rs {
		p = min(p, r.PValue)
	}
	return p
}
