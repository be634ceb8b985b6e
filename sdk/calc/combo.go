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

// NoWild 表示沒有設定百搭圖標
const NoWild = -1

// Combo 一段由最左軸起算的連線
type Combo struct {
	Symbol int // 目標圖標；全 wild 時為 wild 本身，空序列為 -1
	Count  int // 連線長度
	Wilds  int // 連線中 wild 的數量
}

// LineMatch 單線掃描的兩個候選：
//   - Run: wild 代任後的連線（首個非 wild 圖標決定目標）
//   - WildRun: 開頭連續 wild 自成一線（以 wild 本身計分）
//
// 沒有 wild 前綴時 WildRun.Count == 0；整段都是 wild 時兩者相同。
type LineMatch struct {
	Run     Combo
	WildRun Combo
}

// matchPhase 連線狀態機：Unset -> Locked(target) -> Broken
type matchPhase uint8

const (
	phaseUnset  matchPhase = iota // 目前為止都是 wild，尚未決定目標
	phaseLocked                   // 已由首個非 wild 決定目標
	phaseBroken                   // 連線已中斷，之後的格子不再影響結果
)

type matchState struct {
	phase  matchPhase
	target int
	count  int
	wilds  int
	prefix int // 鎖定前的 wild 數
}

// step 唯一的轉移函式：wild 只延長連線，只有在 Unset 時遇到非 wild 才決定目標。
func (s matchState) step(sym int, wild int) matchState {
	isWild := wild != NoWild && sym == wild
	switch s.phase {
	case phaseUnset:
		s.count++
		if isWild {
			s.wilds++
			s.prefix++
			return s
		}
		s.phase = phaseLocked
		s.target = sym
	case phaseLocked:
		if sym == s.target {
			s.count++
		} else if isWild {
			s.count++
			s.wilds++
		} else {
			s.phase = phaseBroken
		}
	}
	return s
}

// EvalCombo 由最左軸開始掃描 ss，回傳兩個連線候選。
// wild 傳 NoWild 表示不使用百搭。
func EvalCombo(ss []int, wild int) LineMatch {
	st := matchState{target: -1}
	for _, sym := range ss {
		st = st.step(sym, wild)
		if st.phase == phaseBroken {
			break
		}
	}

	if st.count == 0 {
		empty := Combo{Symbol: -1}
		return LineMatch{Run: empty, WildRun: empty}
	}
	wildRun := Combo{Symbol: wild, Count: st.prefix, Wilds: st.prefix}
	if st.phase == phaseUnset {
		// 整段都是 wild：目標就是 wild 本身
		return LineMatch{Run: wildRun, WildRun: wildRun}
	}
	if st.prefix == 0 {
		wildRun = Combo{Symbol: wild}
	}
	return LineMatch{
		Run:     Combo{Symbol: st.target, Count: st.count, Wilds: st.wilds},
		WildRun: wildRun,
	}
}
