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
	"github.com/zintix-labs/payline/spec"
)

// ResolvePrize 查 (c.Symbol, c.Count) 的獎金。
// Count == 0 一律為 0；目標圖標在賠付表中沒有任何一列則為設定錯誤。
func ResolvePrize(p spec.PayTable, c Combo) (int, error) {
	if c.Count < 1 {
		return 0, nil
	}
	prize, ok := p.Lookup(c.Symbol, c.Count)
	if !ok {
		return 0, errs.Configf("symbol %d has no entry in paytable (len %d)", c.Symbol, len(p))
	}
	return prize, nil
}

// BestCombo 在兩個候選中選出派彩較高者；同分時取 wild 代任的連線。
func BestCombo(p spec.PayTable, m LineMatch) (Combo, int, error) {
	runPrize, err := ResolvePrize(p, m.Run)
	if err != nil {
		return Combo{}, 0, err
	}
	if m.WildRun.Count == 0 || m.WildRun == m.Run {
		return m.Run, runPrize, nil
	}
	wildPrize, err := ResolvePrize(p, m.WildRun)
	if err != nil {
		return Combo{}, 0, err
	}
	if wildPrize > runPrize {
		return m.WildRun, wildPrize, nil
	}
	return m.Run, runPrize, nil
}
