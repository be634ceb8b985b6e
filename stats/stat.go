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

// Package stats 把模擬的整數計數轉成統計報表（RTP、信賴區間、波動、命中率、抽樣適合度）。
//
// 紀錄過程只累加 int（見 recorder），全部跑完後呼叫 Done 一次性計算浮點結果。
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// ciLevel 信賴水準
const ciLevel = 0.95

// CI 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// StatReport 模擬統計報告
//
// 押注以「每線 1 單位」計：每局押注 = 線數。
type StatReport struct {
	Summary *SummaryReport `json:"Summary"`
	Mult    *MultReport    `json:"Mult"`
	Dist    *DistReport    `json:"Dist"`
	Lines   *LineReport    `json:"Lines"`
	Symbols []ReelFidelity `json:"Symbols"`
	isDone  bool
}

type SummaryReport struct {
	Name        string  `json:"Name"`
	Mode        string  `json:"Mode"`
	Reels       int     `json:"Reels"`
	Rows        int     `json:"Rows"`
	Lines       int     `json:"Lines"`
	TotalBet    int     `json:"TotalBet"`
	TotalWin    int     `json:"TotalWin"`
	MaxWin      int     `json:"MaxWin"`
	RTP         float64 `json:"RTP"`
	RtpCI       CI      `json:"RtpCI"`
	Std         float64 `json:"Std"`
	Cv          float64 `json:"Cv"`
	NoWinRounds int     `json:"NoWinRounds"`
	HitRate     float64 `json:"HitRate"`
	Fidelity    float64 `json:"Fidelity"` // 各軸卡方檢定最小 p 值
	Rounds      int     `json:"Rounds"`
}

// MultReport 贏倍統計（以每局押注為 1 倍）
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum"` // 平方和
}

// DistReport 贏倍區間落點統計
type DistReport struct {
	WinBucket []string  `json:"WinBucket"`
	Collect   []int     `json:"Collect"`
	Dist      []float64 `json:"Dist"`
}

// LineReport 每條線的得獎次數與總獎金
type LineReport struct {
	Hits    []int     `json:"Hits"`
	Wins    []int     `json:"Wins"`
	HitRate []float64 `json:"HitRate"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 計算所有浮點統計並標記完成；重複呼叫無作用。
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	sm := s.Summary
	sm.RTP = s.Rtp()
	sm.Std = s.Std()
	sm.Cv = s.Cv()
	sm.RtpCI = s.Ci()
	if sm.Rounds > 0 {
		sm.HitRate = 1.0 - float64(sm.NoWinRounds)/float64(sm.Rounds)
	}
	sm.Fidelity = MinPValue(s.Symbols)

	if s.Dist != nil {
		s.Dist.Dist = make([]float64, len(s.Dist.Collect))
		for i, c := range s.Dist.Collect {
			if sm.Rounds > 0 {
				s.Dist.Dist[i] = float64(c) / float64(sm.Rounds)
			}
		}
	}
	if s.Lines != nil {
		s.Lines.HitRate = make([]float64, len(s.Lines.Hits))
		for i, h := range s.Lines.Hits {
			if sm.Rounds > 0 {
				s.Lines.HitRate[i] = float64(h) / float64(sm.Rounds)
			}
		}
	}
	s.isDone = true
}

// Rtp 回傳總贏分 / 總押注
func (s *StatReport) Rtp() float64 {
	if s.Summary.Rounds == 0 || s.Summary.TotalBet == 0 {
		return 0
	}
	return float64(s.Summary.TotalWin) / float64(s.Summary.TotalBet)
}

// Std 回傳單局贏倍的樣本標準差
func (s *StatReport) Std() float64 {
	if s.Summary.Rounds < 2 {
		return 0
	}
	rounds := float64(s.Summary.Rounds)
	sum := s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - sum*sum/rounds) / (rounds - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳變異係數
func (s *StatReport) Cv() float64 {
	rtp := s.Rtp()
	if rtp <= 0 {
		return 0
	}
	return s.Std() / rtp
}

// Ci 回傳 RTP 的常態近似信賴區間
func (s *StatReport) Ci() CI {
	rtp := s.Rtp()
	se := 0.0
	if s.Summary.Rounds > 1 {
		se = s.Std() / math.Sqrt(float64(s.Summary.Rounds))
	}
	z := distuv.UnitNormal.Quantile(1 - (1-ciLevel)/2)
	return CI{
		Lo: max(rtp-z*se, 0.0),
		Hi: rtp + z*se,
	}
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 印出用時與摘要表
func (s *StatReport) StdOut(w io.Writer, used time.Duration) {
	s.Done()
	fmt.Fprint(w, formatDuration(used, s.Summary.Rounds))
	fmt.Fprintln(w, s.Table())
}

// Table 回傳摘要表
func (s *StatReport) Table() string {
	s.Done()
	keys, vals := s.fmtBasic()
	return fmtTable(s.Summary.Name, keys, vals)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, spins int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(spins) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nsps : %d spins/sec\n", sec, sps)
	}
	ss := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nsps : %d spins/sec\n", m, ss, sps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nsps : %d spins/sec\n", h, m, ss, sps)
}

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	sm := s.Summary
	basic := map[string]string{
		"Config":       sm.Name,
		"Grid":         fmt.Sprintf("%dx%d (%s)", sm.Reels, sm.Rows, sm.Mode),
		"Lines":        p.Sprintf("%d", sm.Lines),
		"Total Rounds": p.Sprintf("%d", sm.Rounds),
		"Total RTP":    p.Sprintf("%.2f %%", 100.0*sm.RTP),
		"RTP 95% CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*sm.RtpCI.Lo, 100.0*sm.RtpCI.Hi),
		"Total Bet":    p.Sprintf("%d", sm.TotalBet),
		"Total Win":    p.Sprintf("%d", sm.TotalWin),
		"Max Win":      p.Sprintf("%d", sm.MaxWin),
		"NoWin Rounds": p.Sprintf("%d", sm.NoWinRounds),
		"Hit Rate":     p.Sprintf("%.2f %%", 100.0*sm.HitRate),
		"STD":          p.Sprintf("%.3f", sm.Std),
		"CV":           p.Sprintf("%.3f", sm.Cv),
		"Fidelity p":   p.Sprintf("%.4f", sm.Fidelity),
	}
	keys := []string{"Config", "Grid", "Lines", "Total Rounds", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "Max Win", "NoWin Rounds", "Hit Rate", "STD", "CV", "Fidelity p"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(m))
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) + " | " + v + blank(maxValLen-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
