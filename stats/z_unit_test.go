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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/payline/stats"
	"gopkg.in/yaml.v3"
)

// buildStatReport 以每局總獎金建報表，押注 = lines
func buildStatReport(lines int, wins []int) *stats.StatReport {
	L := len(stats.Buckets.WinBucketStr())
	bucket := stats.Buckets.GetBucketByBet(lines)
	collect := make([]int, L)

	var totalWin, totalWinSq, noWin int
	for _, w := range wins {
		collect[bucket.Index(w)]++
		totalWin += w
		totalWinSq += w * w
		if w == 0 {
			noWin++
		}
	}
	bet := float64(lines)
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Name:        "test",
			Lines:       lines,
			TotalBet:    lines * len(wins),
			TotalWin:    totalWin,
			NoWinRounds: noWin,
			Rounds:      len(wins),
		},
		Mult: &stats.MultReport{
			TotalWinMult:      float64(totalWin) / bet,
			TotalWinMultSqSum: float64(totalWinSq) / (bet * bet),
		},
		Dist: &stats.DistReport{
			WinBucket: stats.Buckets.WinBucketStr(),
			Collect:   collect,
		},
		Lines: &stats.LineReport{Hits: []int{1, 0}, Wins: []int{3, 0}},
	}
	report.Done()
	return report
}

func TestStatReportCoreMetrics(t *testing.T) {
	lines := 20
	rep := buildStatReport(lines, []int{lines, 2 * lines, 0, 0})

	wantRTP := float64(3*lines) / float64(4*lines)
	if got := rep.Rtp(); math.Abs(got-wantRTP) > 1e-12 {
		t.Fatalf("RTP got %.12f want %.12f", got, wantRTP)
	}

	m := []float64{1, 2, 0, 0}
	mean := 0.75
	v := 0.0
	for _, x := range m {
		v += (x - mean) * (x - mean)
	}
	wantStd := math.Sqrt(v / 3)
	if got := rep.Std(); math.Abs(got-wantStd) > 1e-12 {
		t.Fatalf("Std got %.12f want %.12f", got, wantStd)
	}
	if got := rep.Cv(); math.Abs(got-wantStd/wantRTP) > 1e-12 {
		t.Fatalf("CV got %.12f", got)
	}

	// 95% 常態分位數
	se := wantStd / 2
	ci := rep.Summary.RtpCI
	if math.Abs(ci.Hi-(wantRTP+1.959963984540054*se)) > 1e-9 || ci.Lo != 0 {
		t.Fatalf("unexpected CI %+v", ci)
	}
	if rep.Summary.HitRate != 0.5 {
		t.Fatalf("hit rate got %.3f", rep.Summary.HitRate)
	}
	if rep.Lines.HitRate[0] != 0.25 {
		t.Fatalf("line hit rate got %v", rep.Lines.HitRate)
	}

	total := 0
	for _, c := range rep.Dist.Collect {
		total += c
	}
	if total != rep.Summary.Rounds || rep.Dist.Collect[0] != 2 {
		t.Fatalf("unexpected dist %v", rep.Dist.Collect)
	}

	rep.Done() // idempotent
	if rep.Rtp() != wantRTP {
		t.Fatalf("RTP changed after second Done")
	}
}

func TestWinBucketIndex(t *testing.T) {
	b := stats.Buckets.GetBucketByBet(10)
	cases := map[int]int{0: 0, 5: 1, 10: 2, 19: 2, 20: 3, 49: 3, 10 * 2000: 12, 10 * 10000: 13}
	for win, want := range cases {
		if got := b.Index(win); got != want {
			t.Fatalf("Index(%d) = %d want %d", win, got, want)
		}
	}
	if stats.Buckets.GetBucketByBet(0) != stats.Buckets.GetBucketByBet(1) {
		t.Fatalf("bet < 1 should share the bet=1 table")
	}
}

func TestReelFidelity(t *testing.T) {
	probs := []float64{0.5, 0.25, 0.25, 0}
	good := stats.NewReelFidelity(0, []int{5000, 2500, 2500, 0}, probs)
	if good.ChiSq != 0 || math.Abs(good.PValue-1) > 1e-9 || good.DF != 2 || good.Draws != 10000 {
		t.Fatalf("exact match should pass: %+v", good)
	}
	bad := stats.NewReelFidelity(1, []int{3000, 3500, 3500, 0}, probs)
	if bad.PValue > 1e-6 {
		t.Fatalf("skewed counts should be rejected: %+v", bad)
	}
	imp := stats.NewReelFidelity(2, []int{5000, 2500, 2499, 1}, probs)
	if imp.PValue != 0 {
		t.Fatalf("zero-probability symbol drawn should fail: %+v", imp)
	}
	empty := stats.NewReelFidelity(3, []int{0, 0, 0, 0}, probs)
	if empty.PValue != 1 {
		t.Fatalf("no draws should not reject: %+v", empty)
	}
	if got := stats.MinPValue([]stats.ReelFidelity{good, bad}); got != bad.PValue {
		t.Fatalf("MinPValue got %v", got)
	}
}

func TestRenders(t *testing.T) {
	rep := buildStatReport(5, []int{0, 5, 10})
	rep.Symbols = []stats.ReelFidelity{stats.NewReelFidelity(0, []int{2, 1}, []float64{0.5, 0.5})}

	var jb bytes.Buffer
	if err := rep.WriteWith(&jb, &stats.JsonStatReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil || back["Summary"] == nil {
		t.Fatalf("json output invalid: %v", err)
	}

	var yb bytes.Buffer
	r, ok := stats.RenderByName("yaml")
	if !ok {
		t.Fatalf("yaml render missing")
	}
	if err := rep.WriteWith(&yb, r); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yb.String(), "Collect: [") {
		t.Fatalf("flat lists should be flow style:\n%s", yb.String())
	}
	var ym map[string]any
	if err := yaml.Unmarshal(yb.Bytes(), &ym); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}

	tb := rep.Table()
	if !strings.Contains(tb, "Total RTP") || !strings.Contains(tb, "test") {
		t.Fatalf("table missing rows:\n%s", tb)
	}
	if _, ok := stats.RenderByName("xml"); ok {
		t.Fatalf("unknown render should not resolve")
	}
}
