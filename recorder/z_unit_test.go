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

package recorder

import (
	"testing"

	"github.com/zintix-labs/payline/errs"
	"github.com/zintix-labs/payline/sdk/buf"
	"github.com/zintix-labs/payline/sdk/gen"
)

func testMeta() Meta {
	return Meta{
		Name:  "unit",
		Mode:  "window",
		Reels: 2,
		Rows:  2,
		Lines: 2,
		Probs: [][]float64{{0.5, 0.5}, {0.5, 0.5}},
	}
}

func windowGrid(a, b int) *gen.Grid {
	return &gen.Grid{Cols: 2, Rows: 2, Cells: []int{a, b, a, b}, Window: []int{a, b}}
}

func TestNewSpinRecorderRejects(t *testing.T) {
	bad := []Meta{
		{Reels: 0, Rows: 1},
		{Reels: 1, Rows: 1, Lines: -1, Probs: [][]float64{{1}}},
		{Reels: 2, Rows: 1, Probs: [][]float64{{1}}},
	}
	for i, m := range bad {
		if _, err := NewSpinRecorder(m); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRecordCounts(t *testing.T) {
	r, err := NewSpinRecorder(testMeta())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	win := buf.NewResult(2)
	win.RecordLine(buf.ProcessedLine{I: 1, Combo: 2, Prize: 6})
	r.Record(windowGrid(0, 1), win)
	r.Record(windowGrid(1, 1), buf.NewResult(2))

	b := r.Basic
	if b.Rounds != 2 || b.TotalBet != 4 || b.TotalWin != 6 || b.TotalWinSqSum != 36 || b.MaxWin != 6 || b.NoWin != 1 {
		t.Fatalf("unexpected basic %+v", *b)
	}
	if r.Line.Hits[1] != 1 || r.Line.Wins[1] != 6 || r.Line.Hits[0] != 0 {
		t.Fatalf("unexpected line record %+v", *r.Line)
	}
	// window 模式每軸只算一次
	if r.Symbols[0][0] != 1 || r.Symbols[0][1] != 1 || r.Symbols[1][1] != 2 {
		t.Fatalf("unexpected symbols %v", r.Symbols)
	}
	// 6 / 2 = 3x 落在 [2,5)
	if r.Dist.Collect[0] != 1 || r.Dist.Collect[3] != 1 {
		t.Fatalf("unexpected dist %v", r.Dist.Collect)
	}
}

func TestRecordByCell(t *testing.T) {
	r, _ := NewSpinRecorder(testMeta())
	g := &gen.Grid{Cols: 2, Rows: 2, Cells: []int{0, 1, 1, 1}}
	r.Record(g, buf.NewResult(0))
	if r.Symbols[0][0] != 1 || r.Symbols[0][1] != 1 || r.Symbols[1][1] != 2 {
		t.Fatalf("cell mode should count every cell: %v", r.Symbols)
	}
	r.Record(nil, buf.NewResult(0))
	if r.Basic.Rounds != 2 {
		t.Fatalf("nil grid should still count the round")
	}
}

func TestMergeAndDone(t *testing.T) {
	a, _ := NewSpinRecorder(testMeta())
	b, _ := NewSpinRecorder(testMeta())
	hit := buf.NewResult(1)
	hit.RecordLine(buf.ProcessedLine{I: 0, Combo: 2, Prize: 4})
	a.Record(windowGrid(0, 0), hit)
	b.Record(windowGrid(1, 1), buf.NewResult(0))
	b.Record(windowGrid(0, 1), buf.NewResult(0))

	m, err := MergeSpinRecorder([]*SpinRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Basic.Rounds != 3 || m.Basic.TotalWin != 4 || m.Symbols[0][0] != 2 || m.Symbols[1][1] != 2 {
		t.Fatalf("unexpected merge %+v %v", *m.Basic, m.Symbols)
	}

	rep := m.Done()
	if rep.Summary.TotalBet != 6 || rep.Summary.Rounds != 3 {
		t.Fatalf("unexpected summary %+v", *rep.Summary)
	}
	if rep.Rtp() != 4.0/6.0 {
		t.Fatalf("unexpected RTP %v", rep.Rtp())
	}
	if len(rep.Symbols) != 2 || rep.Symbols[0].Draws != 3 {
		t.Fatalf("unexpected fidelity %+v", rep.Symbols)
	}
	// 報表為副本
	m.Dist.Collect[0] = 99
	if rep.Dist.Collect[0] == 99 {
		t.Fatalf("report should not alias recorder counts")
	}

	other := testMeta()
	other.Name = "other"
	c, _ := NewSpinRecorder(other)
	if _, err := MergeSpinRecorder([]*SpinRecorder{a, c}); err == nil {
		t.Fatalf("expected mismatch error")
	}
	_, err = MergeSpinRecorder(nil)
	if e, ok := errs.AsErr(err); !ok || e.ErrLv != errs.Fatal {
		t.Fatalf("expected fatal on empty merge, got %v", err)
	}
}
