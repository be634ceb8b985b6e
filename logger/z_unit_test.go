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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// syncBuffer 讓背景 goroutine 與測試可安全共用
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestParseMode(t *testing.T) {
	cases := map[string]LogMode{"dev": ModeDev, "PROD": ModeProd, " silence ": ModeSilence}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("verbose"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	if ModeProd.String() != "prod" {
		t.Fatalf("unexpected name %q", ModeProd.String())
	}
}

func TestProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewTo(&buf, ModeProd)
	l.Debug("hidden")
	l.Info("sim done", "spins", 10)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("prod mode should drop debug: %s", out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("expected one json record, got %q: %v", out, err)
	}
	if rec["msg"] != "sim done" || rec["spins"] != float64(10) {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSilentDiscards(t *testing.T) {
	l := Silent()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("silent logger should not be enabled")
	}
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	sb := &syncBuffer{}
	ah := NewAsyncHandler(slog.NewTextHandler(sb, nil), 64)
	l := slog.New(ah).With("worker", 1)
	for i := 0; i < 10; i++ {
		l.Info("spin", "i", i)
	}
	ah.Close()
	ah.Close()

	out := sb.String()
	if got := strings.Count(out, "msg=spin"); got+int(ah.Dropped()) != 10 {
		t.Fatalf("written %d + dropped %d != 10", got, ah.Dropped())
	}
	if !strings.Contains(out, "worker=1") {
		t.Fatalf("attrs lost: %s", out)
	}

	l.Info("after close")
	if strings.Contains(sb.String(), "after close") {
		t.Fatalf("records after Close must be dropped")
	}
}
